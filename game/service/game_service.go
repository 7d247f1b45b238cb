package service

import (
	"context"

	"github.com/courtside/dodgeball-server/game/arena"
)

// GameService defines all session operations the transports dispatch into.
// Every inbound peer event maps to exactly one method.
type GameService interface {
	// Connection lifecycle
	Connect(ctx context.Context) (int, error)
	Disconnect(ctx context.Context, playerID int) error

	// Lobby
	EnterName(ctx context.Context, playerID int, username string) error
	SelectTeam(ctx context.Context, playerID int, team string) error
	ConfirmReady(ctx context.Context, playerID int, ready bool) error
	RequestTeamSelectionInfo(ctx context.Context, playerID int) error

	// Match
	ReadyToStart(ctx context.Context, playerID int) error
	UpdatePlayer(ctx context.Context, playerID int, update PlayerUpdate) error
	UpdateBall(ctx context.Context, playerID int, update BallUpdate) error

	// Read-only snapshots for the REST and MCP surfaces
	LobbyInfo(ctx context.Context) *arena.TeamSelectionInfo
	MatchStatus(ctx context.Context) *MatchStatus
	ListPlayers(ctx context.Context) []*PlayerInfo
	Config(ctx context.Context) *arena.Config
}

// Broadcaster delivers outbound events to session members. The websocket hub
// implements it; tests substitute a recorder.
type Broadcaster interface {
	// BroadcastAll sends an event to every member of the session group.
	BroadcastAll(event string, data interface{})
	// BroadcastOthers sends an event to every member except the sender.
	BroadcastOthers(senderID int, event string, data interface{})
	// SendTo unicasts an event to a single member.
	SendTo(playerID int, event string, data interface{})
}
