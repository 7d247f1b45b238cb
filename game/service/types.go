package service

import "github.com/courtside/dodgeball-server/game/arena"

// Inbound event names dispatched by the connection gateway.
const (
	EventEnterName            = "enter-name"
	EventSelectTeam           = "select-team"
	EventConfirmReady         = "confirm-ready"
	EventRequestSelectionInfo = "request-team-selection-info"
	EventReadyToStart         = "ready-to-start-game"
	EventUpdatePlayer         = "update-player"
	EventUpdateBall           = "update-ball"
)

// Outbound event names emitted through the Broadcaster.
const (
	EventTeamSelectionInfo  = "team-selection-info"
	EventStartGame          = "start-game"
	EventInit               = "init"
	EventGameOver           = "game-over"
	EventReturnToEnterName  = "return-to-enter-name"
	EventReturnToSelectTeam = "return-to-select-team"
)

// PlayerUpdate is a peer's per-tick report of its own state.
type PlayerUpdate struct {
	Position arena.Vector3 `json:"position"`
	Vel      arena.Vector3 `json:"vel"`
	Live     bool          `json:"live"`
}

// PlayerRelay is the update-player payload broadcast to the other peers.
type PlayerRelay struct {
	UUID     int           `json:"uuid"`
	Position arena.Vector3 `json:"position"`
	Vel      arena.Vector3 `json:"vel"`
	Live     bool          `json:"live"`
}

// BallUpdate is a peer's report of a ball it owns this tick. The same shape
// is relayed to the other peers after the authoritative state is updated.
type BallUpdate struct {
	UUID       int              `json:"uuid"`
	Position   arena.Vector3    `json:"position"`
	Quaternion arena.Quaternion `json:"quaternion"`
	Vel        arena.Vector3    `json:"vel"`
	Live       bool             `json:"live"`
}

// GameOver is the match result payload.
type GameOver struct {
	Result string `json:"result"`
}

// BallSnapshot is a ball's public state in the init payload.
type BallSnapshot struct {
	UUID     int           `json:"uuid"`
	Position arena.Vector3 `json:"position"`
	Vel      arena.Vector3 `json:"vel"`
}

// PlayerSnapshot is a player's public state in the init payload. Playable is
// true only on the requesting player's own entry.
type PlayerSnapshot struct {
	Playable bool          `json:"playable"`
	UUID     int           `json:"uuid"`
	Position arena.Vector3 `json:"position"`
	Vel      arena.Vector3 `json:"vel"`
	Team     arena.Team    `json:"team"`
	Facing   arena.Vector3 `json:"facing"`
	Name     string        `json:"name"`
}

// InitState is the full snapshot a peer pulls via ready-to-start-game.
// Go marshals the int keys as decimal strings, matching the wire format.
type InitState struct {
	BallMap   map[int]BallSnapshot   `json:"ballMap"`
	PlayerMap map[int]PlayerSnapshot `json:"playerMap"`
}

// MatchStatus reports the match session counters.
type MatchStatus struct {
	InSession bool `json:"in_session"`
	AliveRed  int  `json:"alive_red"`
	AliveBlue int  `json:"alive_blue"`
}

// PlayerInfo is the administrative player view served by the REST API.
type PlayerInfo struct {
	UUID     int        `json:"uuid"`
	Username string     `json:"username"`
	Team     arena.Team `json:"team"`
	Ready    bool       `json:"ready"`
	Live     bool       `json:"live"`
	Phase    string     `json:"phase"`
}
