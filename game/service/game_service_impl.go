package service

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/courtside/dodgeball-server/game/arena"
)

var (
	ErrUnknownPlayer = errors.New("player not found")
	ErrUnknownBall   = errors.New("ball not found")
)

// gameServiceImpl implements the GameService interface. It owns the single
// arena session: the registry, the match state, and the court config.
//
// All shared state is guarded by one mutex and every inbound event runs to
// completion under it. The connection gateway runs one reader goroutine per
// peer, so without the lock the readiness-quorum scan could interleave with
// a concurrent ready/unready transition; holding the lock across the scan
// and the match start makes the whole sequence atomic.
type gameServiceImpl struct {
	mu          sync.Mutex
	registry    *arena.Registry
	match       *arena.Match
	config      *arena.Config
	broadcaster Broadcaster
}

// NewGameService creates a game service for one arena session.
func NewGameService(config *arena.Config, broadcaster Broadcaster) GameService {
	if config == nil {
		config = arena.DefaultConfig()
	}
	return &gameServiceImpl{
		registry:    arena.NewRegistry(),
		match:       arena.NewMatch(),
		config:      config,
		broadcaster: broadcaster,
	}
}

// Connect allocates a player for a new peer and returns its ID.
func (s *gameServiceImpl) Connect(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.registry.AddPlayer()
	log.Printf("Player %d connected", p.ID)
	return p.ID, nil
}

// Disconnect removes a peer's player from the registry. A live player leaving
// mid-match counts against its team exactly like a liveness-false report, so
// a disconnect can end the match without any further client message.
func (s *gameServiceImpl) Disconnect(ctx context.Context, playerID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.registry.Player(playerID)
	if !ok {
		return ErrUnknownPlayer
	}
	log.Printf("Player %d disconnected", playerID)
	s.registry.RemovePlayer(playerID)

	if s.match.InSession {
		s.match.Disconnect(p)
		s.checkEndLocked()
	}
	return nil
}

// EnterName sets a player's display name and broadcasts the updated lobby.
func (s *gameServiceImpl) EnterName(ctx context.Context, playerID int, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.registry.Player(playerID)
	if !ok {
		return ErrUnknownPlayer
	}
	if err := arena.SetName(p, username); err != nil {
		log.Printf("Player %d set invalid username: %v", playerID, err)
		return err
	}
	log.Printf("Player %d set username to %s", playerID, username)
	s.broadcastSelectionInfoLocked()
	return nil
}

// SelectTeam puts a named player on a side and broadcasts the updated lobby.
// Changing team always clears the player's readiness.
func (s *gameServiceImpl) SelectTeam(ctx context.Context, playerID int, team string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.registry.Player(playerID)
	if !ok {
		return ErrUnknownPlayer
	}
	if err := arena.SetTeam(p, arena.Team(team)); err != nil {
		log.Printf("Player %d selected invalid team %q: %v", playerID, team, err)
		return err
	}
	log.Printf("Player %d set team to %s", playerID, team)
	s.broadcastSelectionInfoLocked()
	return nil
}

// ConfirmReady flips a player's readiness. When the flip completes the
// quorum (every registered player ready), the match starts: counters are
// recomputed, the starting layout is applied, and start-game is broadcast.
// The quorum scan and the start run under the same lock as any concurrent
// transition, so a late unready can never slip between them.
func (s *gameServiceImpl) ConfirmReady(ctx context.Context, playerID int, ready bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.registry.Player(playerID)
	if !ok {
		return ErrUnknownPlayer
	}
	if err := arena.SetReady(p, ready); err != nil {
		log.Printf("Player %d confirmed ready out of order: %v", playerID, err)
		return err
	}
	log.Printf("Player %d set ready state to %v", playerID, ready)
	s.broadcastSelectionInfoLocked()

	if ready && arena.AllReady(s.registry) {
		s.startMatchLocked()
	}
	return nil
}

// RequestTeamSelectionInfo re-broadcasts the lobby partition to the whole
// session, letting a freshly connected peer populate its team screen.
func (s *gameServiceImpl) RequestTeamSelectionInfo(ctx context.Context, playerID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.registry.Player(playerID); !ok {
		return ErrUnknownPlayer
	}
	s.broadcastSelectionInfoLocked()
	return nil
}

// ReadyToStart serves the explicit pull a peer makes after seeing (or
// missing) the start broadcast. Peers that skipped a lobby phase are
// redirected back to it; everyone else receives the full init snapshot with
// their own entry flagged playable.
func (s *gameServiceImpl) ReadyToStart(ctx context.Context, playerID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.match.InSession {
		return nil
	}
	p, ok := s.registry.Player(playerID)
	if !ok {
		return ErrUnknownPlayer
	}

	if p.Username == "" {
		log.Printf("Player %d requested init before entering name", playerID)
		s.broadcaster.SendTo(playerID, EventReturnToEnterName, struct{}{})
		return nil
	}
	if !p.Team.Valid() {
		log.Printf("Player %d requested init before selecting team", playerID)
		s.broadcaster.SendTo(playerID, EventReturnToSelectTeam, struct{}{})
		return nil
	}

	s.broadcaster.SendTo(playerID, EventInit, s.buildInitStateLocked(playerID))
	return nil
}

// UpdatePlayer applies a peer's self-reported state and relays it to the
// other peers. Ignored while no match is in session.
func (s *gameServiceImpl) UpdatePlayer(ctx context.Context, playerID int, update PlayerUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.match.InSession {
		return nil
	}
	p, ok := s.registry.Player(playerID)
	if !ok {
		return ErrUnknownPlayer
	}

	p.Position = update.Position
	p.Vel = update.Vel
	s.match.ReportLiveness(p, update.Live)

	s.broadcaster.BroadcastOthers(playerID, EventUpdatePlayer, PlayerRelay{
		UUID:     p.ID,
		Position: p.Position,
		Vel:      p.Vel,
		Live:     p.Live,
	})

	s.checkEndLocked()
	return nil
}

// UpdateBall applies a peer-reported ball state and relays it. An unknown
// ball ID is a recoverable protocol error: the update is dropped and logged,
// the session keeps running, nothing is broadcast.
func (s *gameServiceImpl) UpdateBall(ctx context.Context, playerID int, update BallUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.match.InSession {
		return nil
	}
	b, ok := s.registry.Ball(update.UUID)
	if !ok {
		log.Printf("Player %d reported unknown ball %d, dropping update", playerID, update.UUID)
		return ErrUnknownBall
	}

	b.Position = update.Position
	b.Quaternion = update.Quaternion
	b.Vel = update.Vel
	b.Live = update.Live

	s.broadcaster.BroadcastOthers(playerID, EventUpdateBall, BallUpdate{
		UUID:       b.ID,
		Position:   b.Position,
		Quaternion: b.Quaternion,
		Vel:        b.Vel,
		Live:       b.Live,
	})
	return nil
}

// LobbyInfo returns the current lobby partition.
func (s *gameServiceImpl) LobbyInfo(ctx context.Context) *arena.TeamSelectionInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return arena.SelectionInfo(s.registry)
}

// MatchStatus returns the match session counters.
func (s *gameServiceImpl) MatchStatus(ctx context.Context) *MatchStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &MatchStatus{
		InSession: s.match.InSession,
		AliveRed:  s.match.AliveRed,
		AliveBlue: s.match.AliveBlue,
	}
}

// ListPlayers returns the administrative view of every registered player.
func (s *gameServiceImpl) ListPlayers(ctx context.Context) []*PlayerInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	players := []*PlayerInfo{}
	s.registry.ForEachPlayer(func(p *arena.Player) {
		players = append(players, &PlayerInfo{
			UUID:     p.ID,
			Username: p.Username,
			Team:     p.Team,
			Ready:    p.Ready,
			Live:     p.Live,
			Phase:    p.Phase().String(),
		})
	})
	return players
}

// Config returns the court configuration of this session.
func (s *gameServiceImpl) Config(ctx context.Context) *arena.Config {
	return s.config
}

// startMatchLocked begins a match: counters recomputed, starting layout
// applied, start signal broadcast. Callers hold s.mu.
func (s *gameServiceImpl) startMatchLocked() {
	log.Printf("All %d players ready, starting match", s.registry.NumPlayers())
	s.match.Start(s.registry)
	arena.ApplyStartingLayout(s.registry, s.config)
	s.broadcaster.BroadcastAll(EventStartGame, struct{}{})
}

// checkEndLocked ends the match if either team has no live players left.
// Match.End is idempotent, so a game-over is never broadcast twice.
func (s *gameServiceImpl) checkEndLocked() {
	if !s.match.Over() {
		return
	}
	result, ended := s.match.End(s.registry)
	if !ended {
		return
	}
	log.Printf("Match over: %s", result)
	s.broadcaster.BroadcastAll(EventGameOver, GameOver{Result: result})
}

func (s *gameServiceImpl) broadcastSelectionInfoLocked() {
	s.broadcaster.BroadcastAll(EventTeamSelectionInfo, arena.SelectionInfo(s.registry))
}

// buildInitStateLocked snapshots every entity's public state for the init
// unicast. Callers hold s.mu.
func (s *gameServiceImpl) buildInitStateLocked(requesterID int) *InitState {
	state := &InitState{
		BallMap:   make(map[int]BallSnapshot),
		PlayerMap: make(map[int]PlayerSnapshot),
	}
	s.registry.ForEachBall(func(b *arena.Ball) {
		state.BallMap[b.ID] = BallSnapshot{
			UUID:     b.ID,
			Position: b.Position,
			Vel:      b.Vel,
		}
	})
	s.registry.ForEachPlayer(func(p *arena.Player) {
		state.PlayerMap[p.ID] = PlayerSnapshot{
			Playable: p.ID == requesterID,
			UUID:     p.ID,
			Position: p.Position,
			Vel:      p.Vel,
			Team:     p.Team,
			Facing:   p.Facing,
			Name:     p.Username,
		}
	})
	return state
}
