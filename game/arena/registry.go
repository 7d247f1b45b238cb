package arena

import "sort"

// Registry is the authoritative container for connected players and in-play
// balls. It is a pure keyed store: all validation and match bookkeeping lives
// in the lobby and match layers. IDs are process-lifetime monotonic counters
// and are never reused after removal.
type Registry struct {
	players      map[int]*Player
	balls        map[int]*Ball
	nextPlayerID int
	nextBallID   int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		players: make(map[int]*Player),
		balls:   make(map[int]*Ball),
	}
}

// AddPlayer allocates the next player ID and inserts a zero-valued player.
// New players start live with no name, team, or readiness.
func (r *Registry) AddPlayer() *Player {
	p := &Player{
		ID:   r.nextPlayerID,
		Live: true,
	}
	r.nextPlayerID++
	r.players[p.ID] = p
	return p
}

// RemovePlayer deletes the player with the given ID. Unknown IDs are a no-op.
func (r *Registry) RemovePlayer(id int) {
	delete(r.players, id)
}

// Player looks up a player by ID.
func (r *Registry) Player(id int) (*Player, bool) {
	p, ok := r.players[id]
	return p, ok
}

// AddBall allocates the next ball ID and inserts a live ball at the given
// position and velocity.
func (r *Registry) AddBall(pos, vel Vector3) *Ball {
	b := &Ball{
		ID:       r.nextBallID,
		Position: pos,
		Vel:      vel,
		Live:     true,
	}
	r.nextBallID++
	r.balls[b.ID] = b
	return b
}

// Ball looks up a ball by ID.
func (r *Registry) Ball(id int) (*Ball, bool) {
	b, ok := r.balls[id]
	return b, ok
}

// NumPlayers returns the number of registered players.
func (r *Registry) NumPlayers() int {
	return len(r.players)
}

// NumBalls returns the number of registered balls.
func (r *Registry) NumBalls() int {
	return len(r.balls)
}

// ForEachPlayer visits every player in ascending ID order. The stable order
// keeps starting-layout assignment reproducible.
func (r *Registry) ForEachPlayer(fn func(*Player)) {
	ids := make([]int, 0, len(r.players))
	for id := range r.players {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		fn(r.players[id])
	}
}

// ForEachBall visits every ball in ascending ID order.
func (r *Registry) ForEachBall(fn func(*Ball)) {
	ids := make([]int, 0, len(r.balls))
	for id := range r.balls {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		fn(r.balls[id])
	}
}
