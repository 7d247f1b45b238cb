package arena

// Team identifies which side of the court a player fights for.
type Team string

const (
	TeamNone Team = ""
	TeamRed  Team = "red"
	TeamBlue Team = "blue"
)

// Valid reports whether the team is one of the two playable sides.
func (t Team) Valid() bool {
	return t == TeamRed || t == TeamBlue
}

// Phase is a player's progression through the lobby.
type Phase int

const (
	PhaseUnset Phase = iota
	PhaseNamed
	PhaseTeamSelected
	PhaseReady
)

// String returns a human-readable phase name for logs.
func (p Phase) String() string {
	switch p {
	case PhaseNamed:
		return "named"
	case PhaseTeamSelected:
		return "team-selected"
	case PhaseReady:
		return "ready"
	default:
		return "unset"
	}
}

// Vector3 is a 3D vector in court coordinates.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Quaternion carries a ball's client-reported rotation.
type Quaternion struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

// Player is a connected peer's authoritative state. The ID is assigned at
// connection time and never reused for the lifetime of the process.
type Player struct {
	ID       int     `json:"uuid"`
	Username string  `json:"username"`
	Team     Team    `json:"team"`
	Ready    bool    `json:"ready"`
	Live     bool    `json:"live"`
	Position Vector3 `json:"position"`
	Facing   Vector3 `json:"facing"`
	Vel      Vector3 `json:"vel"`
}

// Phase derives the player's lobby phase from its field state.
func (p *Player) Phase() Phase {
	switch {
	case p.Ready:
		return PhaseReady
	case p.Team.Valid():
		return PhaseTeamSelected
	case p.Username != "":
		return PhaseNamed
	default:
		return PhaseUnset
	}
}

// Ball is an in-play ball. Like players, ball IDs are monotonic for the
// lifetime of the process so stale client references miss instead of
// aliasing a newer ball.
type Ball struct {
	ID         int        `json:"uuid"`
	Position   Vector3    `json:"position"`
	Vel        Vector3    `json:"vel"`
	Quaternion Quaternion `json:"quaternion"`
	Live       bool       `json:"live"`
}

// Config describes the court an arena session plays on. It is loaded from
// JSON by the config manager; DefaultConfig supplies the stock court.
type Config struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	CourtWidth   float64 `json:"court_width"`
	CourtLength  float64 `json:"court_length"`
	PlayerHeight float64 `json:"player_height"`
	BallRadius   float64 `json:"ball_radius"`
	NumBalls     int     `json:"num_balls"`
}

// DefaultConfig returns the stock court dimensions.
func DefaultConfig() *Config {
	return &Config{
		Name:         "Classic Court",
		Description:  "Standard dodgeball court",
		CourtWidth:   30,
		CourtLength:  60,
		PlayerHeight: 2,
		BallRadius:   0.5,
		NumBalls:     1,
	}
}
