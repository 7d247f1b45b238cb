package arena

// Match result strings broadcast in the game-over event.
const (
	ResultRedWins  = "Red Wins"
	ResultBlueWins = "Blue Wins"
	ResultDraw     = "Draw"
)

// Match tracks whether a match is in progress and how many players remain
// live on each team. While InSession is true the counters equal the number
// of live players per team; the moment either reaches zero the match ends
// within the same logical step.
type Match struct {
	InSession bool
	AliveRed  int
	AliveBlue int
}

// NewMatch returns an idle match.
func NewMatch() *Match {
	return &Match{}
}

// Start flips the match into session and recounts the live players per team
// from the registry.
func (m *Match) Start(r *Registry) {
	m.InSession = true
	m.AliveRed = 0
	m.AliveBlue = 0
	r.ForEachPlayer(func(p *Player) {
		if !p.Live {
			return
		}
		switch p.Team {
		case TeamRed:
			m.AliveRed++
		case TeamBlue:
			m.AliveBlue++
		}
	})
}

// ReportLiveness applies a player's self-reported liveness. Only the
// true-to-false transition decrements the team counter; false-to-true and
// repeated false reports are no-ops. It returns whether the report
// eliminated the player.
func (m *Match) ReportLiveness(p *Player, live bool) bool {
	eliminated := p.Live && !live
	if eliminated {
		m.decrement(p.Team)
	}
	p.Live = live
	return eliminated
}

// Disconnect applies the match bookkeeping for a player leaving mid-match.
// A live player's departure counts exactly like a liveness-false report.
func (m *Match) Disconnect(p *Player) {
	if !m.InSession {
		return
	}
	if p.Live {
		m.decrement(p.Team)
	}
}

func (m *Match) decrement(team Team) {
	switch team {
	case TeamRed:
		m.AliveRed--
	case TeamBlue:
		m.AliveBlue--
	}
}

// Over reports whether an in-progress match has reached its end condition.
func (m *Match) Over() bool {
	return m.InSession && (m.AliveRed == 0 || m.AliveBlue == 0)
}

// End finishes the match and resets every player for the next lobby round.
// It is idempotent: a second call while no match is in session reports
// ended=false so callers never broadcast a duplicate game-over. The result
// is decided by which team still has survivors.
func (m *Match) End(r *Registry) (result string, ended bool) {
	if !m.InSession {
		return "", false
	}
	m.InSession = false

	r.ForEachPlayer(func(p *Player) {
		p.Username = ""
		p.Team = TeamNone
		p.Ready = false
		p.Live = true
	})

	switch {
	case m.AliveRed > 0:
		result = ResultRedWins
	case m.AliveBlue > 0:
		result = ResultBlueWins
	default:
		result = ResultDraw
	}
	return result, true
}
