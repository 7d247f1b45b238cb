package arena

import "errors"

// Lobby transition errors. All of them are protocol misuse by a client: the
// caller logs them and drops the triggering event without advancing state.
var (
	ErrEmptyName    = errors.New("username must not be empty")
	ErrNameRequired = errors.New("username must be set first")
	ErrTeamRequired = errors.New("team must be selected first")
	ErrInvalidTeam  = errors.New("team must be red or blue")
)

// TeamMemberInfo is one {username, ready} pair in a lobby snapshot.
type TeamMemberInfo struct {
	Username string `json:"username"`
	Ready    bool   `json:"ready"`
}

// TeamSelectionInfo partitions every registered player into the three lobby
// lists broadcast after each successful transition.
type TeamSelectionInfo struct {
	RedTeam        []TeamMemberInfo `json:"redTeam"`
	BlueTeam       []TeamMemberInfo `json:"blueTeam"`
	UnselectedTeam []TeamMemberInfo `json:"unselectedTeam"`
}

// SetName moves a player into the Named phase. Empty names are rejected.
func SetName(p *Player, name string) error {
	if name == "" {
		return ErrEmptyName
	}
	p.Username = name
	return nil
}

// SetTeam moves a named player onto a side. Changing team always clears
// readiness so a player cannot carry a stale ready flag across sides.
func SetTeam(p *Player, team Team) error {
	if p.Username == "" {
		return ErrNameRequired
	}
	if !team.Valid() {
		return ErrInvalidTeam
	}
	p.Team = team
	p.Ready = false
	return nil
}

// SetReady flips a player's readiness. The player must have completed the
// earlier phases first.
func SetReady(p *Player, ready bool) error {
	if p.Username == "" {
		return ErrNameRequired
	}
	if !p.Team.Valid() {
		return ErrTeamRequired
	}
	p.Ready = ready
	return nil
}

// AllReady reports whether every currently registered player is ready.
// Quorum is 100% of the registry, not a fixed roster size.
func AllReady(r *Registry) bool {
	all := true
	r.ForEachPlayer(func(p *Player) {
		all = all && p.Ready
	})
	return all
}

// SelectionInfo builds the lobby aggregate on demand from the registry.
func SelectionInfo(r *Registry) *TeamSelectionInfo {
	info := &TeamSelectionInfo{
		RedTeam:        []TeamMemberInfo{},
		BlueTeam:       []TeamMemberInfo{},
		UnselectedTeam: []TeamMemberInfo{},
	}
	r.ForEachPlayer(func(p *Player) {
		member := TeamMemberInfo{Username: p.Username, Ready: p.Ready}
		switch p.Team {
		case TeamRed:
			info.RedTeam = append(info.RedTeam, member)
		case TeamBlue:
			info.BlueTeam = append(info.BlueTeam, member)
		default:
			info.UnselectedTeam = append(info.UnselectedTeam, member)
		}
	})
	return info
}
