package arena

import "testing"

// seedMatch builds a registry with the given number of named, teamed,
// ready players per side and returns it with both rosters.
func seedMatch(t *testing.T, redCount, blueCount int) (*Registry, []*Player, []*Player) {
	t.Helper()
	reg := NewRegistry()

	var red, blue []*Player
	for i := 0; i < redCount; i++ {
		p := reg.AddPlayer()
		SetName(p, "red")
		SetTeam(p, TeamRed)
		SetReady(p, true)
		red = append(red, p)
	}
	for i := 0; i < blueCount; i++ {
		p := reg.AddPlayer()
		SetName(p, "blue")
		SetTeam(p, TeamBlue)
		SetReady(p, true)
		blue = append(blue, p)
	}
	return reg, red, blue
}

func TestMatch_Start(t *testing.T) {
	reg, _, _ := seedMatch(t, 2, 3)
	m := NewMatch()

	m.Start(reg)

	if !m.InSession {
		t.Error("Match should be in session after Start")
	}
	if m.AliveRed != 2 || m.AliveBlue != 3 {
		t.Errorf("Expected counters 2/3, got %d/%d", m.AliveRed, m.AliveBlue)
	}
}

func TestMatch_ReportLiveness(t *testing.T) {
	reg, red, _ := seedMatch(t, 2, 2)
	m := NewMatch()
	m.Start(reg)

	eliminated := m.ReportLiveness(red[0], false)
	if !eliminated {
		t.Error("First live→dead report should count as elimination")
	}
	if m.AliveRed != 1 {
		t.Errorf("Expected 1 red alive, got %d", m.AliveRed)
	}

	// A repeated dead report must not decrement twice.
	if m.ReportLiveness(red[0], false) {
		t.Error("Repeated dead report should not count as elimination")
	}
	if m.AliveRed != 1 {
		t.Errorf("Expected 1 red alive after repeat, got %d", m.AliveRed)
	}

	// A live report for a live player changes nothing.
	if m.ReportLiveness(red[1], true) {
		t.Error("Live report for a live player should not eliminate")
	}
	if m.AliveRed != 1 {
		t.Errorf("Expected 1 red alive, got %d", m.AliveRed)
	}
}

func TestMatch_Over(t *testing.T) {
	reg, red, _ := seedMatch(t, 1, 1)
	m := NewMatch()

	if m.Over() {
		t.Error("Match not in session should never be over")
	}

	m.Start(reg)
	if m.Over() {
		t.Error("Match with both sides alive should not be over")
	}

	m.ReportLiveness(red[0], false)
	if !m.Over() {
		t.Error("Match should be over when red is wiped")
	}
}

func TestMatch_End_BlueWins(t *testing.T) {
	reg, red, _ := seedMatch(t, 2, 2)
	m := NewMatch()
	m.Start(reg)

	m.ReportLiveness(red[0], false)
	m.ReportLiveness(red[1], false)

	result, ended := m.End(reg)
	if !ended {
		t.Fatal("End should report the match as ended")
	}
	if result != ResultBlueWins {
		t.Errorf("Expected %q, got %q", ResultBlueWins, result)
	}
	if m.InSession {
		t.Error("Match should no longer be in session")
	}

	// Ending an already-ended match is a no-op.
	if _, ended := m.End(reg); ended {
		t.Error("Second End should be a no-op")
	}
}

func TestMatch_End_Draw(t *testing.T) {
	reg, red, blue := seedMatch(t, 1, 1)
	m := NewMatch()
	m.Start(reg)

	m.ReportLiveness(red[0], false)
	m.ReportLiveness(blue[0], false)

	result, ended := m.End(reg)
	if !ended {
		t.Fatal("End should report the match as ended")
	}
	if result != ResultDraw {
		t.Errorf("Expected %q, got %q", ResultDraw, result)
	}
}

func TestMatch_End_ResetsLobby(t *testing.T) {
	reg, red, blue := seedMatch(t, 1, 1)
	m := NewMatch()
	m.Start(reg)
	m.ReportLiveness(red[0], false)
	m.End(reg)

	for _, p := range []*Player{red[0], blue[0]} {
		if p.Username != "" || p.Team != TeamNone || p.Ready {
			t.Errorf("Player %d not reset: %+v", p.ID, p)
		}
		if !p.Live {
			t.Errorf("Player %d should be revived on reset", p.ID)
		}
		if p.Phase() != PhaseUnset {
			t.Errorf("Player %d should be back at the name screen, got %s", p.ID, p.Phase())
		}
	}
	// IDs survive the reset; only lobby state is cleared.
	if _, ok := reg.Player(red[0].ID); !ok {
		t.Error("Players should remain registered after reset")
	}
}

func TestMatch_Disconnect(t *testing.T) {
	reg, red, _ := seedMatch(t, 2, 1)
	m := NewMatch()
	m.Start(reg)

	m.Disconnect(red[0])
	if m.AliveRed != 1 {
		t.Errorf("Expected 1 red alive after disconnect, got %d", m.AliveRed)
	}

	// A dead player leaving must not decrement again.
	m.ReportLiveness(red[1], false)
	m.Disconnect(red[1])
	if m.AliveRed != 0 {
		t.Errorf("Expected 0 red alive, got %d", m.AliveRed)
	}
}

func TestMatch_DisconnectOutsideSession(t *testing.T) {
	reg, red, _ := seedMatch(t, 1, 1)
	m := NewMatch()

	// No session: disconnect must not touch the counters.
	m.Disconnect(red[0])
	if m.AliveRed != 0 || m.AliveBlue != 0 {
		t.Errorf("Counters should stay zero outside a session, got %d/%d", m.AliveRed, m.AliveBlue)
	}
	_ = reg
}
