package arena

import "testing"

func TestRegistry_AddPlayer(t *testing.T) {
	reg := NewRegistry()

	p := reg.AddPlayer()
	if p == nil {
		t.Fatal("AddPlayer() returned nil")
	}
	if p.ID != 0 {
		t.Errorf("Expected first player ID 0, got %d", p.ID)
	}
	if !p.Live {
		t.Error("New player should start live")
	}
	if p.Username != "" || p.Team != TeamNone || p.Ready {
		t.Error("New player should start with no name, team, or readiness")
	}
	if reg.NumPlayers() != 1 {
		t.Errorf("Expected 1 player, got %d", reg.NumPlayers())
	}
}

func TestRegistry_PlayerIDsNeverReused(t *testing.T) {
	reg := NewRegistry()

	p0 := reg.AddPlayer()
	p1 := reg.AddPlayer()
	reg.RemovePlayer(p0.ID)
	reg.RemovePlayer(p1.ID)

	p2 := reg.AddPlayer()
	if p2.ID != 2 {
		t.Errorf("Expected ID 2 after two removals, got %d", p2.ID)
	}
	if _, ok := reg.Player(p0.ID); ok {
		t.Error("Removed player should not be found")
	}
}

func TestRegistry_BallIDsMonotonic(t *testing.T) {
	reg := NewRegistry()

	b0 := reg.AddBall(Vector3{X: 1}, Vector3{})
	b1 := reg.AddBall(Vector3{X: 2}, Vector3{})

	if b0.ID != 0 || b1.ID != 1 {
		t.Errorf("Expected ball IDs 0 and 1, got %d and %d", b0.ID, b1.ID)
	}
	if !b0.Live {
		t.Error("New ball should start live")
	}
	if b0.Position.X != 1 {
		t.Errorf("Expected ball position X 1, got %f", b0.Position.X)
	}
}

func TestRegistry_ForEachPlayerOrder(t *testing.T) {
	reg := NewRegistry()
	for i := 0; i < 5; i++ {
		reg.AddPlayer()
	}
	reg.RemovePlayer(2)

	var ids []int
	reg.ForEachPlayer(func(p *Player) {
		ids = append(ids, p.ID)
	})

	expected := []int{0, 1, 3, 4}
	if len(ids) != len(expected) {
		t.Fatalf("Expected %d players, got %d", len(expected), len(ids))
	}
	for i, id := range expected {
		if ids[i] != id {
			t.Errorf("Expected ID %d at index %d, got %d", id, i, ids[i])
		}
	}
}

func TestRegistry_UnknownLookups(t *testing.T) {
	reg := NewRegistry()

	if _, ok := reg.Player(42); ok {
		t.Error("Expected unknown player lookup to miss")
	}
	if _, ok := reg.Ball(42); ok {
		t.Error("Expected unknown ball lookup to miss")
	}
	// Removing an unknown player must be a no-op
	reg.RemovePlayer(42)
}
