package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/courtside/dodgeball-server/game/service"
)

// newTestHub wires a hub to a real game service behind a test HTTP server.
func newTestHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub(nil)
	svc := service.NewGameService(nil, hub)
	hub.SetService(svc)

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	t.Cleanup(srv.Close)
	return hub, srv
}

// dial connects a test peer to the hub.
func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readEvent reads the next frame and decodes its envelope.
func readEvent(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	return msg
}

// waitForClients polls until the hub sees the expected number of peers.
func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.NumClients() != want {
		if time.Now().After(deadline) {
			t.Fatalf("Expected %d clients, got %d", want, hub.NumClients())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func sendEvent(t *testing.T, conn *websocket.Conn, event string, data interface{}) {
	t.Helper()
	conn.SetWriteDeadline(time.Now().Add(2 * time.Second))
	if err := conn.WriteJSON(Message{Event: event, Data: data}); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
}

func TestHub_ConnectAdmitsPlayer(t *testing.T) {
	hub, srv := newTestHub(t)

	dial(t, srv)
	waitForClients(t, hub, 1)

	dial(t, srv)
	waitForClients(t, hub, 2)
}

func TestHub_EnterNameBroadcastsToAll(t *testing.T) {
	hub, srv := newTestHub(t)

	first := dial(t, srv)
	waitForClients(t, hub, 1)
	second := dial(t, srv)
	waitForClients(t, hub, 2)

	sendEvent(t, first, service.EventEnterName, map[string]string{"username": "alice"})

	for i, conn := range []*websocket.Conn{first, second} {
		msg := readEvent(t, conn)
		if msg.Event != service.EventTeamSelectionInfo {
			t.Fatalf("Conn %d: expected %s, got %s", i, service.EventTeamSelectionInfo, msg.Event)
		}
		data, err := json.Marshal(msg.Data)
		if err != nil {
			t.Fatalf("Conn %d: re-marshal failed: %v", i, err)
		}
		var info struct {
			UnselectedTeam []struct {
				Username string `json:"username"`
			} `json:"unselectedTeam"`
		}
		if err := json.Unmarshal(data, &info); err != nil {
			t.Fatalf("Conn %d: decode failed: %v", i, err)
		}
		if len(info.UnselectedTeam) != 1 || info.UnselectedTeam[0].Username != "alice" {
			t.Errorf("Conn %d: unexpected lobby payload: %+v", i, info)
		}
	}
}

func TestHub_BroadcastOthersExcludesSender(t *testing.T) {
	hub, srv := newTestHub(t)

	first := dial(t, srv)
	waitForClients(t, hub, 1)
	second := dial(t, srv)
	waitForClients(t, hub, 2)

	// First dialed peer is player 0.
	hub.BroadcastOthers(0, "test-event", map[string]int{"n": 7})

	msg := readEvent(t, second)
	if msg.Event != "test-event" {
		t.Errorf("Expected test-event on the other peer, got %s", msg.Event)
	}

	// The sender must stay silent.
	first.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if err := first.ReadJSON(&msg); err == nil {
		t.Errorf("Sender should not receive its own broadcast, got %s", msg.Event)
	}
}

func TestHub_SendTo(t *testing.T) {
	hub, srv := newTestHub(t)

	first := dial(t, srv)
	waitForClients(t, hub, 1)
	second := dial(t, srv)
	waitForClients(t, hub, 2)

	hub.SendTo(1, "test-event", nil)

	msg := readEvent(t, second)
	if msg.Event != "test-event" {
		t.Errorf("Expected test-event, got %s", msg.Event)
	}

	first.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if err := first.ReadJSON(&msg); err == nil {
		t.Errorf("Unicast must reach only its target, got %s", msg.Event)
	}

	// Unknown IDs are silently dropped.
	hub.SendTo(99, "test-event", nil)
}

func TestHub_DisconnectCleansUp(t *testing.T) {
	hub, srv := newTestHub(t)

	conn := dial(t, srv)
	waitForClients(t, hub, 1)

	conn.Close()
	waitForClients(t, hub, 0)
}

func TestHub_MalformedFrameKeepsConnection(t *testing.T) {
	hub, srv := newTestHub(t)

	conn := dial(t, srv)
	waitForClients(t, hub, 1)

	conn.SetWriteDeadline(time.Now().Add(2 * time.Second))
	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("WriteMessage failed: %v", err)
	}
	// Unknown events are also dropped without closing.
	sendEvent(t, conn, "no-such-event", nil)

	// The connection is still serviced afterwards.
	sendEvent(t, conn, service.EventEnterName, map[string]string{"username": "bob"})
	msg := readEvent(t, conn)
	if msg.Event != service.EventTeamSelectionInfo {
		t.Errorf("Expected %s after bad frames, got %s", service.EventTeamSelectionInfo, msg.Event)
	}
}

func TestHub_ConfirmReadyRequiresBoolean(t *testing.T) {
	hub, srv := newTestHub(t)

	conn := dial(t, srv)
	waitForClients(t, hub, 1)

	sendEvent(t, conn, service.EventEnterName, map[string]string{"username": "bob"})
	readEvent(t, conn) // team-selection-info
	sendEvent(t, conn, service.EventSelectTeam, map[string]string{"team": "red"})
	readEvent(t, conn) // team-selection-info

	// A frame without a boolean ready value is dropped entirely.
	sendEvent(t, conn, service.EventConfirmReady, map[string]string{})

	// A proper ready then starts the one-player match.
	sendEvent(t, conn, service.EventConfirmReady, map[string]bool{"ready": true})
	msg := readEvent(t, conn)
	if msg.Event != service.EventTeamSelectionInfo {
		t.Fatalf("Expected %s, got %s", service.EventTeamSelectionInfo, msg.Event)
	}
	msg = readEvent(t, conn)
	if msg.Event != service.EventStartGame {
		t.Errorf("Expected %s, got %s", service.EventStartGame, msg.Event)
	}
}

func TestEncodeMessage(t *testing.T) {
	frame, err := encodeMessage("init", map[string]string{"k": "v"})
	if err != nil {
		t.Fatalf("encodeMessage failed: %v", err)
	}

	var msg Message
	if err := json.Unmarshal(frame, &msg); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if msg.Event != "init" {
		t.Errorf("Expected event init, got %s", msg.Event)
	}

	// Unmarshalable payloads must error instead of emitting a broken frame.
	if _, err := encodeMessage("bad", make(chan int)); err == nil {
		t.Error("Expected error for unmarshalable payload")
	}
}
