package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/courtside/dodgeball-server/game/service"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS fully open; the physics client is served from anywhere
		return true
	},
}

// Message is the wire envelope for every frame in both directions.
type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub owns the single "game" session group: every connected peer is a
// member. It implements service.Broadcaster, so the game service emits
// events without knowing about connections.
type Hub struct {
	mu      sync.RWMutex
	clients map[int]*Client
	service service.GameService
}

// NewHub creates a hub. The service may be nil at construction time and
// wired afterwards with SetService, since the service itself needs the hub
// as its Broadcaster.
func NewHub(svc service.GameService) *Hub {
	return &Hub{
		clients: make(map[int]*Client),
		service: svc,
	}
}

// SetService wires the game service the hub dispatches inbound events to.
func (h *Hub) SetService(svc service.GameService) {
	h.service = svc
}

// NumClients returns the current number of connected peers.
func (h *Hub) NumClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeWS upgrades an HTTP request, allocates a player for the peer, and
// starts the connection's read and write pumps.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	playerID, err := h.service.Connect(r.Context())
	if err != nil {
		log.Printf("Failed to admit peer: %v", err)
		conn.Close()
		return
	}

	client := newClient(h, conn, playerID)
	h.addClient(client)

	go client.writePump()
	go client.readPump()
}

// BroadcastAll sends an event to every session member.
func (h *Hub) BroadcastAll(event string, data interface{}) {
	frame, err := encodeMessage(event, data)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		c.enqueue(frame)
	}
}

// BroadcastOthers sends an event to every session member except the sender.
func (h *Hub) BroadcastOthers(senderID int, event string, data interface{}) {
	frame, err := encodeMessage(event, data)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, c := range h.clients {
		if id == senderID {
			continue
		}
		c.enqueue(frame)
	}
}

// SendTo unicasts an event to one session member. Unknown IDs are dropped;
// the peer may have disconnected between mutation and delivery.
func (h *Hub) SendTo(playerID int, event string, data interface{}) {
	frame, err := encodeMessage(event, data)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if c, ok := h.clients[playerID]; ok {
		c.enqueue(frame)
	}
}

func (h *Hub) addClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.playerID] = c
	log.Printf("Client %s joined session group as player %d (total clients: %d)",
		c.connID, c.playerID, len(h.clients))
}

// removeClient detaches a client from the group. The registry and match
// cleanup happens in the read pump's exit path, not here.
func (h *Hub) removeClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[c.playerID] == c {
		delete(h.clients, c.playerID)
		close(c.send)
		log.Printf("Client %s left session group (remaining clients: %d)",
			c.connID, len(h.clients))
	}
}

func encodeMessage(event string, data interface{}) ([]byte, error) {
	frame, err := json.Marshal(Message{Event: event, Data: data})
	if err != nil {
		log.Printf("Failed to marshal %s message: %v", event, err)
		return nil, err
	}
	return frame, nil
}
