package websocket

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/courtside/dodgeball-server/game/service"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096

	// Outbound frame buffer per client.
	sendBufferSize = 256
)

// Client is one connected peer: a websocket connection bound to the player
// allocated for it. The connID is a per-connection correlation ID for logs;
// the playerID is the entity identity everything else keys on.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	playerID int
	connID   string
}

func newClient(h *Hub, conn *websocket.Conn, playerID int) *Client {
	return &Client{
		hub:      h,
		conn:     conn,
		send:     make(chan []byte, sendBufferSize),
		playerID: playerID,
		connID:   uuid.NewString(),
	}
}

// enqueue queues a frame for delivery. A peer that cannot drain its buffer
// is dropped; its read pump then runs the normal disconnect cleanup.
func (c *Client) enqueue(frame []byte) {
	select {
	case c.send <- frame:
	default:
		log.Printf("Client %s send buffer full, dropping connection", c.connID)
		go c.conn.Close()
	}
}

// inboundEnvelope is the decoded shape of every client frame.
type inboundEnvelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// readPump pumps frames from the connection into the game service. On exit
// it detaches the client and removes its player, which also applies the
// mid-match disconnect bookkeeping.
func (c *Client) readPump() {
	defer func() {
		c.hub.removeClient(c)
		if err := c.hub.service.Disconnect(context.Background(), c.playerID); err != nil {
			log.Printf("Client %s disconnect cleanup: %v", c.connID, err)
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Client %s read error: %v", c.connID, err)
			}
			return
		}
		c.dispatch(raw)
	}
}

// dispatch routes one inbound frame to its service operation. Malformed or
// out-of-order input is logged and dropped; nothing is sent back to the
// offending peer and the connection stays up.
func (c *Client) dispatch(raw []byte) {
	var env inboundEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Printf("Client %s sent malformed frame: %v", c.connID, err)
		return
	}

	ctx := context.Background()
	var err error

	switch env.Event {
	case service.EventEnterName:
		var data struct {
			Username string `json:"username"`
		}
		if err = json.Unmarshal(env.Data, &data); err == nil {
			err = c.hub.service.EnterName(ctx, c.playerID, data.Username)
		}

	case service.EventSelectTeam:
		var data struct {
			Team string `json:"team"`
		}
		if err = json.Unmarshal(env.Data, &data); err == nil {
			err = c.hub.service.SelectTeam(ctx, c.playerID, data.Team)
		}

	case service.EventConfirmReady:
		// Ready must be a JSON boolean; a missing or non-boolean value is
		// protocol misuse, not a default-false.
		var data struct {
			Ready *bool `json:"ready"`
		}
		if err = json.Unmarshal(env.Data, &data); err == nil {
			if data.Ready == nil {
				log.Printf("Player %d selected invalid ready state", c.playerID)
				return
			}
			err = c.hub.service.ConfirmReady(ctx, c.playerID, *data.Ready)
		}

	case service.EventRequestSelectionInfo:
		err = c.hub.service.RequestTeamSelectionInfo(ctx, c.playerID)

	case service.EventReadyToStart:
		err = c.hub.service.ReadyToStart(ctx, c.playerID)

	case service.EventUpdatePlayer:
		var data service.PlayerUpdate
		if err = json.Unmarshal(env.Data, &data); err == nil {
			err = c.hub.service.UpdatePlayer(ctx, c.playerID, data)
		}

	case service.EventUpdateBall:
		var data service.BallUpdate
		if err = json.Unmarshal(env.Data, &data); err == nil {
			err = c.hub.service.UpdateBall(ctx, c.playerID, data)
		}

	default:
		log.Printf("Client %s sent unknown event %q", c.connID, env.Event)
		return
	}

	if err != nil {
		log.Printf("Client %s event %s dropped: %v", c.connID, env.Event, err)
	}
}

// writePump pumps queued frames to the connection and keeps it alive with
// periodic pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
