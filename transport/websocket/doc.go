// Package websocket provides the WebSocket transport for the dodgeball
// arena server.
//
// The websocket package implements:
//   - The connection gateway: one player allocated per connection,
//     disconnect cleanup routed back through the game service
//   - Event dispatch from inbound frames to GameService operations
//   - The single "game" session group with broadcast, broadcast-to-others,
//     and unicast delivery
//   - Connection lifecycle management with ping/pong keepalive
//
// Message Protocol:
//
// Frames are JSON envelopes in both directions:
//   - Incoming: {"event": "confirm-ready", "data": {"ready": true}}
//   - Outgoing: {"event": "team-selection-info", "data": {...}}
//
// Architecture:
//
// The package uses a hub-and-spoke model. The Hub holds every connected
// client and implements service.Broadcaster, so all outbound traffic is
// emitted by the game service without touching connection state. Each
// client runs a dedicated read pump (dispatching into the service) and
// write pump (draining its frame buffer). A peer that cannot drain its
// buffer is dropped and cleaned up through the normal disconnect path.
//
// Usage:
//
//	hub := websocket.NewHub(nil)
//	gameService := service.NewGameService(cfg, hub)
//	hub.SetService(gameService)
//	http.HandleFunc("/ws", hub.ServeWS)
package websocket
