// Package service provides the business logic layer for the dodgeball arena
// server.
//
// The service package implements:
//   - The relay router: every inbound peer event maps to one GameService
//     method that validates against lobby/match state, mutates the registry,
//     and emits the resulting broadcast or unicast
//   - Lobby orchestration: name entry, team selection, readiness quorum,
//     and the transition into a match
//   - Match orchestration: start layout, liveness bookkeeping, end
//     detection, game-over broadcast, and the lobby reset for the next round
//   - Read-only snapshots consumed by the REST API and the MCP tools
//
// Architecture:
//
// The service layer sits between the transports (WebSocket, HTTP, MCP) and
// the arena core. It owns exactly one arena session. A single mutex guards
// the registry and match counters; each inbound event runs to completion
// under it, so sequences like "scan every ready flag, then start the match"
// are atomic against concurrent transitions from other connections.
//
// Error Handling:
//
// Client protocol misuse (empty name, invalid team, out-of-order readiness,
// unknown ball ID) is logged and dropped. The error returns exist for the
// gateway's diagnostics; nothing is ever sent back to the offending peer,
// whose only observable consequence is that state does not advance.
//
// Usage:
//
//	hub := websocket.NewHub(nil)
//	gameService := service.NewGameService(arena.DefaultConfig(), hub)
//	hub.SetService(gameService)
package service
