// Package api provides the HTTP surface of the dodgeball arena server.
//
// The api package implements:
//   - Read-only REST endpoints over the game service
//   - Court configuration listing
//   - The WebSocket upgrade mount
//   - Fully open CORS (the physics client is served from anywhere)
//
// Endpoints:
//
//   - GET /api/health - server status, player count, in-session flag
//   - GET /api/lobby - team-selection-info snapshot
//   - GET /api/match - in-session flag and per-team live counters
//   - GET /api/players - administrative player list
//   - GET /api/configs - available court configurations
//   - GET /api/configs/{name} - one court configuration
//   - /ws - WebSocket upgrade into the session group
//
// All gameplay traffic (lobby transitions, position relays) runs over the
// WebSocket connection; the REST endpoints never mutate session state.
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
package api
