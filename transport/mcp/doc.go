// Package mcp exposes the arena server's observable state over the Model
// Context Protocol.
//
// The package is a thin proxy: every tool call performs a GET against the
// server's own REST API and formats the response as text. Tools are
// read-only: gameplay mutations only happen over the WebSocket transport,
// so an MCP console can never corrupt a running match.
//
// Tools:
//   - server_health
//   - lobby_status
//   - match_status
//   - list_players
//   - list_configs
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:5000")
//	http.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
//		response := client.GetMCPServer().HandleMessage(r.Context(), body)
//		...
//	})
package mcp
