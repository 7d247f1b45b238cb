package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/courtside/dodgeball-server/game/arena"
	"github.com/courtside/dodgeball-server/game/config"
	"github.com/courtside/dodgeball-server/game/service"
)

// Client is a thin MCP client that proxies to the REST API. It exposes the
// arena's observable state as tools so an agent (or an operator's MCP
// console) can inspect a running session without a websocket connection.
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API.
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools.
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Dodgeball Arena Server",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Dodgeball Arena Server - MCP Interface

This is a thin client that proxies all requests to the REST API server.

The server runs one real-time dodgeball session: players connect over
WebSocket, pick a name and a team, ready up, and play until one team has
no live players left. These tools are read-only inspection of that session.

AVAILABLE TOOLS:
- server_health: Server status, player count, in-session flag
- lobby_status: Team selection lists (red/blue/unselected with ready flags)
- match_status: In-session flag and per-team live counters
- list_players: Administrative view of every connected player
- list_configs: Available court configurations`),
	)

	c.registerTools()
}

// registerTools registers all MCP tools.
func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "server_health",
		Description: "Get server status, connected player count, and whether a match is in session",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleServerHealth)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "lobby_status",
		Description: "Get the current team selection lists: red, blue, and unselected players with their ready flags",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleLobbyStatus)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "match_status",
		Description: "Get whether a match is in session and how many players remain live per team",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleMatchStatus)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_players",
		Description: "List every connected player with name, team, readiness, liveness, and lobby phase",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListPlayers)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List the available court configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)
}

// GetMCPServer returns the underlying MCP server for serving.
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// apiCall performs a GET against the REST API and decodes the JSON response.
func (c *Client) apiCall(path string, result interface{}) error {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(result)
}

// Tool handlers

func (c *Client) handleServerHealth(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var health struct {
		Status    string `json:"status"`
		Players   int    `json:"players"`
		InSession bool   `json:"in_session"`
	}
	if err := c.apiCall("/api/health", &health); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Status: %s\nConnected players: %d\nMatch in session: %v",
		health.Status, health.Players, health.InSession)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleLobbyStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var info arena.TeamSelectionInfo
	if err := c.apiCall("/api/lobby", &info); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	writeTeam := func(title string, members []arena.TeamMemberInfo) {
		fmt.Fprintf(&b, "%s (%d):\n", title, len(members))
		for _, m := range members {
			ready := " "
			if m.Ready {
				ready = "✓"
			}
			name := m.Username
			if name == "" {
				name = "(unnamed)"
			}
			fmt.Fprintf(&b, "  [%s] %s\n", ready, name)
		}
	}
	writeTeam("Red Team", info.RedTeam)
	writeTeam("Blue Team", info.BlueTeam)
	writeTeam("Unselected", info.UnselectedTeam)
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleMatchStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var status service.MatchStatus
	if err := c.apiCall("/api/match", &status); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("In session: %v\nAlive red: %d\nAlive blue: %d",
		status.InSession, status.AliveRed, status.AliveBlue)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListPlayers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var players []service.PlayerInfo
	if err := c.apiCall("/api/players", &players); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(players) == 0 {
		return mcp.NewToolResultText("No players connected"), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Players (%d):\n", len(players))
	for _, p := range players {
		name := p.Username
		if name == "" {
			name = "(unnamed)"
		}
		team := string(p.Team)
		if team == "" {
			team = "none"
		}
		fmt.Fprintf(&b, "  #%d %s team=%s ready=%v live=%v phase=%s\n",
			p.UUID, name, team, p.Ready, p.Live, p.Phase)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []config.Info
	if err := c.apiCall("/api/configs", &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(configs) == 0 {
		return mcp.NewToolResultText("No configs on disk; server uses the built-in classic court"), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Configs (%d):\n", len(configs))
	for _, cfg := range configs {
		fmt.Fprintf(&b, "  %s: %s court %.0fx%.0f, %d ball(s)\n",
			cfg.ConfigID, cfg.Name, cfg.CourtWidth, cfg.CourtLength, cfg.NumBalls)
	}
	return mcp.NewToolResultText(b.String()), nil
}
