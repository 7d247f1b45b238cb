// Command dodgeball-server runs the authoritative session server for a
// real-time multiplayer dodgeball arena.
//
// It supports two modes:
//  1. "server" (default) – runs the HTTP server exposing the REST API, the
//     WebSocket session group, and an /mcp HTTP endpoint
//  2. "stdio-mcp" – runs an MCP stdio server backed by an internal HTTP API
//
// Flags control host/port, the court config directory, debug logging,
// version output, and optional ngrok tunneling so remote players can reach
// a development server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/courtside/dodgeball-server/api"
	"github.com/courtside/dodgeball-server/game/config"
	"github.com/courtside/dodgeball-server/game/service"
	"github.com/courtside/dodgeball-server/transport/mcp"
	"github.com/courtside/dodgeball-server/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Dodgeball Arena Server"
)

// Configuration flags control how the server starts.
var (
	port         = flag.Int("port", getPortDefault(), "HTTP server port")
	host         = flag.String("host", "", "HTTP server host (empty binds all interfaces)")
	configDir    = flag.String("config-dir", getConfigDirDefault(), "Directory containing court configurations")
	configName   = flag.String("config", "", "Court configuration to play on (default: classic or built-in)")
	debug        = flag.Bool("debug", false, "Enable debug logging")
	version      = flag.Bool("version", false, "Show version information")
	ngrokEnabled = flag.Bool("ngrok", false, "Enable ngrok tunnel")
	ngrokAuth    = flag.String("ngrok-auth", "", "Ngrok auth token (or use NGROK_AUTHTOKEN env var)")
	ngrokDomain  = flag.String("ngrok-domain", "", "Custom ngrok domain (optional)")
)

// getPortDefault returns the default listen port, honoring the PORT
// environment variable the way hosted deployments set it.
func getPortDefault() int {
	if p := os.Getenv("PORT"); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			return n
		}
	}
	return 5000
}

// getConfigDirDefault returns the default configuration directory.
// It first honors the CONFIG_DIR environment variable, then falls back to
// "configs".
func getConfigDirDefault() string {
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		return configDir
	}
	return "configs"
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] [MODE]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "%s v%s\n\n", AppName, Version)
		fmt.Fprintf(os.Stderr, "Available modes:\n")
		fmt.Fprintf(os.Stderr, "  server, http     Run HTTP server with API, WebSocket, and MCP endpoint (default)\n")
		fmt.Fprintf(os.Stderr, "  stdio-mcp        Run MCP stdio server with internal HTTP server\n")
		fmt.Fprintf(os.Stderr, "  mcp              Alias for stdio-mcp\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                    # Run server on default port 5000\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -port 9090         # Run server on port 9090\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -config practice   # Play on the practice court\n", os.Args[0])
	}
}

// main parses flags, initializes services, and starts the selected mode.
func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	} else {
		log.Println("Loaded environment variables from .env file")
	}

	flag.Parse()

	if *version {
		fmt.Printf("%s v%s\n", AppName, Version)
		os.Exit(0)
	}

	if *debug {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetFlags(log.LstdFlags)
	}

	args := flag.Args()
	mode := "server" // default
	if len(args) > 0 {
		mode = args[0]
	}

	log.Printf("Starting %s v%s (mode: %s)", AppName, Version, mode)

	gameService, hub, configs, err := initializeServices()
	if err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	switch mode {
	case "stdio-mcp", "mcp-stdio", "mcp":
		runStdioMCP(gameService, hub, configs)

	case "server", "http":
		runHTTPServer(gameService, hub, configs)

	default:
		log.Fatalf("Unknown mode: %s. Use 'server' (default) or 'stdio-mcp'", mode)
	}
}

// initializeServices wires the config manager, the websocket hub, and the
// game service for the single arena session.
func initializeServices() (service.GameService, *websocket.Hub, *config.Manager, error) {
	// The config directory is optional: with an empty one the built-in
	// classic court is used.
	if _, err := os.Stat(*configDir); os.IsNotExist(err) {
		if err := os.MkdirAll(*configDir, 0755); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	configs, err := config.NewManager(*configDir)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	court := configs.GetDefault()
	if *configName != "" {
		court, err = configs.LoadConfig(*configName)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to load court config %q: %w", *configName, err)
		}
	}
	log.Printf("Court: %s (%.0fx%.0f, %d ball(s))", court.Name, court.CourtWidth, court.CourtLength, court.NumBalls)

	// The hub is the service's broadcaster and the service is the hub's
	// dispatcher, so wire them in two steps.
	hub := websocket.NewHub(nil)
	gameService := service.NewGameService(court, hub)
	hub.SetService(gameService)

	return gameService, hub, configs, nil
}

// buildRouter combines the API server with the /mcp proxy endpoint.
func buildRouter(gameService service.GameService, hub *websocket.Hub, configs *config.Manager, addr string) http.Handler {
	apiServer := api.NewServer(gameService, hub, configs)
	mcpClient := mcp.NewClient(fmt.Sprintf("http://%s", addr))

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	})
	return mainRouter
}

// runHTTPServer starts the HTTP server with the REST API, the WebSocket
// session group, and the /mcp proxy endpoint. If ngrok is enabled (via flag
// or environment), it also provisions a public tunnel.
func runHTTPServer(gameService service.GameService, hub *websocket.Hub, configs *config.Manager) {
	addr := fmt.Sprintf("%s:%d", *host, *port)
	localAddr := addr
	if *host == "" {
		localAddr = fmt.Sprintf("localhost:%d", *port)
	}
	mainRouter := buildRouter(gameService, hub, configs, localAddr)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Printf("Server is listening on %s", addr)
		log.Printf("REST API: http://%s/api", localAddr)
		log.Printf("WebSocket: ws://%s/ws", localAddr)
		log.Printf("MCP endpoint: http://%s/mcp", localAddr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Check if ngrok should be enabled (from flag or environment)
	ngrokShouldRun := *ngrokEnabled
	if !ngrokShouldRun {
		if envEnabled := os.Getenv("NGROK_ENABLED"); envEnabled == "true" || envEnabled == "1" {
			ngrokShouldRun = true
		}
	}

	if ngrokShouldRun {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(ctx, mainRouter)
		}()
	}

	sig := <-stop
	log.Printf("Received signal: %v. Shutting down...", sig)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("Server stopped")
}

// runNgrokTunnel serves the router through a public ngrok endpoint so
// remote players can join a development server.
func runNgrokTunnel(ctx context.Context, handler http.Handler) {
	authToken := *ngrokAuth
	if authToken == "" {
		authToken = os.Getenv("NGROK_AUTHTOKEN")
		if authToken == "" {
			authToken = os.Getenv("NGROK_AUTH_TOKEN")
		}
	}
	if authToken == "" {
		log.Println("WARNING: Ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN env var)")
		return
	}

	log.Println("Starting ngrok tunnel...")

	domain := *ngrokDomain
	if domain == "" {
		domain = os.Getenv("NGROK_DOMAIN")
	}

	var tunnel ngrokConfig.Tunnel
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
		log.Printf("Using custom ngrok domain: %s", domain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
	if err != nil {
		log.Printf("Failed to start ngrok tunnel: %v", err)
		return
	}
	defer func() {
		if err := tun.Close(); err != nil {
			log.Printf("Failed to close ngrok tunnel: %v", err)
		}
	}()

	ngrokURL := tun.URL()
	log.Printf("Ngrok tunnel established: %s", ngrokURL)
	log.Printf("  WebSocket (ngrok): %s/ws", ngrokURL)
	log.Printf("  REST API (ngrok): %s/api", ngrokURL)

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed {
		log.Printf("Ngrok server error: %v", err)
	}
	log.Println("Ngrok tunnel closed")
}

// runStdioMCP runs the MCP tools over stdio, backed by an internal HTTP
// server so the tool handlers have a REST API to proxy to.
func runStdioMCP(gameService service.GameService, hub *websocket.Hub, configs *config.Manager) {
	addr := fmt.Sprintf("localhost:%d", *port)
	mainRouter := buildRouter(gameService, hub, configs, addr)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		log.Printf("Internal HTTP server listening on %s", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Internal HTTP server failed: %v", err)
		}
	}()

	mcpClient := mcp.NewClient(fmt.Sprintf("http://%s", addr))
	if err := mcpserver.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		log.Fatalf("MCP stdio server failed: %v", err)
	}
}
