package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/courtside/dodgeball-server/game/config"
	"github.com/courtside/dodgeball-server/game/service"
	"github.com/courtside/dodgeball-server/transport/websocket"
)

// Server exposes the read-only REST surface and mounts the websocket
// upgrade. All gameplay traffic stays on the websocket; the REST endpoints
// exist for health checks, dashboards, and the MCP tools.
type Server struct {
	service service.GameService
	hub     *websocket.Hub
	configs *config.Manager
	router  *mux.Router
}

// NewServer creates the API server.
func NewServer(gameService service.GameService, hub *websocket.Hub, configs *config.Manager) *Server {
	s := &Server{
		service: gameService,
		hub:     hub,
		configs: configs,
		router:  mux.NewRouter(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(corsMiddleware)

	api := s.router.PathPrefix("/api").Subrouter()

	// OPTIONS is routed so preflights reach the CORS middleware.
	api.HandleFunc("/health", s.handleHealth).Methods("GET", "OPTIONS")
	api.HandleFunc("/lobby", s.handleLobby).Methods("GET", "OPTIONS")
	api.HandleFunc("/match", s.handleMatch).Methods("GET", "OPTIONS")
	api.HandleFunc("/players", s.handlePlayers).Methods("GET", "OPTIONS")
	api.HandleFunc("/configs", s.handleListConfigs).Methods("GET", "OPTIONS")
	api.HandleFunc("/configs/{name}", s.handleGetConfig).Methods("GET", "OPTIONS")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// corsMiddleware leaves the API fully open; the arena has no authenticated
// surface and the client may be served from anywhere.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := s.service.MatchStatus(r.Context())
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "healthy",
		"players":    len(s.service.ListPlayers(r.Context())),
		"in_session": status.InSession,
	})
}

func (s *Server) handleLobby(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.service.LobbyInfo(r.Context()))
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.service.MatchStatus(r.Context()))
}

func (s *Server) handlePlayers(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.service.ListPlayers(r.Context()))
}

func (s *Server) handleListConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := s.configs.ListConfigs()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if configs == nil {
		configs = []*config.Info{}
	}
	respondJSON(w, http.StatusOK, configs)
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	cfg, err := s.configs.LoadConfig(name)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, cfg)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	s.hub.ServeWS(w, r)
}
