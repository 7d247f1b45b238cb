package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestConstants(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if AppName == "" {
		t.Error("AppName should not be empty")
	}

	expectedVersion := "1.0.0"
	if Version != expectedVersion {
		t.Errorf("Expected version %s, got %s", expectedVersion, Version)
	}

	expectedAppName := "Dodgeball Arena Server"
	if AppName != expectedAppName {
		t.Errorf("Expected app name %s, got %s", expectedAppName, AppName)
	}
}

func TestInitializeServices(t *testing.T) {
	originalConfigDir := *configDir
	*configDir = t.TempDir()
	defer func() { *configDir = originalConfigDir }()

	gameService, hub, configs, err := initializeServices()
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}
	if gameService == nil {
		t.Fatal("Expected game service to be initialized")
	}
	if hub == nil {
		t.Fatal("Expected hub to be initialized")
	}
	if configs == nil {
		t.Fatal("Expected config manager to be initialized")
	}

	// An empty config dir falls back to the built-in classic court.
	court := configs.GetDefault()
	if court.CourtWidth != 30 || court.CourtLength != 60 {
		t.Errorf("Expected built-in classic court, got %+v", court)
	}
}

func TestInitializeServices_CreatesConfigDir(t *testing.T) {
	originalConfigDir := *configDir
	*configDir = filepath.Join(t.TempDir(), "configs")
	defer func() { *configDir = originalConfigDir }()

	if _, _, _, err := initializeServices(); err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}
	if _, err := os.Stat(*configDir); err != nil {
		t.Errorf("Expected the config directory to be created: %v", err)
	}
}

func TestInitializeServices_UnknownCourt(t *testing.T) {
	originalConfigDir := *configDir
	originalConfigName := *configName
	*configDir = t.TempDir()
	*configName = "no-such-court"
	defer func() {
		*configDir = originalConfigDir
		*configName = originalConfigName
	}()

	if _, _, _, err := initializeServices(); err == nil {
		t.Error("Expected error for unknown court config")
	}
}

func TestFlagDefaults(t *testing.T) {
	if *port <= 0 || *port > 65535 {
		t.Errorf("Invalid default port: %d", *port)
	}
	if *configDir == "" {
		t.Error("Config directory should have a default value")
	}
}

func TestBuildRouter(t *testing.T) {
	originalConfigDir := *configDir
	*configDir = t.TempDir()
	defer func() { *configDir = originalConfigDir }()

	gameService, hub, configs, err := initializeServices()
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}
	handler := buildRouter(gameService, hub, configs, "localhost:0")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 from /api/health, got %d", rec.Code)
	}

	// The MCP endpoint only accepts POST.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/mcp", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405 from GET /mcp, got %d", rec.Code)
	}
}

// Note: main(), runHTTPServer(), runNgrokTunnel(), and runStdioMCP() start
// servers and block, so they are exercised by integration tests against a
// running process rather than unit tests.
