package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/courtside/dodgeball-server/game/arena"
)

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// Info describes one available court configuration.
type Info struct {
	Filename    string  `json:"filename"`
	ConfigID    string  `json:"config_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	CourtWidth  float64 `json:"court_width"`
	CourtLength float64 `json:"court_length"`
	NumBalls    int     `json:"num_balls"`
}

// Manager handles court configuration loading and caching.
type Manager struct {
	configDir     string
	defaultConfig *arena.Config
	configs       map[string]*arena.Config
	mu            sync.RWMutex
}

// NewManager creates a configuration manager over a directory of JSON court
// files. The directory may be empty; the built-in classic court is always
// available as the default.
func NewManager(configDir string) (*Manager, error) {
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*arena.Config),
	}
	m.loadDefaultConfig()
	return m, nil
}

// LoadConfig loads a configuration by name.
func (m *Manager) LoadConfig(name string) (*arena.Config, error) {
	m.mu.RLock()
	if config, exists := m.configs[name]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if config, exists := m.configs[name]; exists {
		return config, nil
	}

	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}
	configPath := filepath.Join(m.configDir, filename)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config arena.Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := arena.ValidateConfig(&config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	m.configs[name] = &config
	return &config, nil
}

// ListConfigs returns information about all available configurations.
func (m *Manager) ListConfigs() ([]*Info, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var configs []*Info
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".json")
		config, err := m.LoadConfig(name)
		if err != nil {
			// Skip invalid configs
			continue
		}

		configs = append(configs, &Info{
			Filename:    entry.Name(),
			ConfigID:    name,
			Name:        config.Name,
			Description: config.Description,
			CourtWidth:  config.CourtWidth,
			CourtLength: config.CourtLength,
			NumBalls:    config.NumBalls,
		})
	}
	return configs, nil
}

// GetDefault returns the default configuration.
func (m *Manager) GetDefault() *arena.Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SetDefault sets the default configuration by name.
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = config
	return nil
}

// SaveConfig validates and writes a configuration to disk.
func (m *Manager) SaveConfig(name string, config *arena.Config) error {
	if err := arena.ValidateConfig(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}
	configPath := filepath.Join(m.configDir, filename)

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	m.mu.Lock()
	m.configs[name] = config
	m.mu.Unlock()
	return nil
}

// loadDefaultConfig picks the default court: classic.json if present, else
// the first loadable file, else the built-in classic court.
func (m *Manager) loadDefaultConfig() {
	if config, err := m.LoadConfig("classic"); err == nil {
		m.defaultConfig = config
		return
	}

	configs, err := m.ListConfigs()
	if err == nil && len(configs) > 0 {
		if config, err := m.LoadConfig(configs[0].ConfigID); err == nil {
			m.defaultConfig = config
			return
		}
	}

	m.defaultConfig = arena.DefaultConfig()
}
