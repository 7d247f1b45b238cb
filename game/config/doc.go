// Package config provides court configuration management for the dodgeball
// arena server.
//
// Configurations are JSON files in a configurable directory, each describing
// a court: dimensions, player height, ball radius, and how many balls a
// match plays with. The manager caches loaded files, validates them against
// the arena package's consistency rules, and always has a default available
// (classic.json if present, otherwise the built-in classic court).
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//	cfg := manager.GetDefault()
package config
