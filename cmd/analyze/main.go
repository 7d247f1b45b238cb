// Command analyze prints quick, human-readable heuristics about court
// configuration files. For each config it summarizes dimensions and ball
// count, then previews the spawn spacing a team of 1..6 players would get,
// flagging courts where players or balls would spawn closer together than
// a body width.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/courtside/dodgeball-server/game/arena"
)

func main() {
	configDir := flag.String("config-dir", "configs", "Directory containing court configurations")
	flag.Parse()

	files, err := filepath.Glob(filepath.Join(*configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No config files in %s, analyzing built-in default\n", *configDir)
		analyze("built-in classic", arena.DefaultConfig())
		return
	}

	for _, file := range files {
		fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(file))
		analyzeFile(file)
	}
}

func analyzeFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		return
	}

	var cfg arena.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		fmt.Printf("Error parsing JSON: %v\n", err)
		return
	}
	analyze(filepath.Base(path), &cfg)
}

func analyze(label string, cfg *arena.Config) {
	fmt.Printf("Name: %s\n", cfg.Name)
	fmt.Printf("Court: %.1f wide x %.1f long\n", cfg.CourtWidth, cfg.CourtLength)
	fmt.Printf("Player height: %.1f, Ball radius: %.2f\n", cfg.PlayerHeight, cfg.BallRadius)
	fmt.Printf("Balls: %d\n", cfg.NumBalls)

	if err := arena.ValidateConfig(cfg); err != nil {
		fmt.Printf("WARNING: config is invalid: %v\n", err)
		return
	}

	ballSpacing := cfg.CourtWidth / float64(cfg.NumBalls+1)
	fmt.Printf("Ball spacing on center line: %.2f\n", ballSpacing)

	fmt.Println("Spawn spacing per team size:")
	for n := 1; n <= 6; n++ {
		spacing := cfg.CourtWidth / float64(n+1)
		note := ""
		// A spacing below one player height means shoulder-to-shoulder spawns.
		if spacing < cfg.PlayerHeight {
			note = "  (cramped)"
		}
		fmt.Printf("  %d players: %.2f apart%s\n", n, spacing, note)
	}

	redZ := -cfg.CourtLength/2 + cfg.PlayerHeight + 15
	blueZ := cfg.CourtLength/2 - cfg.PlayerHeight - 15
	fmt.Printf("Spawn rows: red z=%.1f, blue z=%.1f (gap %.1f)\n", redZ, blueZ, blueZ-redZ)
}
