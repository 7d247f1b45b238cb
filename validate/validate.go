// Command validate checks every court configuration JSON file in the
// configs directory. It verifies:
//   - JSON structure and required fields
//   - Court dimensions within sane bounds
//   - Ball count and radius consistent with the court width
//   - Spawn rows landing inside each team's half of the court
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/courtside/dodgeball-server/game/arena"
)

// ValidationResult captures the outcome of validating a single file.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateConfig loads and validates a single court configuration file.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var cfg arena.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if cfg.Name == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "Missing name")
	}

	if err := arena.ValidateConfig(&cfg); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	result.Errors = append(result.Errors,
		fmt.Sprintf("court %.1fx%.1f, %d ball(s), ball spacing %.2f",
			cfg.CourtWidth, cfg.CourtLength, cfg.NumBalls,
			cfg.CourtWidth/float64(cfg.NumBalls+1)))
	return result
}

func main() {
	configDir := "configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No config files found in %s\n", configDir)
		return
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Println("  - " + err)
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("All configurations are valid")
	} else {
		fmt.Println("Some configurations have errors")
		os.Exit(1)
	}
}
