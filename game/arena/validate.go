package arena

import "fmt"

// Court sanity bounds. A court below the minimums cannot seat a single
// player row; anything above the maximums is almost certainly a typo.
const (
	MinCourtWidth  = 4.0
	MaxCourtWidth  = 500.0
	MinCourtLength = 8.0
	MaxCourtLength = 1000.0
	MaxNumBalls    = 64
)

// ValidateConfig checks a court configuration for internal consistency.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if cfg.CourtWidth < MinCourtWidth || cfg.CourtWidth > MaxCourtWidth {
		return fmt.Errorf("court_width %.1f outside [%.0f, %.0f]", cfg.CourtWidth, MinCourtWidth, MaxCourtWidth)
	}
	if cfg.CourtLength < MinCourtLength || cfg.CourtLength > MaxCourtLength {
		return fmt.Errorf("court_length %.1f outside [%.0f, %.0f]", cfg.CourtLength, MinCourtLength, MaxCourtLength)
	}
	if cfg.PlayerHeight <= 0 {
		return fmt.Errorf("player_height must be positive, got %.1f", cfg.PlayerHeight)
	}
	if cfg.BallRadius <= 0 {
		return fmt.Errorf("ball_radius must be positive, got %.2f", cfg.BallRadius)
	}
	if cfg.NumBalls < 1 || cfg.NumBalls > MaxNumBalls {
		return fmt.Errorf("num_balls %d outside [1, %d]", cfg.NumBalls, MaxNumBalls)
	}
	// Balls are spaced width/(n+1) apart along the center line; each needs
	// room for its own diameter.
	spacing := cfg.CourtWidth / float64(cfg.NumBalls+1)
	if spacing < 2*cfg.BallRadius {
		return fmt.Errorf("%d balls of radius %.2f do not fit a court %.1f wide", cfg.NumBalls, cfg.BallRadius, cfg.CourtWidth)
	}
	// Spawn rows sit backRowOffset+height in from each back edge; they must
	// stay on their own half of the court.
	if cfg.PlayerHeight+backRowOffset >= cfg.CourtLength/2 {
		return fmt.Errorf("court_length %.1f too short for spawn rows", cfg.CourtLength)
	}
	return nil
}
