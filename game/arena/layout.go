package arena

// backRowOffset is how far in front of a team's back edge its players spawn.
const backRowOffset = 15

// ApplyStartingLayout places every player and ball into its starting
// orientation for a new match. It is deterministic: given the same registry
// contents (in ID order) and the same court config it always produces the
// same layout.
func ApplyStartingLayout(r *Registry, cfg *Config) {
	EnsureBalls(r, cfg)
	assignPlayerOrientations(r, cfg)
	assignBallOrientations(r, cfg)
}

// EnsureBalls tops the registry up to the configured ball count. Existing
// balls are never deleted or recreated, so IDs referenced by in-flight
// client messages stay valid across rounds.
func EnsureBalls(r *Registry, cfg *Config) {
	for r.NumBalls() < cfg.NumBalls {
		r.AddBall(Vector3{}, Vector3{})
	}
}

// assignPlayerOrientations spaces each team evenly along the court width on
// its own back row. The k-th player (1-indexed, registry ID order) on a team
// of N stands at x = -width/2 + k*width/(N+1). Red faces +z, blue faces -z.
func assignPlayerOrientations(r *Registry, cfg *Config) {
	numRed, numBlue := 0, 0
	r.ForEachPlayer(func(p *Player) {
		switch p.Team {
		case TeamRed:
			numRed++
		case TeamBlue:
			numBlue++
		}
	})

	redSpacing := cfg.CourtWidth / float64(numRed+1)
	blueSpacing := cfg.CourtWidth / float64(numBlue+1)

	i, j := 1, 1
	r.ForEachPlayer(func(p *Player) {
		switch p.Team {
		case TeamRed:
			p.Position = Vector3{
				X: -cfg.CourtWidth/2 + redSpacing*float64(i),
				Y: cfg.PlayerHeight / 2,
				Z: -cfg.CourtLength/2 + cfg.PlayerHeight + backRowOffset,
			}
			p.Facing = Vector3{Z: 1}
			i++
		case TeamBlue:
			p.Position = Vector3{
				X: -cfg.CourtWidth/2 + blueSpacing*float64(j),
				Y: cfg.PlayerHeight / 2,
				Z: cfg.CourtLength/2 - cfg.PlayerHeight - backRowOffset,
			}
			p.Facing = Vector3{Z: -1}
			j++
		}
		p.Vel = Vector3{}
	})
}

// assignBallOrientations lines the balls up along the center line at rest.
func assignBallOrientations(r *Registry, cfg *Config) {
	spacing := cfg.CourtWidth / float64(r.NumBalls()+1)
	k := 1
	r.ForEachBall(func(b *Ball) {
		b.Position = Vector3{
			X: -cfg.CourtWidth/2 + spacing*float64(k),
			Y: cfg.BallRadius,
			Z: 0,
		}
		b.Vel = Vector3{}
		b.Quaternion = Quaternion{}
		b.Live = true
		k++
	})
}
