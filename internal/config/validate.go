package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

// Validate checks the configuration for values the simulation cannot run
// with. All problems are reported together.
func (c RunnerConfig) Validate() error {
	var problems []error
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Errorf(format, args...))
	}

	if c.Player.LaneWidth <= 0 {
		add("player.lane_width must be positive, got %v", c.Player.LaneWidth)
	}
	if c.Player.LateralRate <= 0 {
		add("player.lateral_rate must be positive, got %v", c.Player.LateralRate)
	}
	if c.Player.Size <= 0 {
		add("player.size must be positive, got %v", c.Player.Size)
	}
	if c.Player.CollisionShrink < 0 || c.Player.CollisionShrink*2 >= c.Player.Size {
		add("player.collision_shrink must be in [0, size/2), got %v", c.Player.CollisionShrink)
	}
	if c.Player.RollMS <= 0 {
		add("player.roll_ms must be positive, got %v", c.Player.RollMS)
	}

	if c.Physics.Gravity >= 0 {
		add("physics.gravity must be negative, got %v", c.Physics.Gravity)
	}
	if c.Physics.JumpImpulse <= 0 {
		add("physics.jump_impulse must be positive, got %v", c.Physics.JumpImpulse)
	}
	if c.Physics.BaseSpeed <= 0 {
		add("physics.base_speed must be positive, got %v", c.Physics.BaseSpeed)
	}
	if c.Physics.SpeedScale < 0 {
		add("physics.speed_scale must not be negative, got %v", c.Physics.SpeedScale)
	}
	if c.Physics.MaxFrameDelta <= 0 {
		add("physics.max_frame_delta must be positive, got %v", c.Physics.MaxFrameDelta)
	}

	p := c.PowerUps
	if p.MagnetSeconds <= 0 || p.JetpackSeconds <= 0 || p.HoverboardSeconds <= 0 {
		add("powerups durations must be positive")
	}
	if p.HoverHeight <= c.Physics.GroundY {
		add("powerups.hover_height must be above physics.ground_y, got %v", p.HoverHeight)
	}
	if p.MagnetRadius < p.MagnetPickupRange {
		add("powerups.magnet_radius (%v) must not be smaller than magnet_pickup_range (%v)",
			p.MagnetRadius, p.MagnetPickupRange)
	}

	w := c.World
	if w.SpawnZ >= 0 {
		add("world.spawn_z must be ahead of the player (negative), got %v", w.SpawnZ)
	}
	if w.CullZ <= 0 || w.SceneryCullZ <= 0 {
		add("world cull thresholds must be behind the player (positive)")
	}
	if w.ObstacleInterval <= 0 || w.MinObstacleInterval <= 0 {
		add("world obstacle intervals must be positive")
	}
	if w.MinSceneryInterval <= 0 || w.MaxSceneryInterval < w.MinSceneryInterval {
		add("world scenery interval bounds are inconsistent")
	}
	if w.SceneryDistance <= 0 {
		add("world.scenery_distance must be positive, got %v", w.SceneryDistance)
	}
	chances := []struct {
		name string
		v    float64
	}{
		{"powerup_chance", w.PowerUpChance},
		{"low_chance", w.LowChance},
		{"tall_chance", w.TallChance},
		{"coin_run_chance", w.CoinRunChance},
	}
	for _, ch := range chances {
		if ch.v < 0 || ch.v > 1 {
			add("world.%s must be in [0, 1], got %v", ch.name, ch.v)
		}
	}
	if w.LowChance+w.TallChance > 1 {
		add("world.low_chance + tall_chance must not exceed 1")
	}
	if w.CoinRunMin < 1 || w.CoinRunMax < w.CoinRunMin {
		add("world coin run bounds are inconsistent: %d..%d", w.CoinRunMin, w.CoinRunMax)
	}
	if w.ParticleLife <= 0 {
		add("world.particle_life must be positive, got %v", w.ParticleLife)
	}

	if c.Scoring.PointsPerUnit < 0 {
		add("scoring.points_per_unit must not be negative, got %v", c.Scoring.PointsPerUnit)
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(problems...))
}
