// Package config provides YAML-based configuration for the runner
// simulation: tuning constants, difficulty presets, validation and hot
// reload.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// RunnerConfig contains every tunable constant of the runner simulation.
type RunnerConfig struct {
	Player   RunnerPlayer   `yaml:"player"`
	Physics  RunnerPhysics  `yaml:"physics"`
	PowerUps RunnerPowerUps `yaml:"powerups"`
	World    RunnerWorld    `yaml:"world"`
	Scoring  RunnerScoring  `yaml:"scoring"`
}

// RunnerPlayer defines the player's body and lateral movement.
type RunnerPlayer struct {
	LaneWidth             float64 `yaml:"lane_width"`
	LateralRate           float64 `yaml:"lateral_rate"`     // Exponential approach rate toward the target lane
	Size                  float64 `yaml:"size"`             // Edge length of the player cube
	CollisionShrink       float64 `yaml:"collision_shrink"` // Forgiveness margin for obstacle hits
	CoinReach             float64 `yaml:"coin_reach"`       // Extra margin for coin pickup without magnet
	RollMS                float64 `yaml:"roll_ms"`
	ReviveInvincibilityMS float64 `yaml:"revive_invincibility_ms"`
}

// RunnerPhysics defines vertical motion and forward speed.
type RunnerPhysics struct {
	Gravity       float64 `yaml:"gravity"` // Negative: pulls toward the ground
	JumpImpulse   float64 `yaml:"jump_impulse"`
	GroundY       float64 `yaml:"ground_y"` // Player centre height when standing
	BaseSpeed     float64 `yaml:"base_speed"`
	SpeedScale    float64 `yaml:"speed_scale"`     // Seconds of run time per +1 speed; 0 disables ramping
	MaxFrameDelta float64 `yaml:"max_frame_delta"` // Longest wall-clock step a frame may simulate
}

// Speed returns the forward speed after runTime seconds of simulated play.
func (p RunnerPhysics) Speed(runTime float64) float64 {
	if p.SpeedScale <= 0 || runTime <= 0 {
		return p.BaseSpeed
	}
	return p.BaseSpeed + runTime/p.SpeedScale
}

// RunnerPowerUps defines durations and strengths of timed effects.
type RunnerPowerUps struct {
	MagnetSeconds         float64 `yaml:"magnet_seconds"`
	JetpackSeconds        float64 `yaml:"jetpack_seconds"`
	HoverboardSeconds     float64 `yaml:"hoverboard_seconds"`
	HoverHeight           float64 `yaml:"hover_height"`
	HoverRate             float64 `yaml:"hover_rate"`
	ShieldInvincibilityMS float64 `yaml:"shield_invincibility_ms"`
	MagnetPickupRange     float64 `yaml:"magnet_pickup_range"`
	MagnetRadius          float64 `yaml:"magnet_radius"`
	MagnetPullSpeed       float64 `yaml:"magnet_pull_speed"`
}

// RunnerWorld defines spawning, movement and culling of world entities.
type RunnerWorld struct {
	SpawnZ              float64 `yaml:"spawn_z"`
	CullZ               float64 `yaml:"cull_z"`
	SceneryCullZ        float64 `yaml:"scenery_cull_z"`
	ObstacleInterval    float64 `yaml:"obstacle_interval"`
	MinObstacleInterval float64 `yaml:"min_obstacle_interval"`
	IntervalPerSpeed    float64 `yaml:"interval_per_speed"`
	SceneryInterval     float64 `yaml:"scenery_interval"`
	MinSceneryInterval  float64 `yaml:"min_scenery_interval"`
	MaxSceneryInterval  float64 `yaml:"max_scenery_interval"`
	SceneryDistance     float64 `yaml:"scenery_distance"` // Travel between scenery spawns once the run is moving
	PowerUpChance       float64 `yaml:"powerup_chance"`
	LowChance           float64 `yaml:"low_chance"`
	TallChance          float64 `yaml:"tall_chance"`
	CoinRunChance       float64 `yaml:"coin_run_chance"`
	CoinRunMin          int     `yaml:"coin_run_min"`
	CoinRunMax          int     `yaml:"coin_run_max"`
	CoinSpacing         float64 `yaml:"coin_spacing"`
	ClearRadius         float64 `yaml:"clear_radius"`
	BurstParticles      int     `yaml:"burst_particles"`
	ParticleLife        float64 `yaml:"particle_life"`
}

// RunnerScoring defines how score accrues.
type RunnerScoring struct {
	PointsPerUnit float64 `yaml:"points_per_unit"` // Score per unit of speed per second
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ErrUnknownPreset is returned when a preset name is not recognised.
var ErrUnknownPreset = errors.New("config: unknown difficulty preset")

// ParseDifficultyPreset converts a CLI value to a preset.
// The empty string means "keep the config as loaded".
func ParseDifficultyPreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPreset, s)
	}
}

// ApplyRunnerPreset adjusts the speed formula for a difficulty preset.
// Fixed keeps the loaded base speed and disables ramping.
func ApplyRunnerPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Physics.BaseSpeed = 8
		cfg.Physics.SpeedScale = 7
	case DifficultyNormal:
		cfg.Physics.BaseSpeed = 10
		cfg.Physics.SpeedScale = 5
	case DifficultyHard:
		cfg.Physics.BaseSpeed = 13
		cfg.Physics.SpeedScale = 3.5
	case DifficultyFixed:
		cfg.Physics.SpeedScale = 0
	}
}
