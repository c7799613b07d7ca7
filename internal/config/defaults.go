package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the built-in runner configuration.
// It mirrors defaults/runner.yaml and is used when the embedded file cannot
// be parsed.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Player: RunnerPlayer{
			LaneWidth:             2.5,
			LateralRate:           10,
			Size:                  1.0,
			CollisionShrink:       0.1,
			CoinReach:             0.2,
			RollMS:                500,
			ReviveInvincibilityMS: 2000,
		},
		Physics: RunnerPhysics{
			Gravity:       -20,
			JumpImpulse:   10,
			GroundY:       0.5,
			BaseSpeed:     10,
			SpeedScale:    5,
			MaxFrameDelta: 0.25,
		},
		PowerUps: RunnerPowerUps{
			MagnetSeconds:         10,
			JetpackSeconds:        6,
			HoverboardSeconds:     10,
			HoverHeight:           5,
			HoverRate:             5,
			ShieldInvincibilityMS: 1500,
			MagnetPickupRange:     2,
			MagnetRadius:          15,
			MagnetPullSpeed:       20,
		},
		World: RunnerWorld{
			SpawnZ:              -100,
			CullZ:               10,
			SceneryCullZ:        20,
			ObstacleInterval:    1.5,
			MinObstacleInterval: 0.6,
			IntervalPerSpeed:    0.03,
			SceneryInterval:     0.5,
			MinSceneryInterval:  0.2,
			MaxSceneryInterval:  1.0,
			SceneryDistance:     8,
			PowerUpChance:       0.05,
			LowChance:           0.4,
			TallChance:          0.3,
			CoinRunChance:       0.7,
			CoinRunMin:          3,
			CoinRunMax:          5,
			CoinSpacing:         3,
			ClearRadius:         20,
			BurstParticles:      5,
			ParticleLife:        1.0,
		},
		Scoring: RunnerScoring{
			PointsPerUnit: 10,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}
