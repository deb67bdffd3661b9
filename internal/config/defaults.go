package config

import (
	_ "embed"
)

//go:embed defaults/engine.yaml
var defaultEngineYAML []byte

// DefaultEngineConfig returns the default engine configuration.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Mechanisms: MechanismConfig{
			LeverCooldown:   0.75,
			LeanDelay:       0.3,
			ExitTransition:  0.5,
			TurretPeriod:    3.0,
			IceSlideDelay:   0.1,
			BrightThreshold: 178,
			DarkThreshold:   128,
		},
		World: WorldConfig{
			TileSize:     16,
			LightFalloff: 32,
			IceRadius:    1,
			BombRadius:   1,
		},
		Player: PlayerConfig{
			Speed:        64,
			IceSpeed:     96,
			WalkwaySpeed: 32,
			Size:         12,
			Health:       3,
			Bombs:        3,
		},
		Projectiles: ProjectileConfig{
			Speed:    160,
			Size:     4,
			Lifetime: 2,
			Cooldown: 0.25,
		},
		Runtime: RuntimeConfig{
			TickRate: 60,
		},
	}
}
