// Package config provides YAML-based engine configuration loading and
// difficulty presets.
package config

import (
	"fmt"

	"github.com/vovakirdan/tilequest/internal/interactives"
)

// EngineConfig contains all tunable parameters of the engine.
type EngineConfig struct {
	Mechanisms  MechanismConfig  `yaml:"mechanisms"`
	World       WorldConfig      `yaml:"world"`
	Player      PlayerConfig     `yaml:"player"`
	Projectiles ProjectileConfig `yaml:"projectiles"`
	Runtime     RuntimeConfig    `yaml:"runtime"`
}

// MechanismConfig holds the timings and thresholds of the tile mechanisms.
type MechanismConfig struct {
	LeverCooldown   float64 `yaml:"lever_cooldown"`
	LeanDelay       float64 `yaml:"lean_delay"`
	ExitTransition  float64 `yaml:"exit_transition"`
	TurretPeriod    float64 `yaml:"turret_period"`
	IceSlideDelay   float64 `yaml:"ice_slide_delay"`
	BrightThreshold int     `yaml:"bright_threshold"`
	DarkThreshold   int     `yaml:"dark_threshold"`
}

// WorldConfig defines the world geometry and lighting.
type WorldConfig struct {
	TileSize     int `yaml:"tile_size"`
	LightFalloff int `yaml:"light_falloff"`
	IceRadius    int `yaml:"ice_radius"`
	BombRadius   int `yaml:"bomb_radius"`
}

// PlayerConfig defines the player character.
type PlayerConfig struct {
	Speed        float64 `yaml:"speed"`         // World units per second
	IceSpeed     float64 `yaml:"ice_speed"`     // Sliding speed on ice
	WalkwaySpeed float64 `yaml:"walkway_speed"` // Drift speed on a moving walkway
	Size         float64 `yaml:"size"`          // Side of the player's hitbox
	Health       int     `yaml:"health"`
	Bombs        int     `yaml:"bombs"`
}

// ProjectileConfig defines arrows, bombs and turret shots.
type ProjectileConfig struct {
	Speed    float64 `yaml:"speed"`
	Size     float64 `yaml:"size"`
	Lifetime float64 `yaml:"lifetime"` // Seconds before a projectile fizzles out
	Cooldown float64 `yaml:"cooldown"` // Seconds between player shots
}

// RuntimeConfig defines the simulation loop.
type RuntimeConfig struct {
	TickRate int `yaml:"tick_rate"`
}

// Tuning converts the mechanism section for the interactives grid.
func (c EngineConfig) Tuning() interactives.Tuning {
	m := c.Mechanisms
	return interactives.Tuning{
		LeverCooldown:   m.LeverCooldown,
		LeanDelay:       m.LeanDelay,
		ExitTransition:  m.ExitTransition,
		TurretPeriod:    m.TurretPeriod,
		IceSlideDelay:   m.IceSlideDelay,
		BrightThreshold: uint8(m.BrightThreshold),
		DarkThreshold:   uint8(m.DarkThreshold),
	}
}

// Validate reports the first value that would break the simulation.
func (c EngineConfig) Validate() error {
	m := c.Mechanisms
	for name, v := range map[string]float64{
		"mechanisms.lever_cooldown":  m.LeverCooldown,
		"mechanisms.lean_delay":      m.LeanDelay,
		"mechanisms.exit_transition": m.ExitTransition,
		"mechanisms.turret_period":   m.TurretPeriod,
		"mechanisms.ice_slide_delay": m.IceSlideDelay,
		"player.speed":               c.Player.Speed,
		"player.size":                c.Player.Size,
		"projectiles.speed":          c.Projectiles.Speed,
		"projectiles.size":           c.Projectiles.Size,
		"projectiles.lifetime":       c.Projectiles.Lifetime,
	} {
		if v <= 0 {
			return fmt.Errorf("config: %s must be positive, got %v", name, v)
		}
	}
	for name, v := range map[string]int{
		"mechanisms.bright_threshold": m.BrightThreshold,
		"mechanisms.dark_threshold":   m.DarkThreshold,
		"world.light_falloff":         c.World.LightFalloff,
	} {
		if v < 0 || v > 255 {
			return fmt.Errorf("config: %s must be within [0,255], got %d", name, v)
		}
	}
	if c.World.TileSize <= 0 {
		return fmt.Errorf("config: world.tile_size must be positive, got %d", c.World.TileSize)
	}
	if c.Player.Size > float64(c.World.TileSize) {
		return fmt.Errorf("config: player.size %v exceeds tile size %d", c.Player.Size, c.World.TileSize)
	}
	if c.Runtime.TickRate <= 0 {
		return fmt.Errorf("config: runtime.tick_rate must be positive, got %d", c.Runtime.TickRate)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficultyPreset parses a preset name. The empty string means normal.
func ParseDifficultyPreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return DifficultyNormal, fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
	}
}
