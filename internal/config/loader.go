package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EngineFile is the file name the loader looks for.
const EngineFile = "engine.yaml"

// LoadEngine loads the engine configuration.
// Search order: customPath -> ~/.tilequest/configs/engine.yaml -> ./configs/engine.yaml -> embedded default.
// Files are applied over the defaults, so they only need the keys they change.
func LoadEngine(customPath string) (EngineConfig, error) {
	cfg := DefaultEngineConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath(EngineFile); userCfgPath != "" {
		if loaded, ok := tryLoad(userCfgPath, cfg); ok {
			return loaded, nil
		}
	}

	// Try local configs directory
	if loaded, ok := tryLoad(filepath.Join("configs", EngineFile), cfg); ok {
		return loaded, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultEngineYAML, &cfg); err != nil {
		return DefaultEngineConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad applies the file at path over base. Missing, unparsable or invalid
// files are skipped.
func tryLoad(path string, base EngineConfig) (EngineConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, false
	}
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, false
	}
	if cfg.Validate() != nil {
		return base, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tilequest", "configs", filename)
}

// ApplyPreset adjusts the configuration for a difficulty preset.
func ApplyPreset(cfg *EngineConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Player.Health = 5
		cfg.Player.Bombs = 5
		cfg.Mechanisms.TurretPeriod *= 1.5
	case DifficultyHard:
		cfg.Player.Health = 1
		cfg.Player.Bombs = 1
		cfg.Mechanisms.TurretPeriod *= 0.6
		cfg.Mechanisms.LeanDelay *= 1.5
	}
}
