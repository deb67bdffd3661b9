package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tilequest/internal/interactives"
)

func TestEmbeddedMatchesDefaults(t *testing.T) {
	var cfg EngineConfig
	require.NoError(t, yaml.Unmarshal(defaultEngineYAML, &cfg))
	assert.Equal(t, DefaultEngineConfig(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestDefaultTuningMatchesMechanisms(t *testing.T) {
	assert.Equal(t, interactives.DefaultTuning(), DefaultEngineConfig().Tuning())
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLoadEngineCustomPathOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	writeFile(t, path, "mechanisms:\n  lever_cooldown: 1.5\nplayer:\n  health: 9\n")

	cfg, err := LoadEngine(path)
	require.NoError(t, err)
	assert.Equal(t, 1.5, cfg.Mechanisms.LeverCooldown)
	assert.Equal(t, 9, cfg.Player.Health)
	assert.Equal(t, 0.3, cfg.Mechanisms.LeanDelay, "untouched keys keep defaults")
}

func TestLoadEngineCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadEngine(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "mechanisms: [")
	_, err = LoadEngine(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	writeFile(t, invalid, "world:\n  tile_size: 0\n")
	_, err = LoadEngine(invalid)
	assert.Error(t, err)
}

func TestLoadEngineUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := LoadEngine("")
	require.NoError(t, err)
	assert.Equal(t, DefaultEngineConfig(), cfg)

	writeFile(t, filepath.Join(home, ".tilequest", "configs", EngineFile), "runtime:\n  tick_rate: 30\n")
	cfg, err = LoadEngine("")
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Runtime.TickRate)

	writeFile(t, filepath.Join(home, ".tilequest", "configs", EngineFile), "runtime:\n  tick_rate: -1\n")
	cfg, err = LoadEngine("")
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.Runtime.TickRate, "invalid user config is skipped")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *EngineConfig)
	}{
		{"lean delay", func(c *EngineConfig) { c.Mechanisms.LeanDelay = 0 }},
		{"threshold", func(c *EngineConfig) { c.Mechanisms.BrightThreshold = 300 }},
		{"falloff", func(c *EngineConfig) { c.World.LightFalloff = -1 }},
		{"player too big", func(c *EngineConfig) { c.Player.Size = 20 }},
		{"tick rate", func(c *EngineConfig) { c.Runtime.TickRate = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultEngineConfig()
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestApplyPreset(t *testing.T) {
	base := DefaultEngineConfig()

	easy := base
	ApplyPreset(&easy, DifficultyEasy)
	assert.Equal(t, 5, easy.Player.Health)
	assert.Greater(t, easy.Mechanisms.TurretPeriod, base.Mechanisms.TurretPeriod)

	hard := base
	ApplyPreset(&hard, DifficultyHard)
	assert.Equal(t, 1, hard.Player.Health)
	assert.Less(t, hard.Mechanisms.TurretPeriod, base.Mechanisms.TurretPeriod)

	normal := base
	ApplyPreset(&normal, DifficultyNormal)
	assert.Equal(t, base, normal)
}

func TestParseDifficultyPreset(t *testing.T) {
	p, err := ParseDifficultyPreset("")
	require.NoError(t, err)
	assert.Equal(t, DifficultyNormal, p)

	p, err = ParseDifficultyPreset("hard")
	require.NoError(t, err)
	assert.Equal(t, DifficultyHard, p)

	_, err = ParseDifficultyPreset("nightmare")
	assert.Error(t, err)
}
