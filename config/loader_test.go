package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, Validate(cfg))
	assert.Equal(t, 75.0, cfg.Window.TargetFPS)
	assert.Equal(t, 7777, cfg.Telemetry.Port)
	assert.False(t, cfg.Telemetry.Enabled)
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.ErrorIs(t, err, ErrNoConfig)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FirstExistingPathWins(t *testing.T) {
	path := writeConfig(t, "simulation:\n  seed: 12\n")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"), "", path)
	require.NoError(t, err)
	assert.Equal(t, int64(12), cfg.Simulation.Seed)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
window:
  width: 1280
  height: 720
  fullscreen: false
telemetry:
  enabled: true
  port: 9000
log:
  level: DEBUG
  format: json
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.False(t, cfg.Window.Fullscreen)
	assert.Equal(t, 75.0, cfg.Window.TargetFPS, "unset fields keep their defaults")
	assert.Equal(t, "assets", cfg.Assets.Dir)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, 9000, cfg.Telemetry.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "invalid: yaml: content: [[[")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "zero fps", body: "window:\n  targetFPS: 0\n"},
		{name: "negative width", body: "window:\n  width: -5\n"},
		{name: "port out of range", body: "telemetry:\n  port: 70000\n"},
		{name: "unknown level", body: "log:\n  level: loud\n"},
		{name: "unknown format", body: "log:\n  format: xml\n"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, test.body))
			assert.Error(t, err)
		})
	}
}

func TestLogConfig_SlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LogConfig{Level: "debug"}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, LogConfig{Level: "info"}.SlogLevel())
	assert.Equal(t, slog.LevelWarn, LogConfig{Level: "warn"}.SlogLevel())
	assert.Equal(t, slog.LevelError, LogConfig{Level: "error"}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, LogConfig{}.SlogLevel())
}
