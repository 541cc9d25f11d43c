package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var ErrNoConfig = errors.New("no config file found")

// Default returns the settings the bus demo runs with when config.yml is absent.
func Default() AppConfig {
	return AppConfig{
		Window: WindowConfig{
			Title:      "2D Bus",
			Width:      0,
			Height:     0,
			Fullscreen: true,
			TargetFPS:  75,
		},
		Assets: AssetsConfig{
			Dir:  "assets",
			Font: "fonts/Unageo-Medium.ttf",
		},
		Telemetry: TelemetryConfig{
			Enabled: false,
			Port:    7777,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the first file that exists among paths, applies it over the
// defaults and validates the result. ErrNoConfig is returned together with
// the defaults when none of the paths exist.
func Load(paths ...string) (AppConfig, error) {
	if len(paths) == 0 {
		paths = []string{"config.yml"}
	}
	cfg := Default()

	var data []byte
	var err error
	for _, p := range paths {
		if p == "" {
			continue
		}
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("read %s: %w", p, err)
		}
	}
	if data == nil {
		return cfg, ErrNoConfig
	}

	if err := Parse(data, &cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Parse decodes YAML over cfg and validates it.
func Parse(data []byte, cfg *AppConfig) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)
	return Validate(*cfg)
}

func Validate(cfg AppConfig) error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// SlogLevel maps the configured level name onto slog.
func (c LogConfig) SlogLevel() slog.Level {
	switch c.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
