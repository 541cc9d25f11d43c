package config

// WindowConfig controls the raylib window
type WindowConfig struct {
	Title      string  `yaml:"title"`
	Caption    string  `yaml:"caption"`
	Width      int     `yaml:"width" validate:"gte=0"`
	Height     int     `yaml:"height" validate:"gte=0"`
	Fullscreen bool    `yaml:"fullscreen"`
	TargetFPS  float64 `yaml:"targetFPS" validate:"gt=0,lte=240"`
}

// AssetsConfig points at textures, cursor and font
type AssetsConfig struct {
	Dir      string `yaml:"dir"`
	Required bool   `yaml:"required"`
	Font     string `yaml:"font"`
}

// SimulationConfig seeds the fine draws; 0 means seed from the clock
type SimulationConfig struct {
	Seed int64 `yaml:"seed"`
}

// TelemetryConfig enables the spectator broadcast server
type TelemetryConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port" validate:"gt=0,lte=65535"`
}

// LogConfig selects the slog handler
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Window     WindowConfig     `yaml:"window"`
	Assets     AssetsConfig     `yaml:"assets"`
	Simulation SimulationConfig `yaml:"simulation"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Log        LogConfig        `yaml:"log"`
}
