// Package config handles configuration loading and defaults.
package config

// Default values.
const (
	DefaultInput        = "input.csv"
	DefaultOutput       = "gantt.html"
	DefaultSheet        = "Tasks"
	DefaultDurationDays = 7
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
)

// Config holds the full configuration for taskspan.
type Config struct {
	// Paths
	Input  string `toml:"input"`
	Output string `toml:"output"`

	// Chart
	Title string `toml:"title"`
	Sheet string `toml:"sheet"`

	// Resolution
	DefaultDurationDays int `toml:"default_duration_days"`
	Workers             int `toml:"workers"`

	// Colors
	PaletteFile string `toml:"palette_file"`

	// Logging
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

func setDefaults(cfg *Config) {
	cfg.Input = DefaultInput
	cfg.Output = DefaultOutput
	cfg.Sheet = DefaultSheet
	cfg.DefaultDurationDays = DefaultDurationDays
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}
