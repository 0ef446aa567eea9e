package config

import (
	"os"
	"strconv"
)

// loadFromEnv overrides config from TASKSPAN_* environment variables.
// Unparseable numeric values are ignored rather than fatal; the merged
// config is validated afterwards anyway.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TASKSPAN_INPUT"); v != "" {
		cfg.Input = v
	}
	if v := os.Getenv("TASKSPAN_OUTPUT"); v != "" {
		cfg.Output = v
	}
	if v := os.Getenv("TASKSPAN_TITLE"); v != "" {
		cfg.Title = v
	}
	if v := os.Getenv("TASKSPAN_SHEET"); v != "" {
		cfg.Sheet = v
	}
	if v := os.Getenv("TASKSPAN_DURATION_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DefaultDurationDays = n
		}
	}
	if v := os.Getenv("TASKSPAN_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Workers = n
		}
	}
	if v := os.Getenv("TASKSPAN_PALETTE"); v != "" {
		cfg.PaletteFile = v
	}
	if v := os.Getenv("TASKSPAN_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TASKSPAN_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
}
