package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.taskspan/taskspan.toml or OS-specific config dir)
// 3. Project config file (taskspan.toml or .taskspan.toml in current directory)
// 4. Environment variables
// CLI flags are applied on top by the command layer.
func Load() (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	if path := findUserConfigFile(); path != "" {
		if err := loadConfigFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", path, err)
		}
	}

	if path := findProjectConfigFile(); path != "" {
		if err := loadConfigFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", path, err)
		}
	}

	loadFromEnv(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks config values after all sources are merged. Flag overrides
// re-run this from the command layer.
func Validate(cfg *Config) error {
	if cfg.DefaultDurationDays <= 0 {
		return fmt.Errorf("default_duration_days must be positive, got %d", cfg.DefaultDurationDays)
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", cfg.Workers)
	}
	return nil
}

func loadConfigFile(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return err
	}
	return nil
}

// findUserConfigFile returns the user-level config file path if one exists.
func findUserConfigFile() string {
	var candidates []string

	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".taskspan", "taskspan.toml"))
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(configDir, "taskspan", "taskspan.toml"))
	}

	for _, path := range candidates {
		if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
			return path
		}
	}
	return ""
}

// findProjectConfigFile returns the project config file in the current
// directory, if one exists. taskspan.toml wins over .taskspan.toml.
func findProjectConfigFile() string {
	for _, name := range []string{"taskspan.toml", ".taskspan.toml"} {
		if fi, err := os.Stat(name); err == nil && !fi.IsDir() {
			return name
		}
	}
	return ""
}
