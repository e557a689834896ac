package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envOverrides lists the environment variables that take precedence over
// taskboard.yml. Empty values leave the file's setting alone.
type envOverrides struct {
	Instance     string `env:"TASKBOARD_INSTANCE"`
	Backend      string `env:"TASKBOARD_STORAGE"`
	RedisURL     string `env:"TASKBOARD_REDIS_URL"`
	SQLitePath   string `env:"TASKBOARD_SQLITE_PATH"`
	FetchLatency string `env:"TASKBOARD_FETCH_LATENCY"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ApplyEnv overlays TASKBOARD_* environment variables onto c.
func (c *Config) ApplyEnv() error {
	var overrides envOverrides
	if err := ParseEnv(&overrides); err != nil {
		return err
	}

	if overrides.Instance != "" {
		c.Instance = overrides.Instance
	}
	if overrides.Backend != "" {
		c.Storage.Backend = overrides.Backend
	}
	if overrides.RedisURL != "" {
		c.Storage.RedisURL = overrides.RedisURL
	}
	if overrides.SQLitePath != "" {
		c.Storage.SQLitePath = overrides.SQLitePath
	}
	if overrides.FetchLatency != "" {
		c.Fetch.Latency = overrides.FetchLatency
	}

	return nil
}
