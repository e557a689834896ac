package config

import (
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"
)

// Storage backends
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// Defaults applied by Validate
const (
	DefaultInstance     = "default"
	DefaultBackend      = BackendSQLite
	DefaultRedisURL     = "redis://localhost:6379/0"
	DefaultSQLitePath   = ".taskboard/state.db"
	DefaultFetchLatency = "500ms"
)

// Config represents the top-level taskboard.yml configuration
type Config struct {
	Version  string        `yaml:"version"`
	Instance string        `yaml:"instance,omitempty"` // Namespaces redis keys; DNS naming rules
	Storage  StorageConfig `yaml:"storage"`
	Fetch    FetchConfig   `yaml:"fetch"`
}

// StorageConfig selects and configures the persistence backend
type StorageConfig struct {
	Backend    string `yaml:"backend,omitempty"`     // memory, redis or sqlite
	RedisURL   string `yaml:"redis_url,omitempty"`   // Used when backend=redis
	SQLitePath string `yaml:"sqlite_path,omitempty"` // Used when backend=sqlite
}

// FetchConfig controls the simulated startup fetches
type FetchConfig struct {
	Latency string `yaml:"latency,omitempty"` // Go duration, "0" disables the delay

	latency time.Duration
}

// Default returns a validated configuration with every default applied.
func Default() *Config {
	c := &Config{Version: "1.0"}
	if err := c.Validate(); err != nil {
		panic(fmt.Sprintf("default configuration is invalid: %v", err))
	}
	return c
}

// FetchLatency returns the parsed fetch latency. Only meaningful after
// Validate.
func (c *Config) FetchLatency() time.Duration {
	return c.Fetch.latency
}

// Validate performs strict validation on the configuration and fills in
// defaults for omitted fields.
func (c *Config) Validate() error {
	// Required: version
	if c.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected: 1.0)", c.Version)
	}

	if c.Instance == "" {
		c.Instance = DefaultInstance
	}
	if err := ValidateName(c.Instance); err != nil {
		return err
	}

	if err := c.Storage.Validate(); err != nil {
		return err
	}

	if c.Fetch.Latency == "" {
		c.Fetch.Latency = DefaultFetchLatency
	}
	latency, err := time.ParseDuration(c.Fetch.Latency)
	if err != nil {
		return fmt.Errorf("invalid fetch.latency: %w", err)
	}
	if latency < 0 {
		return fmt.Errorf("fetch.latency must be >= 0, got %s", c.Fetch.Latency)
	}
	c.Fetch.latency = latency

	return nil
}

// Validate checks the backend and fills in its defaults
func (s *StorageConfig) Validate() error {
	if s.Backend == "" {
		s.Backend = DefaultBackend
	}

	switch s.Backend {
	case BackendMemory:
	case BackendRedis:
		if s.RedisURL == "" {
			s.RedisURL = DefaultRedisURL
		}
		if _, err := redis.ParseURL(s.RedisURL); err != nil {
			return fmt.Errorf("invalid storage.redis_url: %w", err)
		}
	case BackendSQLite:
		if s.SQLitePath == "" {
			s.SQLitePath = DefaultSQLitePath
		}
	default:
		return fmt.Errorf("invalid storage.backend: %s (must be 'memory', 'redis', or 'sqlite')", s.Backend)
	}

	return nil
}

// Load reads taskboard.yml from the specified path, applies environment
// overrides and validates the result
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// LoadOrDefault behaves like Load, but a missing file yields the defaults
// (with environment overrides) instead of an error.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		config := &Config{Version: "1.0"}
		if err := config.ApplyEnv(); err != nil {
			return nil, err
		}
		if err := config.Validate(); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		return config, nil
	}
	return Load(path)
}
