// Package config loads catalog client configuration from YAML with
// environment overrides for the connection credentials.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// EnvBaseURL overrides base_url from the config file.
	EnvBaseURL = "CATALOG_BASE_URL"
	// EnvAPIToken overrides api_token from the config file.
	EnvAPIToken = "CATALOG_API_TOKEN"
)

// RestoreConfig tunes the polling loop used when restoring soft-deleted
// assets.
type RestoreConfig struct {
	MaxRetries int           `yaml:"max_retries"`
	Interval   time.Duration `yaml:"interval"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config is the root configuration for a catalog client.
type Config struct {
	BaseURL  string        `yaml:"base_url"`
	APIToken string        `yaml:"api_token"`
	Restore  RestoreConfig `yaml:"restore"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
	Logging  LoggingConfig `yaml:"logging"`
}

// Default returns a Config with working defaults for everything but the
// connection credentials.
func Default() Config {
	return Config{
		Restore: RestoreConfig{
			MaxRetries: 5,
			Interval:   2 * time.Second,
		},
		CacheTTL: 5 * time.Minute,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the YAML file at path, applies environment overrides, and
// validates the result. An empty path skips the file and builds the config
// from defaults and environment alone.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(EnvAPIToken); v != "" {
		cfg.APIToken = v
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first configuration problem found.
func (c Config) Validate() error {
	if c.Restore.MaxRetries < 0 {
		return fmt.Errorf("restore.max_retries must not be negative, got %d", c.Restore.MaxRetries)
	}
	if c.Restore.Interval < 0 {
		return fmt.Errorf("restore.interval must not be negative, got %s", c.Restore.Interval)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl must not be negative, got %s", c.CacheTTL)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format %q is not one of text, json", c.Logging.Format)
	}
	return nil
}
