// Package config loads the dashboard configuration from a YAML or JSON
// file with environment-variable overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/Millionaireguardian/polymarket-dashboard/reconcile"
)

// Config is the complete dashboard configuration.
type Config struct {
	// Source is the trade log location: an http(s) URL or a file path.
	Source string `json:"source" yaml:"source"`

	// Listen is the host:port the HTTP server binds to.
	Listen string `json:"listen" yaml:"listen"`

	// PollInterval is the refresh cadence, e.g. "30s", "1m".
	PollInterval string `json:"poll_interval" yaml:"poll_interval"`

	// DefaultInitialBalance and SnapTolerance feed the balance
	// reconstruction (units of account currency).
	DefaultInitialBalance float64 `json:"default_initial_balance" yaml:"default_initial_balance"`
	SnapTolerance         float64 `json:"snap_tolerance" yaml:"snap_tolerance"`

	LogLevel string `json:"log_level" yaml:"log_level"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Source:                "./data/trades.json",
		Listen:                "localhost:8080",
		PollInterval:          "30s",
		DefaultInitialBalance: 50,
		SnapTolerance:         100,
		LogLevel:              "info",
	}
}

// LoadFromFile loads configuration from a file, trying YAML first and
// falling back to JSON. Fields absent from the file keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}
	return cfg, nil
}

// ApplyEnv overrides fields from POLYDASH_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("POLYDASH_SOURCE"); v != "" {
		c.Source = v
	}
	if v := os.Getenv("POLYDASH_LISTEN"); v != "" {
		c.Listen = v
	}
	if v := os.Getenv("POLYDASH_POLL_INTERVAL"); v != "" {
		c.PollInterval = v
	}
	if v := os.Getenv("POLYDASH_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	if c.Source == "" {
		return fmt.Errorf("source is required")
	}
	if c.Listen == "" {
		return fmt.Errorf("listen is required")
	}
	d, err := c.Interval()
	if err != nil {
		return fmt.Errorf("invalid poll_interval %q: %w", c.PollInterval, err)
	}
	if d <= 0 {
		return fmt.Errorf("poll_interval must be positive")
	}
	if c.DefaultInitialBalance < 0 {
		return fmt.Errorf("default_initial_balance cannot be negative")
	}
	if c.SnapTolerance <= 0 {
		return fmt.Errorf("snap_tolerance must be positive")
	}
	switch strings.ToLower(c.LogLevel) {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}

// Interval parses PollInterval as a duration.
func (c *Config) Interval() (time.Duration, error) {
	return time.ParseDuration(c.PollInterval)
}

// ReconcileOptions converts the reconciliation constants for use by the
// balance reconstructor.
func (c *Config) ReconcileOptions() reconcile.Options {
	return reconcile.Options{
		DefaultInitialBalance: decimal.NewFromFloat(c.DefaultInitialBalance),
		SnapTolerance:         decimal.NewFromFloat(c.SnapTolerance),
	}
}
