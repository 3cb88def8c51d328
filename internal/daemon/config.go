// Package daemon manages the Inkwell server lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all server configuration.
type Config struct {
	API       APIConfig       `toml:"api"`
	Journal   JournalConfig   `toml:"journal"`
	Telemetry TelemetryConfig `toml:"telemetry"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// JournalConfig controls journal behavior.
type JournalConfig struct {
	// Timezone is the default day-boundary location for streak
	// bookkeeping. Users with a timezone preference override it.
	Timezone string `toml:"timezone"`
	// ReconcileHour is the local hour (0-23) of the nightly streak
	// reconciliation sweep.
	ReconcileHour int `toml:"reconcile_hour"`
}

// TelemetryConfig controls observability.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			Host: "127.0.0.1",
			Port: 8644,
		},
		Journal: JournalConfig{
			Timezone:      "UTC",
			ReconcileHour: 3,
		},
		Telemetry: TelemetryConfig{
			Prometheus: true,
		},
	}
}

// LoadConfig reads config from ~/.inkwell/config.toml, falling back to
// defaults when the file does not exist.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(inkwellHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // No config file yet — use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes the config to ~/.inkwell/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(inkwellHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// DayBoundary resolves the configured default day-boundary location.
// Invalid names fall back to UTC.
func (c Config) DayBoundary() *time.Location {
	loc, err := time.LoadLocation(c.Journal.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// inkwellHome returns the Inkwell data directory.
func inkwellHome() string {
	if env := os.Getenv("INKWELL_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".inkwell")
}

// Home is exported for use by other packages.
func Home() string {
	return inkwellHome()
}
