// Package config loads the application configuration for the server and CLI.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds the HTTP API settings.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// SeedConfig pins the random streams. Zero means derive from the clock; the
// event draw and the stock walk are always seeded independently.
type SeedConfig struct {
	Events int64 `yaml:"events"`
	Stocks int64 `yaml:"stocks"`
}

// QuotesConfig controls the market data collaborator.
type QuotesConfig struct {
	// Offline skips Yahoo entirely and serves the sample table.
	Offline bool `yaml:"offline"`
	// RefreshCron is the quote refresh schedule for held tickers.
	RefreshCron string `yaml:"refresh_cron"`
	// ProjectionSeed pins the Monte Carlo projections.
	ProjectionSeed int64 `yaml:"projection_seed"`
}

// Config is the full application configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Quotes QuotesConfig `yaml:"quotes"`
	Seeds  SeedConfig   `yaml:"seeds"`

	// DatabasePath enables SQLite session persistence when set.
	DatabasePath string `yaml:"database_path"`
	// CatalogFile overrides the built-in reference tables when set.
	CatalogFile string `yaml:"catalog_file"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":5000",
			AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		},
		Quotes: QuotesConfig{
			RefreshCron: "@every 15m",
		},
	}
}

// Load reads a YAML config file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server addr is required")
	}
	if c.Quotes.RefreshCron == "" {
		return fmt.Errorf("quote refresh schedule is required")
	}
	return nil
}
