package config

import (
	"errors"

	"github.com/caarlos0/env/v6"
)

// Config holds all configuration for the history module.
type Config struct {
	// Capacity bounds the in-memory history store. After any insert the
	// store holds at most this many records; the oldest-inserted beyond it
	// are dropped.
	Capacity int `env:"HISTORY_CAPACITY" envDefault:"100"`

	// DefaultLimit is the page size used when the caller supplies none.
	DefaultLimit int `env:"HISTORY_DEFAULT_LIMIT" envDefault:"20"`

	// SeedDemoData inserts a few sample records on startup.
	SeedDemoData bool `env:"SEED_DEMO_DATA" envDefault:"true"`
}

// LoadConfig loads configuration from environment variables and applies defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.New("failed to load history configuration from environment: " + err.Error())
	}

	if cfg.Capacity <= 0 {
		cfg.Capacity = 100
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 20
	}

	return cfg, nil
}
