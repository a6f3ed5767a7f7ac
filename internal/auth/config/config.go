package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v6"
)

// Session store backends
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config holds all configuration for the auth module.
type Config struct {
	// Session configuration
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"1h"`

	// SessionStore selects the session table backend: "memory" (default) or
	// "redis". Users and history always live in process memory.
	SessionStore string `env:"SESSION_STORE" envDefault:"memory"`

	// Redis configuration, used only when SessionStore is "redis"
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// SeedDemoData inserts the demo user on startup.
	SeedDemoData bool `env:"SEED_DEMO_DATA" envDefault:"true"`
}

// LoadConfig loads configuration from environment variables and applies defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.New("failed to load auth configuration from environment: " + err.Error())
	}

	if cfg.SessionStore != StoreMemory && cfg.SessionStore != StoreRedis {
		return nil, errors.New("session_store must be one of 'memory' or 'redis'")
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Hour
	}

	return cfg, nil
}
