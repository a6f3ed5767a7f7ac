package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config holds all configuration for the generation gateway.
type Config struct {
	// Upstream model endpoint (chat-completions shaped).
	Endpoint string `env:"AI_ENDPOINT" envDefault:"https://oi-server.onrender.com/chat/completions"`
	Model    string `env:"AI_MODEL" envDefault:"replicate/google/veo-3"`

	// Credentials forwarded to the upstream on every call.
	CustomerID string `env:"AI_CUSTOMER_ID" envDefault:""`
	AuthToken  string `env:"AI_AUTH_TOKEN" envDefault:""`

	// Timeout bounds the whole upstream call; generation is slow.
	Timeout time.Duration `env:"GENERATION_TIMEOUT" envDefault:"15m"`
}

// LoadConfig loads configuration from environment variables and applies defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.New("failed to load generation configuration from environment: " + err.Error())
	}

	if cfg.Endpoint == "" {
		return nil, errors.New("ai_endpoint is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Minute
	}

	return cfg, nil
}
