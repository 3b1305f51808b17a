// Package config handles application configuration from environment variables
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration. It is loaded once at process
// start; there is no reload.
type Config struct {
	Port            string        `env:"PORT" envDefault:"5000"`
	CORSOrigin      string        `env:"CORS_ORIGIN" envDefault:"http://localhost:3000"`
	GeminiAPIKey    string        `env:"GEMINI_API_KEY,required,notEmpty"`
	GeminiModel     string        `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
	GenerateTimeout time.Duration `env:"GENERATE_TIMEOUT" envDefault:"50s"`
}

// Load reads configuration from environment variables
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}
