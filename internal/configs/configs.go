/*
Package configs is responsible for loading and parsing the application's
configuration from environment variables.
*/
package configs

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// AppConfig contains all configuration parameters required to run the server.
// All values are loaded from environment variables, with development-friendly
// defaults.
type AppConfig struct {
	// General Server Settings
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Port        int    `env:"PORT" envDefault:"8080"`

	// Security Settings
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	// History Settings
	HistoryFile string `env:"HISTORY_FILE" envDefault:"history.json"`
	MaxHistory  int    `env:"MAX_HISTORY" envDefault:"100"`
}

// IsDevelopment reports whether the server runs in the development environment.
func (c *AppConfig) IsDevelopment() bool {
	return c.Environment == "development"
}

// LoadConfig parses the application configuration from environment variables
// and validates it.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.Port < 1024 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the recommended range (%d-%d) to avoid privileged ports", cfg.Port, 1024, 65535)
	}

	if cfg.MaxHistory <= 0 {
		return nil, fmt.Errorf("MAX_HISTORY must be positive, got %d", cfg.MaxHistory)
	}

	if cfg.HistoryFile == "" {
		return nil, fmt.Errorf("HISTORY_FILE must not be empty")
	}

	if !cfg.IsDevelopment() && len(cfg.AllowedOrigins) == 0 {
		return nil, fmt.Errorf("ALLOWED_ORIGINS is required in %s environment", cfg.Environment)
	}

	return cfg, nil
}
