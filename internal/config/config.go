// Package config provides application configuration loaded from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	dbConfig "github.com/festy23/team_invite/internal/database/config"
)

// Config holds application configuration.
type Config struct {
	// Server holds HTTP server configuration.
	Server ServerConfig
	// Logger holds logger configuration.
	Logger LoggerConfig
	// Session holds session lifecycle configuration.
	Session SessionConfig
	// Invite holds form behaviour switches.
	Invite InviteConfig
	// Database holds session store configuration.
	Database dbConfig.Config
	// GinMode is the Gin framework mode (debug, release, test).
	GinMode string `env:"GIN_MODE" envDefault:"release"`
}

// LoadFromEnv loads all configuration from environment variables.
func LoadFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate validates all configuration.
func (c Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}

	if err := c.Logger.Validate(); err != nil {
		return fmt.Errorf("logger config validation failed: %w", err)
	}

	if err := c.Session.Validate(); err != nil {
		return fmt.Errorf("session config validation failed: %w", err)
	}

	if err := c.Database.Validate(); err != nil {
		return fmt.Errorf("database config validation failed: %w", err)
	}

	validGinModes := map[string]bool{
		"debug":   true,
		"release": true,
		"test":    true,
	}
	if !validGinModes[c.GinMode] {
		return fmt.Errorf("invalid GIN_MODE: %s (must be: debug, release, test)", c.GinMode)
	}

	return nil
}
