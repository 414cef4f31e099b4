// Package config provides database configuration management.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/festy23/team_invite/pkg/retry"
)

const (
	// DriverSQLite selects the sqlite session store.
	DriverSQLite = "sqlite"
	// DriverPostgres selects the PostgreSQL session store.
	DriverPostgres = "postgres"
)

// DefaultSQLiteDSN is a named in-memory database shared by all pool connections.
// It lives only as long as the process.
const DefaultSQLiteDSN = "file:invite_sessions?mode=memory&cache=shared"

// Config holds database connection configuration.
type Config struct {
	Driver    string `env:"DB_DRIVER" envDefault:"sqlite"`
	SQLiteDSN string `env:"DB_SQLITE_DSN" envDefault:"file:invite_sessions?mode=memory&cache=shared"`
	Host      string `env:"DB_HOST" envDefault:"localhost"`
	User      string `env:"DB_USER" envDefault:"postgres"`
	Password  string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName    string `env:"DB_NAME" envDefault:"team_invite"`
	Port      string `env:"DB_PORT" envDefault:"5432"`
	SSLMode   string `env:"DB_SSLMODE" envDefault:"disable"`
	TimeZone  string `env:"DB_TIMEZONE" envDefault:"UTC"`
}

// RetryEnv holds connection retry overrides.
type RetryEnv struct {
	MaxAttempts  int           `env:"DB_RETRY_MAX_ATTEMPTS"`
	InitialDelay time.Duration `env:"DB_RETRY_INITIAL_DELAY"`
	MaxDelay     time.Duration `env:"DB_RETRY_MAX_DELAY"`
	Multiplier   float64       `env:"DB_RETRY_MULTIPLIER"`
}

// LoadConfigFromEnv loads database configuration from environment variables.
func LoadConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse database env: %w", err)
	}
	return cfg, nil
}

// Validate validates database configuration.
func (c Config) Validate() error {
	switch c.Driver {
	case DriverSQLite:
		if c.SQLiteDSN == "" {
			return fmt.Errorf("DB_SQLITE_DSN is required for driver %s", c.Driver)
		}
	case DriverPostgres:
		if c.Host == "" || c.DBName == "" {
			return fmt.Errorf("DB_HOST and DB_NAME are required for driver %s", c.Driver)
		}
	default:
		return fmt.Errorf("invalid DB_DRIVER: %s (must be: sqlite, postgres)", c.Driver)
	}
	return nil
}

// IsInMemory reports whether the sqlite DSN points to an in-memory database.
func (c Config) IsInMemory() bool {
	return c.Driver == DriverSQLite &&
		(c.SQLiteDSN == ":memory:" || strings.Contains(c.SQLiteDSN, "mode=memory"))
}

// BuildDSN constructs PostgreSQL DSN string from configuration.
func BuildDSN(cfg Config) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.DBName, cfg.Port, cfg.SSLMode, cfg.TimeZone)
}

// SanitizeError removes sensitive information (password) from error messages.
func SanitizeError(err error, cfg Config) error {
	if err == nil {
		return nil
	}
	errMsg := err.Error()
	if cfg.Password != "" {
		errMsg = strings.ReplaceAll(errMsg, cfg.Password, "***")
	}
	return fmt.Errorf("failed to connect to database: %s", errMsg)
}

// LoadRetryConfigFromEnv loads retry configuration from environment variables.
// Unset variables keep the retry.PostgresConfig defaults.
func LoadRetryConfigFromEnv() (retry.Config, error) {
	cfg := retry.PostgresConfig()

	var overrides RetryEnv
	if err := env.Parse(&overrides); err != nil {
		return cfg, fmt.Errorf("parse retry env: %w", err)
	}
	if overrides.MaxAttempts > 0 {
		cfg.MaxAttempts = overrides.MaxAttempts
	}
	if overrides.InitialDelay > 0 {
		cfg.InitialDelay = overrides.InitialDelay
	}
	if overrides.MaxDelay > 0 {
		cfg.MaxDelay = overrides.MaxDelay
	}
	if overrides.Multiplier > 0 {
		cfg.Multiplier = overrides.Multiplier
	}
	return cfg, nil
}
