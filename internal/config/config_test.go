package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbConfig "github.com/festy23/team_invite/internal/database/config"
)

func validConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Logger:   LoggerConfig{Level: "info", Format: "json", Output: "stdout"},
		Session:  SessionConfig{TTL: 30 * time.Minute, SweepInterval: time.Minute},
		Database: dbConfig.Config{Driver: dbConfig.DriverSQLite, SQLiteDSN: dbConfig.DefaultSQLiteDSN},
		GinMode:  "release",
	}
}

func TestLoadFromEnv_DefaultValues(t *testing.T) {
	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, time.Minute, cfg.Session.SweepInterval)
	assert.False(t, cfg.Session.CookieSecure)
	assert.False(t, cfg.Invite.ValidateEmailFormat)
	assert.Equal(t, dbConfig.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "release", cfg.GinMode)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnv_CustomValues(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SESSION_TTL", "5m")
	t.Setenv("SESSION_COOKIE_SECURE", "true")
	t.Setenv("INVITE_VALIDATE_EMAIL_FORMAT", "true")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("GIN_MODE", "debug")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, 5*time.Minute, cfg.Session.TTL)
	assert.True(t, cfg.Session.CookieSecure)
	assert.True(t, cfg.Invite.ValidateEmailFormat)
	assert.Equal(t, dbConfig.DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "debug", cfg.GinMode)
}

func TestLoadFromEnv_ParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"invalid duration", "SERVER_READ_TIMEOUT", "soon"},
		{"invalid bool", "SESSION_COOKIE_SECURE", "maybe"},
		{"invalid ttl", "SESSION_TTL", "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := LoadFromEnv()
			assert.Error(t, err)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"invalid server", func(c *Config) { c.Server.ReadTimeout = 0 }, "server config"},
		{"invalid logger", func(c *Config) { c.Logger.Level = "trace" }, "logger config"},
		{"invalid session", func(c *Config) { c.Session.TTL = -time.Second }, "session config"},
		{"invalid database", func(c *Config) { c.Database.Driver = "mysql" }, "database config"},
		{"invalid gin mode", func(c *Config) { c.GinMode = "prod" }, "GIN_MODE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
