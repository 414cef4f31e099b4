package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLoggerConfigFromEnv(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		cfg, err := LoadLoggerConfigFromEnv()
		require.NoError(t, err)
		assert.Equal(t, LoggerConfig{Level: "info", Format: "json", Output: "stdout"}, cfg)
	})

	t.Run("custom values", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("LOG_FORMAT", "console")
		t.Setenv("LOG_OUTPUT", "stderr")

		cfg, err := LoadLoggerConfigFromEnv()
		require.NoError(t, err)
		assert.Equal(t, LoggerConfig{Level: "debug", Format: "console", Output: "stderr"}, cfg)
	})
}

func TestLoggerConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  LoggerConfig
		wantErr bool
	}{
		{"valid json", LoggerConfig{Level: "info", Format: "json", Output: "stdout"}, false},
		{"valid console file", LoggerConfig{Level: "debug", Format: "console", Output: "/tmp/invite.log"}, false},
		{"invalid level", LoggerConfig{Level: "trace", Format: "json", Output: "stdout"}, true},
		{"invalid format", LoggerConfig{Level: "info", Format: "xml", Output: "stdout"}, true},
		{"empty output", LoggerConfig{Level: "info", Format: "json"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoggerConfig_IsProduction(t *testing.T) {
	assert.True(t, LoggerConfig{Level: "info", Format: "json"}.IsProduction())
	assert.False(t, LoggerConfig{Level: "debug", Format: "json"}.IsProduction())
	assert.False(t, LoggerConfig{Level: "info", Format: "console"}.IsProduction())
}

func TestLoggerConfig_IsFile(t *testing.T) {
	assert.False(t, LoggerConfig{Output: OutputStdout}.IsFile())
	assert.False(t, LoggerConfig{Output: OutputStderr}.IsFile())
	assert.True(t, LoggerConfig{Output: "/var/log/invite.log"}.IsFile())
}
