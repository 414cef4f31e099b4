package config

import "fmt"

// Logger outputs that are not file paths.
const (
	OutputStdout = "stdout"
	OutputStderr = "stderr"
)

// LoggerConfig holds logger configuration.
type LoggerConfig struct {
	// Level is the logging level (debug, info, warn, error).
	Level string `env:"LOG_LEVEL" envDefault:"info"`
	// Format is the logging format (json, console).
	Format string `env:"LOG_FORMAT" envDefault:"json"`
	// Output is the output destination (stdout, stderr, or file path).
	Output string `env:"LOG_OUTPUT" envDefault:"stdout"`
}

// LoadLoggerConfigFromEnv loads logger configuration from environment variables.
func LoadLoggerConfigFromEnv() (LoggerConfig, error) {
	cfg, err := LoadFromEnv()
	if err != nil {
		return LoggerConfig{}, err
	}
	return cfg.Logger, nil
}

// Validate validates logger configuration.
func (c LoggerConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.Level] {
		return fmt.Errorf("invalid log level: %s (must be: debug, info, warn, error)", c.Level)
	}

	validFormats := map[string]bool{
		"json":    true,
		"console": true,
	}
	if !validFormats[c.Format] {
		return fmt.Errorf("invalid log format: %s (must be: json, console)", c.Format)
	}

	if c.Output == "" {
		return fmt.Errorf("LOG_OUTPUT must not be empty")
	}

	return nil
}

// IsProduction returns true if logger is configured for production.
func (c LoggerConfig) IsProduction() bool {
	return c.Format == "json" && c.Level != "debug"
}

// IsFile reports whether logs go to a file path.
func (c LoggerConfig) IsFile() bool {
	return c.Output != OutputStdout && c.Output != OutputStderr
}
