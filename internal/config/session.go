package config

import (
	"fmt"
	"time"
)

// SessionConfig holds session lifecycle configuration.
type SessionConfig struct {
	// TTL is the idle time after which a session expires. Zero disables expiry.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	// SweepInterval is how often expired sessions are deleted.
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"1m"`
	// CookieSecure marks the session cookie Secure.
	CookieSecure bool `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
}

// Validate validates session configuration.
func (c SessionConfig) Validate() error {
	if c.TTL < 0 {
		return fmt.Errorf("SESSION_TTL must not be negative")
	}
	if c.TTL > 0 && c.SweepInterval <= 0 {
		return fmt.Errorf("SESSION_SWEEP_INTERVAL must be greater than 0 when SESSION_TTL is set")
	}
	return nil
}

// InviteConfig holds form behaviour switches.
type InviteConfig struct {
	// ValidateEmailFormat rejects submissions that are not email addresses.
	ValidateEmailFormat bool `env:"INVITE_VALIDATE_EMAIL_FORMAT" envDefault:"false"`
}
