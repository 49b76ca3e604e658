package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config captures all environment-driven settings so main stays lean and the
// rest of the code never reads the environment ad hoc. Simulation vs live
// behavior is decided once, at startup, from these values.
type Config struct {
	Addr        string `env:"HEALTHLINK_ADDR" envDefault:":8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	// DatabaseURL empty means simulation mode: no storage writes, simulated
	// signup results, and the fixed development sign-in.
	DatabaseURL string `env:"DATABASE_URL"`

	// NationalIDAPIURL, when set, is the external identity lookup endpoint.
	// When empty the resolver falls back to simulated lookups in simulation
	// mode and strict validation in live mode.
	NationalIDAPIURL string `env:"NATIONAL_ID_API_URL"`

	JWTSigningKey string        `env:"JWT_SIGNING_KEY" envDefault:"dev-secret-key-change-in-production"`
	TokenTTL      time.Duration `env:"TOKEN_TTL" envDefault:"12h"`

	// DevPasswordBypass re-enables the legacy fixed-password escape hatch in
	// live mode. Off by default; simulation mode does not need it.
	DevPasswordBypass bool `env:"AUTH_DEV_PASSWORD_BYPASS" envDefault:"false"`

	LookupTimeout time.Duration `env:"LOOKUP_TIMEOUT" envDefault:"10s"`
}

// FromEnv builds a Config from environment variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// SimulationMode reports whether persistent storage is unconfigured.
func (c Config) SimulationMode() bool {
	return c.DatabaseURL == ""
}

// Development reports whether this process runs in a development environment.
// The seed endpoint is only enabled here.
func (c Config) Development() bool {
	return c.Environment != "production"
}
