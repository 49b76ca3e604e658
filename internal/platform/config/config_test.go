package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("unexpected default addr: %s", cfg.Addr)
	}
	if !cfg.SimulationMode() {
		t.Fatalf("expected simulation mode without DATABASE_URL")
	}
	if !cfg.Development() {
		t.Fatalf("expected development by default")
	}
	if cfg.DevPasswordBypass {
		t.Fatalf("dev password bypass must default to off")
	}
	if cfg.TokenTTL != 12*time.Hour {
		t.Fatalf("unexpected token ttl: %v", cfg.TokenTTL)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/healthlink")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("AUTH_DEV_PASSWORD_BYPASS", "true")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.SimulationMode() {
		t.Fatalf("expected live mode with DATABASE_URL set")
	}
	if cfg.Development() {
		t.Fatalf("production is not development")
	}
	if !cfg.DevPasswordBypass {
		t.Fatalf("expected bypass enabled")
	}
}
