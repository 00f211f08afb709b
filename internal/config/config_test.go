package config

import (
	"testing"
	"time"
)

func TestLoadServerDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATABASE_URL", "BLOSSOM_JWT_SECRET", "BLOSSOM_ACCESS_TTL", "BLOSSOM_REFRESH_TTL", "BLOSSOM_SEED_DEMO"} {
		t.Setenv(key, "")
	}

	cfg := LoadServer()
	if cfg.Port != "5001" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.JWTSecret != DefaultJWTSecret {
		t.Errorf("JWTSecret = %q", cfg.JWTSecret)
	}
	if cfg.AccessTTL != 24*time.Hour {
		t.Errorf("AccessTTL = %v", cfg.AccessTTL)
	}
	if cfg.RefreshTTL != 7*24*time.Hour {
		t.Errorf("RefreshTTL = %v", cfg.RefreshTTL)
	}
	if cfg.SeedDemo {
		t.Error("SeedDemo defaulted on")
	}
}

func TestLoadServerOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("BLOSSOM_JWT_SECRET", "sekrit")
	t.Setenv("BLOSSOM_ACCESS_TTL", "15m")
	t.Setenv("BLOSSOM_SEED_DEMO", "true")

	cfg := LoadServer()
	if cfg.Port != "8080" || cfg.JWTSecret != "sekrit" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.AccessTTL != 15*time.Minute {
		t.Errorf("AccessTTL = %v", cfg.AccessTTL)
	}
	if !cfg.SeedDemo {
		t.Error("SeedDemo not enabled")
	}
}

func TestLoadServerBadDuration(t *testing.T) {
	t.Setenv("BLOSSOM_ACCESS_TTL", "soon")
	cfg := LoadServer()
	if cfg.AccessTTL != 24*time.Hour {
		t.Errorf("bad duration not defaulted: %v", cfg.AccessTTL)
	}
}
