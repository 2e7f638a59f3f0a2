package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "CORS_ALLOW_ORIGINS", "ENV", "REDIS_ADDR", "DRAFT_CLEANUP_INTERVAL"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("Port=%q", cfg.Port)
	}
	if cfg.Env != "dev" {
		t.Errorf("Env=%q", cfg.Env)
	}
	if cfg.CleanupInterval != time.Hour {
		t.Errorf("CleanupInterval=%v", cfg.CleanupInterval)
	}
	if len(cfg.CORSAllowOrigin) != 1 || cfg.CORSAllowOrigin[0] != "http://localhost:5173" {
		t.Errorf("CORSAllowOrigin=%v", cfg.CORSAllowOrigin)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "Production")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.example, http://b.example ,")
	t.Setenv("DRAFT_CLEANUP_INTERVAL", "15m")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Errorf("Port=%q", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Errorf("Env=%q", cfg.Env)
	}
	if len(cfg.CORSAllowOrigin) != 2 {
		t.Errorf("CORSAllowOrigin=%v", cfg.CORSAllowOrigin)
	}
	if cfg.CleanupInterval != 15*time.Minute {
		t.Errorf("CleanupInterval=%v", cfg.CleanupInterval)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr=%q", cfg.RedisAddr)
	}
}

func TestParseDurationFallback(t *testing.T) {
	for _, raw := range []string{"garbage", "-5m", "0s", ""} {
		if d := parseDuration(raw); d != time.Hour {
			t.Errorf("%q: got %v, want 1h", raw, d)
		}
	}
}
