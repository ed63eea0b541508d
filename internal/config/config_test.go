package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AppName != "pwnwatch" {
		t.Fatalf("unexpected app name %q", cfg.AppName)
	}
	if cfg.HIBPTimeout != 15*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.HIBPTimeout)
	}
	if cfg.CheckInterval != time.Hour {
		t.Fatalf("unexpected check interval %v", cfg.CheckInterval)
	}
	if cfg.StorageType != "bbolt" {
		t.Fatalf("unexpected storage type %q", cfg.StorageType)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("HIBP_BASE_URL", "http://127.0.0.1:9999")
	t.Setenv("HIBP_API_KEY", "secret")
	t.Setenv("CHECK_INTERVAL", "60")
	t.Setenv("STORAGE_TYPE", "none")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HIBPBaseURL != "http://127.0.0.1:9999" || cfg.HIBPAPIKey != "secret" {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.CheckInterval != time.Minute {
		t.Fatalf("unexpected check interval %v", cfg.CheckInterval)
	}
	if cfg.StorageType != "none" {
		t.Fatalf("unexpected storage type %q", cfg.StorageType)
	}
}

func TestLoadRejectsInvalidInterval(t *testing.T) {
	t.Setenv("CHECK_INTERVAL", "0")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for zero check interval")
	}
}

func TestRedactedHidesSecrets(t *testing.T) {
	cfg := Config{HIBPAPIKey: "secret", RedisURL: "redis://user:pw@host"}
	red := cfg.Redacted()
	if red.HIBPAPIKey != "***" || red.RedisURL != "***" {
		t.Fatalf("secrets not redacted: %+v", red)
	}
	if cfg.HIBPAPIKey != "secret" {
		t.Fatalf("Redacted must not mutate the receiver")
	}
}
