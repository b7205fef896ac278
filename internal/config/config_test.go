package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.ServerPort == "" {
		t.Fatalf("expected default server port")
	}
	if cfg.PostgresURL == "" {
		t.Fatalf("expected default postgres url")
	}
	if cfg.ViewThreshold <= 0 {
		t.Fatalf("expected positive view threshold")
	}
	if cfg.TimelineLimit <= 0 {
		t.Fatalf("expected positive timeline limit")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", ":9000")
	t.Setenv("POSTGRES_URL", "postgres://example")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("VIEW_THRESHOLD", "10")
	t.Setenv("TIMELINE_LIMIT", "5")

	cfg := Load()
	if cfg.ServerPort != ":9000" {
		t.Fatalf("expected override port")
	}
	if cfg.PostgresURL != "postgres://example" {
		t.Fatalf("expected override postgres")
	}
	if cfg.JWTSecret != "secret" {
		t.Fatalf("expected override secret")
	}
	if cfg.ViewThreshold != 10 {
		t.Fatalf("expected override threshold")
	}
	if cfg.TimelineLimit != 5 {
		t.Fatalf("expected override timeline limit")
	}
}
