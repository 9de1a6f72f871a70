package config

import "testing"

func TestLoadUsesDefaults(t *testing.T) {
	t.Setenv("MEDBOT_MODE", "")
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Mode != ModeConsole {
		t.Fatalf("expected console mode, got %s", cfg.Mode)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("expected default log level warn, got %s", cfg.LogLevel)
	}
}

func TestLoadHTTPMode(t *testing.T) {
	t.Setenv("MEDBOT_MODE", "HTTP")
	t.Setenv("PORT", "9090")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Mode != ModeHTTP || cfg.Port != "9090" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadRejectsUnknownMode(t *testing.T) {
	t.Setenv("MEDBOT_MODE", "batch")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}
