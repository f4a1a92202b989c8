package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HTTP_PORT", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("APP_ENV", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ServiceName != "simpleq" {
		t.Fatalf("expected default service name, got %q", cfg.ServiceName)
	}
	if len(cfg.KafkaBrokers) != 1 || cfg.KafkaBrokers[0] != "localhost:9092" {
		t.Fatalf("expected default broker, got %v", cfg.KafkaBrokers)
	}
	if cfg.ExternalAPITimeout != 30*time.Second {
		t.Fatalf("expected 30s timeout, got %s", cfg.ExternalAPITimeout)
	}
	if cfg.IsDev() {
		t.Fatalf("expected production mode by default")
	}
}

func TestLoadParsesListsAndDurations(t *testing.T) {
	t.Setenv("ADMIN_IDENTITY_IDS", " admin-1 , ,admin-2")
	t.Setenv("SESSION_CACHE_TTL", "5m")
	t.Setenv("APP_ENV", " DEV ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.AdminIdentityIDs) != 2 || cfg.AdminIdentityIDs[1] != "admin-2" {
		t.Fatalf("unexpected admin ids: %v", cfg.AdminIdentityIDs)
	}
	if cfg.SessionCacheTTL != 5*time.Minute {
		t.Fatalf("expected 5m session ttl, got %s", cfg.SessionCacheTTL)
	}
	if !cfg.IsDev() {
		t.Fatalf("expected dev mode")
	}
}

func TestLoadRejectsInvalidDuration(t *testing.T) {
	t.Setenv("EXTERNAL_API_TIMEOUT", "soon")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for raw, want := range cases {
		if got := parseLevel(raw); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", raw, got, want)
		}
	}
}
