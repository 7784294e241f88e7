package config

import "testing"

func TestLoadDoesNotInjectWeakAuthDefaults(t *testing.T) {
	t.Setenv("AUTH_SECRET", "")

	cfg := Load()
	if cfg.AuthSecret != "" {
		t.Fatalf("expected empty AUTH_SECRET when unset, got %q", cfg.AuthSecret)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("MONGODB_DB", "")
	t.Setenv("REPORT_TTL_SECONDS", "")
	t.Setenv("ACCESS_TOKEN_TTL_MINUTES", "")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.MongoDatabase != "chai-fi" {
		t.Fatalf("expected default mongo database chai-fi, got %q", cfg.MongoDatabase)
	}
	if cfg.ReportTTLSeconds != 60 {
		t.Fatalf("expected default report TTL 60, got %d", cfg.ReportTTLSeconds)
	}
	if cfg.AccessTokenTTLMinutes != 480 {
		t.Fatalf("expected default token TTL 480, got %d", cfg.AccessTokenTTLMinutes)
	}
	if cfg.Address() != ":8080" {
		t.Fatalf("expected listen address :8080, got %q", cfg.Address())
	}
}

func TestLoadRejectsNonsenseTTLs(t *testing.T) {
	t.Setenv("REPORT_TTL_SECONDS", "zero")
	t.Setenv("ACCESS_TOKEN_TTL_MINUTES", "-5")

	cfg := Load()
	if cfg.ReportTTLSeconds != 60 {
		t.Fatalf("expected report TTL to fall back to 60, got %d", cfg.ReportTTLSeconds)
	}
	if cfg.AccessTokenTTLMinutes != 480 {
		t.Fatalf("expected token TTL to fall back to 480, got %d", cfg.AccessTokenTTLMinutes)
	}
}
