package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}

	if cfg.Backend.BaseURL != "https://store-api.example.com" {
		t.Fatalf("unexpected backend base URL: %q", cfg.Backend.BaseURL)
	}

	if got := cfg.Checkout.SubmitTimeout; got != 30*time.Second {
		t.Fatalf("expected default submit timeout 30s, got %v", got)
	}

	if got := cfg.Session.CookieName; got != "sk_session" {
		t.Fatalf("unexpected session cookie name %q", got)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_RejectsNonHTTPBackend(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvBackendBaseURL, "ftp://store-api.example.com")

	if _, err := Load(); err == nil {
		t.Fatal("expected non-http backend URL to be rejected")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvPort, "8080")
	t.Setenv(EnvBackendBaseURL, "https://store-api.example.com")
}
