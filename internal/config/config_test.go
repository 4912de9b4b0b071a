package config

import (
	"testing"
)

const testPageID = "59833787-2cf9-4fdf-8782-e53db20768a5"

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("LAWSITE_NOTION_TOKEN", "secret_test_token")
	t.Setenv("LAWSITE_NOTION_ROOT_PAGE", testPageID)
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ServerPort != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.ServerPort)
	}
	if cfg.DefaultLocale != "ru" {
		t.Errorf("expected default locale ru, got %s", cfg.DefaultLocale)
	}
	if cfg.CacheTTL != 3600 {
		t.Errorf("expected default cache TTL 3600, got %d", cfg.CacheTTL)
	}
	if !cfg.IsDevelopment() {
		t.Error("expected development mode by default")
	}
	if cfg.UseRedisCache() {
		t.Error("expected memory cache when no Redis URL configured")
	}
	if cfg.ServerAddr() != "localhost:8080" {
		t.Errorf("unexpected server addr %s", cfg.ServerAddr())
	}
}

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("LAWSITE_NOTION_ROOT_PAGE", testPageID)

	if _, err := Load(); err == nil {
		t.Fatal("expected error when LAWSITE_NOTION_TOKEN is missing")
	}
}

func TestLoad_BadRootPage(t *testing.T) {
	t.Setenv("LAWSITE_NOTION_TOKEN", "secret_test_token")
	t.Setenv("LAWSITE_NOTION_ROOT_PAGE", "not-a-page-id")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed root page id")
	}
}

func TestLoad_UndashedRootPage(t *testing.T) {
	t.Setenv("LAWSITE_NOTION_TOKEN", "secret_test_token")
	t.Setenv("LAWSITE_NOTION_ROOT_PAGE", "598337872cf94fdf8782e53db20768a5")

	if _, err := Load(); err != nil {
		t.Fatalf("expected undashed page id to be accepted: %v", err)
	}
}

func TestLoad_ProductionRequiresSecrets(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LAWSITE_ENV", "production")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when production secrets are missing")
	}

	t.Setenv("LAWSITE_REVALIDATE_TOKEN", "revalidate-secret")
	t.Setenv("LAWSITE_CRON_SECRET", "cron-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.IsDevelopment() {
		t.Error("expected production mode")
	}
}

func TestLoad_BadLocale(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LAWSITE_DEFAULT_LOCALE", "de")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unsupported locale")
	}
}

func TestNormalizePageID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"already dashed", testPageID, testPageID},
		{"undashed", "598337872cf94fdf8782e53db20768a5", testPageID},
		{"whitespace", "  " + testPageID + "  ", testPageID},
		{"garbage unchanged", "nope", "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePageID(tt.input); got != tt.expected {
				t.Errorf("NormalizePageID(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
