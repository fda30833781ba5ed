package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "CACHE_SIZE", "CACHE_TTL", "CORS_ORIGINS", "DEV_MODE", "RATE_LIMIT_RPS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != "8082" {
		t.Errorf("unexpected port %q", cfg.Server.Port)
	}
	if cfg.Cache.Size != 1000 || cfg.Cache.TTL != 30*time.Minute {
		t.Errorf("unexpected cache config %+v", cfg.Cache)
	}
	if !reflect.DeepEqual(cfg.Server.CorsOrigins, []string{"*"}) {
		t.Errorf("unexpected cors origins %v", cfg.Server.CorsOrigins)
	}
	if cfg.DevMode {
		t.Error("dev mode should default to false")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("CACHE_SIZE", "50")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("RANDOM_SEED", "42")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com,")
	t.Setenv("DEV_MODE", "true")
	t.Setenv("RATE_LIMIT_RPS", "0.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != "9000" || cfg.Cache.Size != 50 || cfg.Cache.TTL != 90*time.Second {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Cache.Seed != 42 {
		t.Errorf("unexpected seed %d", cfg.Cache.Seed)
	}
	if !reflect.DeepEqual(cfg.Server.CorsOrigins, []string{"https://a.example.com", "https://b.example.com"}) {
		t.Errorf("unexpected cors origins %v", cfg.Server.CorsOrigins)
	}
	if !cfg.DevMode || cfg.Limits.RPS != 0.5 {
		t.Errorf("unexpected dev mode or rate: %+v", cfg)
	}
}

func TestLoadMalformedFallsBackToDefault(t *testing.T) {
	t.Setenv("CACHE_SIZE", "lots")
	t.Setenv("CACHE_TTL", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Cache.Size != 1000 || cfg.Cache.TTL != 30*time.Minute {
		t.Errorf("expected defaults for malformed values, got %+v", cfg.Cache)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("CACHE_SIZE", "0")
	t.Setenv("RATE_LIMIT_BURST", "0")

	_, err := Load()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"CACHE_SIZE", "RATE_LIMIT_BURST"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %s in error %q", want, err)
		}
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("SEO_TEST_FROM_FILE=yes\n"), 0644); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}
	defer os.Chdir(wd)
	defer os.Unsetenv("SEO_TEST_FROM_FILE")

	if !LoadEnv() {
		t.Fatal("expected .env to be found")
	}
	if os.Getenv("SEO_TEST_FROM_FILE") != "yes" {
		t.Error("expected variable from .env")
	}
}
