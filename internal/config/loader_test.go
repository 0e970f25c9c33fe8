package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

var loaderKeys = []string{
	"COLLAB_HTTP_PORT",
	"COLLAB_TIMEZONE",
	"COLLAB_CATALOG_FILE",
	"COLLAB_TOKEN_TTL",
	"COLLAB_MAX_TOKENS",
	"COLLAB_DEMO_EMAIL",
	"COLLAB_DEMO_PASSWORD",
	"COLLAB_DEMO_NAME",
	"COLLAB_LOG_LEVEL",
	"COLLAB_LOG_FORMAT",
}

func clearLoaderEnv(t *testing.T) {
	t.Helper()
	for _, key := range loaderKeys {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("failed to unset %s: %v", key, err)
		}
	}
}

func TestLoader_ParseEnvironment(t *testing.T) {

	t.Run("applies defaults when variables are missing", func(t *testing.T) {
		clearLoaderEnv(t)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.HTTPPort != 8080 {
			t.Fatalf("expected default HTTP port 8080, got %d", cfg.HTTPPort)
		}
		if cfg.Location != time.Local {
			t.Fatalf("expected Local timezone, got %v", cfg.Location)
		}
		if cfg.TokenTTL != 24*time.Hour || cfg.MaxTokens != 1024 {
			t.Fatalf("unexpected token defaults: %s %d", cfg.TokenTTL, cfg.MaxTokens)
		}
		if cfg.DemoEmail != "demo@collab.local" || cfg.DemoPassword != "123456" || cfg.DemoName != "Demo User" {
			t.Fatalf("unexpected demo credential defaults: %+v", cfg)
		}
		if cfg.LogLevel != "info" || cfg.LogFormat != "json" {
			t.Fatalf("unexpected logging defaults: %q %q", cfg.LogLevel, cfg.LogFormat)
		}
		if cfg.CatalogFile != "" {
			t.Fatalf("expected no catalog file, got %q", cfg.CatalogFile)
		}
	})

	t.Run("parses explicit values", func(t *testing.T) {
		clearLoaderEnv(t)
		t.Setenv("COLLAB_HTTP_PORT", "9090")
		t.Setenv("COLLAB_TIMEZONE", "UTC")
		t.Setenv("COLLAB_CATALOG_FILE", " /etc/collab/catalog.toml ")
		t.Setenv("COLLAB_TOKEN_TTL", "90m")
		t.Setenv("COLLAB_MAX_TOKENS", "16")
		t.Setenv("COLLAB_DEMO_EMAIL", "team@example.com")
		t.Setenv("COLLAB_DEMO_PASSWORD", "hunter2")
		t.Setenv("COLLAB_LOG_LEVEL", "DEBUG")
		t.Setenv("COLLAB_LOG_FORMAT", "text")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.HTTPPort != 9090 {
			t.Fatalf("expected HTTP port 9090, got %d", cfg.HTTPPort)
		}
		if cfg.Location != time.UTC {
			t.Fatalf("expected UTC, got %v", cfg.Location)
		}
		if cfg.CatalogFile != "/etc/collab/catalog.toml" {
			t.Fatalf("unexpected catalog file %q", cfg.CatalogFile)
		}
		if cfg.TokenTTL != 90*time.Minute || cfg.MaxTokens != 16 {
			t.Fatalf("unexpected token settings: %s %d", cfg.TokenTTL, cfg.MaxTokens)
		}
		if cfg.DemoEmail != "team@example.com" || cfg.DemoPassword != "hunter2" {
			t.Fatalf("unexpected credential: %q %q", cfg.DemoEmail, cfg.DemoPassword)
		}
		if cfg.LogLevel != "debug" || cfg.LogFormat != "text" {
			t.Fatalf("unexpected logging settings: %q %q", cfg.LogLevel, cfg.LogFormat)
		}
	})

	t.Run("aggregates invalid values", func(t *testing.T) {
		clearLoaderEnv(t)
		t.Setenv("COLLAB_HTTP_PORT", "eighty")
		t.Setenv("COLLAB_TIMEZONE", "Mars/Olympus")
		t.Setenv("COLLAB_TOKEN_TTL", "-1h")
		t.Setenv("COLLAB_LOG_FORMAT", "xml")

		_, err := Load()
		if err == nil {
			t.Fatalf("expected error for invalid values")
		}
		expected := "invalid environment variable values: COLLAB_HTTP_PORT, COLLAB_TIMEZONE, COLLAB_TOKEN_TTL, COLLAB_LOG_FORMAT"
		if err.Error() != expected {
			t.Fatalf("unexpected error message: %q", err.Error())
		}
	})

	t.Run("reports blank credentials as missing", func(t *testing.T) {
		clearLoaderEnv(t)
		t.Setenv("COLLAB_DEMO_EMAIL", "   ")
		t.Setenv("COLLAB_DEMO_PASSWORD", "  ")

		_, err := Load()
		if err == nil {
			t.Fatalf("expected error when credentials are blank")
		}
		expected := "required environment variables are not set: COLLAB_DEMO_EMAIL, COLLAB_DEMO_PASSWORD"
		if err.Error() != expected {
			t.Fatalf("unexpected error message: %q", err.Error())
		}
	})

	t.Run("accepts explicit viper overrides", func(t *testing.T) {
		clearLoaderEnv(t)
		v := viper.New()
		v.Set("http_port", 7070)

		cfg, err := LoadFrom(v)
		if err != nil {
			t.Fatalf("LoadFrom returned error: %v", err)
		}
		if cfg.HTTPPort != 7070 {
			t.Fatalf("expected override port, got %d", cfg.HTTPPort)
		}
	})
}

func TestLoadDotEnv(t *testing.T) {
	clearLoaderEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("COLLAB_HTTP_PORT=6060\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Cleanup(func() { _ = os.Unsetenv("COLLAB_HTTP_PORT") })

	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("LoadDotEnv returned error: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.HTTPPort != 6060 {
		t.Fatalf("expected port from .env, got %d", cfg.HTTPPort)
	}

	if err := LoadDotEnv(dir); err == nil || !strings.Contains(err.Error(), "load") {
		t.Fatalf("expected error when the path is a directory, got %v", err)
	}
}
