package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestLoadClient(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Setenv("COLLAB_SERVER", "")
		t.Setenv("COLLAB_TOKEN_FILE", "")
		_ = os.Unsetenv("COLLAB_SERVER")
		_ = os.Unsetenv("COLLAB_TOKEN_FILE")

		cfg, err := LoadClient(viper.New())
		if err != nil {
			t.Fatalf("LoadClient returned error: %v", err)
		}
		if cfg.Server != "http://localhost:8080" {
			t.Fatalf("unexpected server %q", cfg.Server)
		}
		if cfg.TokenFile != filepath.Join(home, ".collab-booking", "token.toml") {
			t.Fatalf("unexpected token file %q", cfg.TokenFile)
		}
	})

	t.Run("reads environment and trims trailing slash", func(t *testing.T) {
		tokenFile := filepath.Join(t.TempDir(), "token.toml")
		t.Setenv("COLLAB_SERVER", "https://booking.example.com/")
		t.Setenv("COLLAB_TOKEN_FILE", tokenFile)

		cfg, err := LoadClient(nil)
		if err != nil {
			t.Fatalf("LoadClient returned error: %v", err)
		}
		if cfg.Server != "https://booking.example.com" || cfg.TokenFile != tokenFile {
			t.Fatalf("unexpected config %+v", cfg)
		}
	})

	t.Run("explicit values win over environment", func(t *testing.T) {
		t.Setenv("COLLAB_SERVER", "https://env.example.com")
		v := viper.New()
		v.Set(KeyServer, "http://127.0.0.1:9999")
		v.Set(KeyTokenFile, filepath.Join(t.TempDir(), "t.toml"))

		cfg, err := LoadClient(v)
		if err != nil {
			t.Fatalf("LoadClient returned error: %v", err)
		}
		if cfg.Server != "http://127.0.0.1:9999" {
			t.Fatalf("expected explicit server, got %q", cfg.Server)
		}
	})

	t.Run("rejects malformed servers", func(t *testing.T) {
		for _, server := range []string{"localhost:8080", "ftp://example.com", "://"} {
			v := viper.New()
			v.Set(KeyServer, server)
			v.Set(KeyTokenFile, "token.toml")
			if _, err := LoadClient(v); err == nil {
				t.Fatalf("expected error for %q", server)
			}
		}
	})
}
