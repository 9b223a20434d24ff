package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromDefaults(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("load config failed: %v", err)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Fatalf("database driver want sqlite got %s", cfg.Database.Driver)
	}
	if cfg.Session.CookieName != "storefront_session" {
		t.Fatalf("cookie name want storefront_session got %s", cfg.Session.CookieName)
	}
	if cfg.Security.CustomOrderRateLimit.MaxRequests != 5 {
		t.Fatalf("custom order rate limit want 5 got %d", cfg.Security.CustomOrderRateLimit.MaxRequests)
	}
	if cfg.Server.Addr() != "0.0.0.0:8080" {
		t.Fatalf("addr want 0.0.0.0:8080 got %s", cfg.Server.Addr())
	}
}

func TestLoadFromYAMLAndEnv(t *testing.T) {
	dir := t.TempDir()
	content := []byte("server:\n  mode: release\ndatabase:\n  driver: postgres\n  dsn: host=db user=shop\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), content, 0o644); err != nil {
		t.Fatalf("write config failed: %v", err)
	}
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("load config failed: %v", err)
	}
	if cfg.Database.Driver != "postgres" || cfg.Database.DSN != "host=db user=shop" {
		t.Fatalf("unexpected database config: %+v", cfg.Database)
	}
	if !cfg.Server.IsRelease() {
		t.Fatalf("server mode should be release")
	}
	if cfg.Server.Port != "9090" {
		t.Fatalf("env override port want 9090 got %s", cfg.Server.Port)
	}
}
