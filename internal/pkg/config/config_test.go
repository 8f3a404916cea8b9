package config

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SESSION_FILE", filepath.Join(t.TempDir(), "s.json"))

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.Env != "development" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected server defaults: %+v", cfg)
	}
	if cfg.Backend.URL != "http://localhost:8081" || cfg.Backend.Timeout != 10*time.Second {
		t.Fatalf("unexpected backend defaults: %+v", cfg.Backend)
	}
	if cfg.Session.Store != StoreFile {
		t.Fatalf("expected file store, got %q", cfg.Session.Store)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development env")
	}
}

func TestLoad_DefaultSessionFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !strings.HasSuffix(cfg.Session.File, filepath.Join("storefront", "session.json")) {
		t.Fatalf("unexpected session file: %s", cfg.Session.File)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("REDIS_ADDR", "cache:6380")
	t.Setenv("BACKEND_TIMEOUT", "3s")
	t.Setenv("BACKEND_RATE_LIMIT", "2.5")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Session.Store != StoreRedis || cfg.Redis.Addr != "cache:6380" {
		t.Fatalf("unexpected session config: %+v %+v", cfg.Session, cfg.Redis)
	}
	if cfg.Session.File != "" {
		t.Fatalf("file path should stay empty for redis, got %q", cfg.Session.File)
	}
	if cfg.Backend.Timeout != 3*time.Second || cfg.Backend.RateLimit != 2.5 {
		t.Fatalf("unexpected backend config: %+v", cfg.Backend)
	}
}

func TestLoad_UnknownStore(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SESSION_STORE", "etcd")

	if _, err := Load(context.Background()); err == nil {
		t.Fatalf("expected error for unknown store")
	}
}
