package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_NAME", "APP_ENV", "HTTP_URL", "HTTP_PORT", "ALLOWED_ORIGINS",
		"API_BASE_URL", "SESSION_BACKEND", "SESSION_KEY", "SESSION_FILE",
		"REDIS_ADDRESS", "REDIS_PASSWORD",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "MIGRATIONS_DIR",
	} {
		t.Setenv(key, "")
	}
	// keep a developer's .env out of the test
	t.Chdir(t.TempDir())
}

func TestNewDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_BASE_URL", "https://flota.example.com")

	cfg, err := New()
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	if cfg.App.Env != "development" {
		t.Fatalf("expected development env, got %q", cfg.App.Env)
	}
	if cfg.HTTP.Addr() != ":8080" {
		t.Fatalf("expected :8080, got %q", cfg.HTTP.Addr())
	}
	if cfg.Session.Backend != BackendFile {
		t.Fatalf("expected file backend, got %q", cfg.Session.Backend)
	}
	if cfg.Session.Key != "" {
		t.Fatalf("unexpected session key %q", cfg.Session.Key)
	}
	if cfg.Session.File != "./data/session.json" {
		t.Fatalf("unexpected session file %q", cfg.Session.File)
	}
	if cfg.Redis.Address != "localhost:6379" {
		t.Fatalf("unexpected redis address %q", cfg.Redis.Address)
	}
	if cfg.DB.MigrationsDir != "./internal/adapter/postgres/migrations" {
		t.Fatalf("unexpected migrations dir %q", cfg.DB.MigrationsDir)
	}
	if got := cfg.HTTP.Origins(); len(got) != 0 {
		t.Fatalf("expected no origins, got %v", got)
	}
}

func TestNewRequiresAPIBaseURL(t *testing.T) {
	clearEnv(t)
	if _, err := New(); err == nil {
		t.Fatalf("expected error without API_BASE_URL")
	}
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_BASE_URL", "https://flota.example.com")
	t.Setenv("SESSION_BACKEND", "etcd")

	if _, err := New(); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestNewOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_BASE_URL", "http://localhost:3000/api")
	t.Setenv("SESSION_BACKEND", "Redis")
	t.Setenv("HTTP_URL", "127.0.0.1")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test,")

	cfg, err := New()
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	if cfg.Session.Backend != BackendRedis {
		t.Fatalf("backend should be case-insensitive, got %q", cfg.Session.Backend)
	}
	if cfg.HTTP.Addr() != "127.0.0.1:9090" {
		t.Fatalf("unexpected addr %q", cfg.HTTP.Addr())
	}
	want := []string{"http://a.test", "http://b.test"}
	if got := cfg.HTTP.Origins(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Origins() = %v, want %v", got, want)
	}
}

func TestNewLoadsDotEnv(t *testing.T) {
	clearEnv(t)
	if err := os.WriteFile(filepath.Join(".", ".env"), []byte("SESSION_FILE=/tmp/fleet.json\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("API_BASE_URL", "https://flota.example.com")
	// godotenv never overrides a variable that is already set
	os.Unsetenv("SESSION_FILE")

	cfg, err := New()
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	if cfg.Session.File != "/tmp/fleet.json" {
		t.Fatalf("expected value from .env, got %q", cfg.Session.File)
	}
}
