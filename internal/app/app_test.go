package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/sm8ta/fleet_maintenance_console/internal/config"
	"github.com/sm8ta/fleet_maintenance_console/internal/testutil"
)

func testConfig(t *testing.T, backend string) *config.Container {
	t.Helper()
	api := testutil.NewFleetAPI(t)
	return &config.Container{
		App: &config.App{Name: "fleet-maintenance-console", Env: "test"},
		API: &config.API{BaseURL: api.URL()},
		Session: &config.Session{
			Backend: backend,
			File:    filepath.Join(t.TempDir(), "session.json"),
		},
		DB:    &config.DB{},
		HTTP:  &config.HTTP{Env: "test", Port: "0"},
		Redis: &config.Redis{},
	}
}

func TestNewWiresConsole(t *testing.T) {
	for _, backend := range []string{config.BackendMemory, config.BackendFile} {
		t.Run(backend, func(t *testing.T) {
			a, err := New(context.Background(), testConfig(t, backend))
			if err != nil {
				t.Fatalf("New() error: %v", err)
			}

			w := httptest.NewRecorder()
			a.HTTPRouter.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200 from /health, got %d", w.Code)
			}

			w = httptest.NewRecorder()
			a.HTTPRouter.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
			if w.Code != http.StatusFound {
				t.Fatalf("expected anonymous /dashboard to redirect, got %d", w.Code)
			}

			if err := a.Stop(context.Background()); err != nil {
				t.Fatalf("Stop() error: %v", err)
			}
		})
	}
}

func TestNewRejectsBadAPIURL(t *testing.T) {
	cfg := testConfig(t, config.BackendMemory)
	cfg.API.BaseURL = "fleet-api"

	if _, err := New(context.Background(), cfg); err == nil {
		t.Fatal("expected an error for a base URL without host")
	}
}

func TestNewFailsWithoutRedis(t *testing.T) {
	cfg := testConfig(t, config.BackendRedis)
	cfg.Redis.Address = "127.0.0.1:1"

	if _, err := New(context.Background(), cfg); err == nil {
		t.Fatal("expected an error when Redis is unreachable")
	}
}
