package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type (
	Container struct {
		App     *App
		API     *API
		Session *Session
		DB      *DB
		HTTP    *HTTP
		Redis   *Redis
	}

	App struct {
		Name string
		Env  string
	}

	// API is the fleet REST API the console talks to.
	API struct {
		BaseURL string
	}

	Session struct {
		Backend string
		// Key is the state key holding the token. Empty keeps the session default.
		Key     string
		File    string
	}

	DB struct {
		Host          string
		Port          string
		User          string
		Password      string
		Name          string
		MigrationsDir string
	}

	HTTP struct {
		Env            string
		Port           string
		AllowedOrigins string
		URL            string
	}

	Redis struct {
		Address  string
		Password string
	}
)

// New reads the configuration from the environment. Outside production a .env
// file is loaded first when present.
func New() (*Container, error) {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	app := &App{
		Name: getenv("APP_NAME", "fleet-maintenance-console"),
		Env:  getenv("APP_ENV", "development"),
	}

	api := &API{
		BaseURL: os.Getenv("API_BASE_URL"),
	}
	if strings.TrimSpace(api.BaseURL) == "" {
		return nil, fmt.Errorf("API_BASE_URL is required")
	}

	session := &Session{
		Backend: strings.ToLower(getenv("SESSION_BACKEND", BackendFile)),
		Key:     os.Getenv("SESSION_KEY"),
		File:    getenv("SESSION_FILE", "./data/session.json"),
	}
	switch session.Backend {
	case BackendFile, BackendMemory, BackendRedis, BackendPostgres:
	default:
		return nil, fmt.Errorf("unknown SESSION_BACKEND %q", session.Backend)
	}

	db := &DB{
		Host:          getenv("DB_HOST", "localhost"),
		Port:          getenv("DB_PORT", "5432"),
		User:          os.Getenv("DB_USER"),
		Password:      os.Getenv("DB_PASSWORD"),
		Name:          os.Getenv("DB_NAME"),
		MigrationsDir: getenv("MIGRATIONS_DIR", "./internal/adapter/postgres/migrations"),
	}

	http := &HTTP{
		Port:           getenv("HTTP_PORT", "8080"),
		AllowedOrigins: os.Getenv("ALLOWED_ORIGINS"),
		URL:            os.Getenv("HTTP_URL"),
		Env:            app.Env,
	}

	redis := &Redis{
		Address:  getenv("REDIS_ADDRESS", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
	}

	return &Container{
		App:     app,
		API:     api,
		Session: session,
		DB:      db,
		HTTP:    http,
		Redis:   redis,
	}, nil
}

// Origins splits ALLOWED_ORIGINS on commas. Empty means any origin.
func (h *HTTP) Origins() []string {
	var out []string
	for _, o := range strings.Split(h.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (h *HTTP) Addr() string {
	return fmt.Sprintf("%s:%s", h.URL, h.Port)
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
