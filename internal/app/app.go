package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sm8ta/fleet_maintenance_console/internal/adapter/apiclient"
	"github.com/sm8ta/fleet_maintenance_console/internal/adapter/filestore"
	"github.com/sm8ta/fleet_maintenance_console/internal/adapter/handler/http"
	"github.com/sm8ta/fleet_maintenance_console/internal/adapter/logger"
	"github.com/sm8ta/fleet_maintenance_console/internal/adapter/postgres"
	"github.com/sm8ta/fleet_maintenance_console/internal/adapter/prometheus"
	"github.com/sm8ta/fleet_maintenance_console/internal/adapter/redis"
	"github.com/sm8ta/fleet_maintenance_console/internal/config"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/ports"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/services"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/session"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/validation"

	"github.com/go-playground/validator/v10"
	redisClient "github.com/redis/go-redis/v9"
)

type App struct {
	Config      *config.Container
	Logger      ports.LoggerPort
	DB          *sql.DB
	RedisClient *redisClient.Client
	Session     *session.Session
	HTTPRouter  *http.Router
}

func New(ctx context.Context, cfg *config.Container) (*App, error) {
	// Set logger
	loggerAdapter := logger.NewLoggerAdapter(cfg.App.Env)
	loggerAdapter.Info("Starting the application", map[string]interface{}{
		"app":             cfg.App.Name,
		"env":             cfg.App.Env,
		"api":             cfg.API.BaseURL,
		"session_backend": cfg.Session.Backend,
	})

	a := &App{
		Config: cfg,
		Logger: loggerAdapter,
	}

	// Session state
	store, err := a.stateStore(ctx)
	if err != nil {
		a.closeResources()
		return nil, err
	}
	sess := session.New(store, loggerAdapter, session.WithKey(cfg.Session.Key))
	a.Session = sess

	// Observability
	metrics := prometheus.NewPrometheusAdapter()

	// Fleet API client
	client, err := apiclient.New(cfg.API.BaseURL, sess, loggerAdapter, metrics)
	if err != nil {
		a.closeResources()
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	// Validate
	validate := validation.New(validator.New())

	// Services
	vehicleService := services.NewVehicleService(client, loggerAdapter, validate)
	workshopService := services.NewWorkshopService(client, loggerAdapter, validate)
	recordService := services.NewServiceRecordService(client, loggerAdapter, validate)
	userService := services.NewUserService(client, loggerAdapter, validate)
	authService := services.NewAuthService(client, sess, loggerAdapter, validate)

	// HTTP Handlers
	guard := http.NewActionGuard()
	handlers := http.Handlers{
		Auth:          http.NewAuthHandler(authService, sess, loggerAdapter),
		Vehicle:       http.NewVehicleHandler(vehicleService, loggerAdapter, guard),
		Workshop:      http.NewWorkshopHandler(workshopService, loggerAdapter, guard),
		ServiceRecord: http.NewServiceRecordHandler(recordService, loggerAdapter, guard),
		User:          http.NewUserHandler(userService, loggerAdapter, guard),
		Dashboard:     http.NewDashboardHandler(vehicleService, workshopService, recordService, loggerAdapter, guard),
	}

	// Init HTTP router
	router, err := http.NewRouter(cfg.HTTP, metrics, sess, loggerAdapter, guard, handlers)
	if err != nil {
		a.closeResources()
		return nil, fmt.Errorf("failed to initialize router: %w", err)
	}
	a.HTTPRouter = router

	return a, nil
}

// stateStore opens the backend that keeps the session token.
func (a *App) stateStore(ctx context.Context) (ports.StateStore, error) {
	cfg := a.Config
	switch cfg.Session.Backend {
	case config.BackendMemory:
		return filestore.NewMemoryStore(), nil

	case config.BackendRedis:
		conn, err := redis.Connect(ctx, cfg.Redis.Address, cfg.Redis.Password)
		if err != nil {
			return nil, err
		}
		a.RedisClient = conn
		return redis.NewStateStore(conn, 0), nil

	case config.BackendPostgres:
		db, err := postgres.Open(ctx, postgres.DSN(cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name))
		if err != nil {
			return nil, err
		}
		a.DB = db

		// Migrate DB
		if err := postgres.Migrate(db, cfg.DB.MigrationsDir); err != nil {
			return nil, err
		}
		return postgres.NewStateStore(db)

	default:
		store, err := filestore.NewFileStore(cfg.Session.File)
		if err != nil {
			return nil, fmt.Errorf("failed to open session file: %w", err)
		}
		return store, nil
	}
}

// Runs all services
func (a *App) Run() error {
	a.Logger.Info("Starting HTTP server", map[string]interface{}{
		"addr": a.Config.HTTP.Addr(),
	})

	if err := a.HTTPRouter.Serve(); err != nil {
		a.Logger.Error("HTTP server error", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}
	return nil
}

// Stops all services
func (a *App) Stop(ctx context.Context) error {
	a.Logger.Info("Shutting down gracefully...", nil)

	var shutdownErr error
	if a.HTTPRouter != nil {
		if err := a.HTTPRouter.Shutdown(ctx); err != nil {
			a.Logger.Error("HTTP server shutdown error", map[string]interface{}{
				"error": err.Error(),
			})
			shutdownErr = err
		}
	}

	a.closeResources()

	a.Logger.Info("Application stopped successfully", nil)
	return shutdownErr
}

func (a *App) closeResources() {
	// Close database
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.Logger.Error("Database close error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	// Close Redis
	if a.RedisClient != nil {
		if err := a.RedisClient.Close(); err != nil {
			a.Logger.Error("Redis close error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}
