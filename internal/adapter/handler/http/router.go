package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sm8ta/fleet_maintenance_console/internal/config"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/ports"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Router struct {
	router *gin.Engine
	server *http.Server
}

type Handlers struct {
	Auth          *AuthHandler
	Vehicle       *VehicleHandler
	Workshop      *WorkshopHandler
	ServiceRecord *ServiceRecordHandler
	User          *UserHandler
	Dashboard     *DashboardHandler
}

func NewRouter(
	cfg *config.HTTP,
	metrics ports.MetricsPort,
	session ports.SessionPort,
	logger ports.LoggerPort,
	guard *ActionGuard,
	h Handlers,
) (*Router, error) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// CORS
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", requestIDHeader},
		ExposeHeaders: []string{"Content-Length", requestIDHeader},
	}
	if origins := cfg.Origins(); len(origins) > 0 {
		corsConfig.AllowOrigins = origins
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	router.Use(cors.New(corsConfig))
	router.Use(RequestIDMiddleware(), metrics.Middleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Metrics
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	console := router.Group("")
	console.Use(GateMiddleware(session, logger))
	editor := RequireEditor(logger)

	// Auth routes
	auth := console.Group("/auth")
	{
		auth.GET("/login", h.Auth.LoginView)
		auth.POST("/login", guard.Single("auth.login", h.Auth.Login))
		auth.POST("/register", guard.Single("auth.register", h.Auth.Register))
		auth.POST("/logout", h.Auth.Logout)
	}
	console.GET("/menu", h.Auth.Menu)
	console.GET("/perfil", h.Auth.GetProfile)
	console.PUT("/perfil", guard.Single("perfil.guardar", h.Auth.UpdateProfile))

	console.GET("/dashboard", h.Dashboard.Dashboard)
	console.GET("/reportes", h.Dashboard.Reports)

	// Vehicles routes
	vehicles := console.Group("/vehiculos")
	{
		vehicles.GET("", h.Vehicle.ListVehicles)
		vehicles.GET("/:id", h.Vehicle.GetVehicle)
		vehicles.POST("", editor, guard.Single("vehiculo.guardar", h.Vehicle.CreateVehicle))
		vehicles.PUT("/:id", editor, guard.Single("vehiculo.guardar", h.Vehicle.UpdateVehicle))
		vehicles.DELETE("/:id", editor, guard.Single("vehiculo.eliminar", h.Vehicle.DeleteVehicle))
		vehicles.POST("/:id/registro-servicio/:rid", editor, guard.Single("vehiculo.registros", h.Vehicle.AssignServiceRecord))
		vehicles.DELETE("/:id/registro-servicio/:rid", editor, guard.Single("vehiculo.registros", h.Vehicle.RemoveServiceRecord))
	}

	// Workshops routes
	workshops := console.Group("/talleres")
	{
		workshops.GET("", h.Workshop.ListWorkshops)
		workshops.GET("/:id", h.Workshop.GetWorkshop)
		workshops.POST("", editor, guard.Single("taller.guardar", h.Workshop.CreateWorkshop))
		workshops.PUT("/:id", editor, guard.Single("taller.guardar", h.Workshop.UpdateWorkshop))
		workshops.DELETE("/:id", editor, guard.Single("taller.eliminar", h.Workshop.DeleteWorkshop))
	}

	// Service records routes
	records := console.Group("/registro-servicio")
	{
		records.GET("", h.ServiceRecord.ListServiceRecords)
		records.GET("/opciones", h.ServiceRecord.GetOptions)
		records.GET("/:id", h.ServiceRecord.GetServiceRecord)
		records.POST("", editor, guard.Single("registro.guardar", h.ServiceRecord.CreateServiceRecord))
		records.PUT("/:id", editor, guard.Single("registro.guardar", h.ServiceRecord.UpdateServiceRecord))
		records.DELETE("/:id", editor, guard.Single("registro.eliminar", h.ServiceRecord.DeleteServiceRecord))
	}

	// Admin routes
	settings := console.Group("/configuracion")
	{
		settings.GET("/usuarios", h.User.ListUsers)
		settings.GET("/usuarios/:id", h.User.GetUser)
		settings.PUT("/usuarios/:id", guard.Single("usuario.guardar", h.User.UpdateUser))
		settings.POST("/usuarios/:id/roles/:rolId", guard.Single("usuario.roles", h.User.AssignRole))
		settings.DELETE("/usuarios/:id/roles/:rolId", guard.Single("usuario.roles", h.User.RemoveRole))
		settings.GET("/roles", h.User.ListRoles)
	}

	return &Router{
		router: router,
		server: &http.Server{Addr: cfg.Addr(), Handler: router},
	}, nil
}

// Serve blocks until the server stops. A Shutdown is not reported as an error.
func (r *Router) Serve() error {
	if err := r.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (r *Router) Shutdown(ctx context.Context) error {
	return r.server.Shutdown(ctx)
}

func (r *Router) Engine() *gin.Engine {
	return r.router
}
