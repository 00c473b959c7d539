// Package server assembles the Fiber application: middleware, the session
// gate and every route.
package server

import (
	"strings"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/ruthvic2255/cycle-companion/internal/config"
	"github.com/ruthvic2255/cycle-companion/internal/forms"
	"github.com/ruthvic2255/cycle-companion/internal/handlers"
	"github.com/ruthvic2255/cycle-companion/internal/middleware"
	"github.com/ruthvic2255/cycle-companion/internal/session"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are the shared objects every handler is built from
type Deps struct {
	Config    *config.Config
	Log       *zap.Logger
	CatalogDB *gorm.DB
	UserDB    *gorm.DB
	Sessions  *session.Manager
	Guard     *forms.Guard

	// Metrics registers Prometheus collectors, which may happen once per process
	Metrics bool
	// AccessLog enables the request logger middleware
	AccessLog bool
}

// New builds the application
func New(d Deps) *fiber.App {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Guard == nil {
		d.Guard = forms.NewGuard()
	}
	cfg := d.Config

	app := fiber.New(fiber.Config{
		AppName:               "cycle-companion",
		ErrorHandler:          handlers.ErrorHandler(d.Log),
		DisableStartupMessage: true,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          15 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	if d.AccessLog {
		app.Use(logger.New())
	}
	app.Use(compress.New())
	app.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	if d.Metrics {
		prometheus := fiberprometheus.New("cycle_companion")
		prometheus.RegisterAt(app, "/metrics")
		app.Use(prometheus.Middleware)
	}

	if cfg.DocsEnabled() {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	health := &handlers.HealthHandler{
		Config: cfg,
		Pools:  map[string]*gorm.DB{"catalog": d.CatalogDB, "user": d.UserDB},
		Log:    d.Log,
	}
	app.Get("/healthz", health.GetHealth)

	userData := handlers.NewUserDataHandler(d.UserDB, d.Guard, d.Log)
	catalog := &handlers.CatalogHandler{DB: d.CatalogDB, Log: d.Log}
	sessions := &handlers.SessionHandler{
		Sessions:   d.Sessions,
		CookieName: cfg.SessionCookie,
		SignInPath: cfg.SignInPath,
		Log:        d.Log,
	}

	// Every API route requires a session
	api := app.Group("/api", middleware.SessionGate(d.Sessions, cfg.SessionCookie, cfg.SignInPath))

	api.Get("/dashboard", sessions.GetDashboard)
	api.Post("/session/signout", sessions.SignOut)

	api.Get("/profile", userData.GetProfile)
	api.Put("/profile", userData.UpdateProfile)
	api.Get("/cycles", userData.GetCycles)
	api.Post("/cycles", userData.CreateCycle)
	api.Get("/physical-data", userData.GetPhysicalData)
	api.Post("/physical-data", userData.CreatePhysicalData)
	api.Get("/notifications", userData.GetNotificationSettings)
	api.Put("/notifications", userData.UpdateNotificationSettings)

	api.Get("/exercise/videos", catalog.GetExerciseVideos)
	api.Get("/nutrition", catalog.GetNutrition)
	api.Get("/nutrition/videos", catalog.GetFoodVideos)
	api.Get("/nutrition/foods", catalog.GetSuggestedFoods)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "[404] Resource Not Found")
	})

	return app
}

// corsConfig allows credentials only for an explicit origin list
func corsConfig(origins string) cors.Config {
	origins = strings.TrimSpace(origins)
	if origins == "" || origins == "*" {
		return cors.Config{AllowOrigins: "*"}
	}
	return cors.Config{
		AllowOrigins:     origins,
		AllowCredentials: true,
	}
}
