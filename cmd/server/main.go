package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ruthvic2255/cycle-companion/internal/config"
	"github.com/ruthvic2255/cycle-companion/internal/database"
	"github.com/ruthvic2255/cycle-companion/internal/forms"
	"github.com/ruthvic2255/cycle-companion/internal/logging"
	"github.com/ruthvic2255/cycle-companion/internal/server"
	"github.com/ruthvic2255/cycle-companion/internal/session"
	"go.uber.org/zap"

	_ "github.com/ruthvic2255/cycle-companion/docs/api" // Swagger docs
)

// @title Cycle Companion API
// @version 1.0.0
// @description Menstrual cycle tracking, personal health data and curated wellness content
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/ruthvic2255/cycle-companion

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name cookie_session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.AppEnv)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Connect to database (catalog pool)
	catalogDB, err := database.Connect(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to catalog database", zap.Error(err))
	}
	defer database.Close(catalogDB)

	// Connect to database (user pool)
	userDB, err := database.ConnectUser(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to user database", zap.Error(err))
	}
	defer database.Close(userDB)

	// The catalog user may only read, so migrations run on the user pool
	if cfg.DBAutoMigrate {
		if err := database.AutoMigrate(userDB); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	// Authorizer is initialized on the first session lookup
	authenticator := session.NewAuthorizerAuthenticator(
		cfg.AuthzURL, cfg.AuthzClientID, cfg.AuthzRedirectURL, cfg.SessionCookie, logger)
	sessions := session.NewManager(authenticator, cfg.SessionRevokeTTL, logger)

	unsubscribe := sessions.Subscribe(func(ev session.Event) {
		logger.Info("Auth state changed", zap.Stringer("event", ev.Kind), zap.String("user_id", ev.UserID))
	})
	defer unsubscribe()

	app := server.New(server.Deps{
		Config:    cfg,
		Log:       logger,
		CatalogDB: catalogDB,
		UserDB:    userDB,
		Sessions:  sessions,
		Guard:     forms.NewGuard(),
		Metrics:   true,
		AccessLog: true,
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logger.Info("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	logger.Info("Starting server", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}

	logger.Info("Server stopped")
}
