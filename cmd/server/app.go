package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/pointboard-app/pointboard/internal/config"
	"github.com/pointboard-app/pointboard/internal/platform/postgres"
	"github.com/pointboard-app/pointboard/internal/platform/redis"
	"github.com/pointboard-app/pointboard/internal/service"
	"github.com/pointboard-app/pointboard/internal/service/auth"
	"github.com/pointboard-app/pointboard/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore store.UserStore
	rankStore store.RankStore

	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	userService      service.UserService
	rankService      service.RankService

	rankCache *redis.RankCache
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()

	app.userStore = postgres.NewPostgresUserStore(db, cfg.Auth.BcryptCost, logger)
	app.rankStore = postgres.NewPostgresRankStore(db, logger)

	// The first-page rank cache is optional; it is only wired when a Redis
	// address is configured.
	var rankCache service.RankCache
	if cfg.Cache.RedisAddr != "" {
		app.rankCache = redis.NewRankCache(
			cfg.Cache.RedisAddr,
			time.Duration(cfg.Cache.RankTTLSeconds)*time.Second,
			logger,
		)
		rankCache = app.rankCache
		logger.Info("Rank cache enabled", "addr", cfg.Cache.RedisAddr)
	}

	app.userService = service.NewUserService(
		app.userStore,
		app.jwtService,
		app.passwordVerifier,
		db,
		logger,
	)
	app.rankService = service.NewRankService(
		app.rankStore,
		app.userStore,
		rankCache,
		db,
		logger,
	)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.rankCache != nil {
		if err := app.rankCache.Close(); err != nil {
			app.logger.Error("Error closing rank cache", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
