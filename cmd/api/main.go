// cmd/api/main.go
// Main entry point for the matching service
// This file bootstraps all components and starts the server

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"github.com/imadgeboyega/kiekky-matching/internal/auth"
	"github.com/imadgeboyega/kiekky-matching/internal/common/database"
	"github.com/imadgeboyega/kiekky-matching/internal/common/logging"
	"github.com/imadgeboyega/kiekky-matching/internal/config"
	"github.com/imadgeboyega/kiekky-matching/internal/matching"
	"github.com/imadgeboyega/kiekky-matching/internal/profile"
)

func main() {
	// 1. Load environment variables
	envErr := godotenv.Load()

	// 2. Load configuration and set up logging
	cfg := config.Load()
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	logging.Info().Msg("starting Kiekky matching API")
	if envErr != nil {
		logging.Warn().Err(envErr).Msg("no .env file found, using environment variables")
	}

	// 3. Validate configuration
	if err := cfg.Validate(); err != nil {
		logging.Fatal().Err(err).Msg("configuration validation failed")
	}
	logging.Info().
		Str("environment", cfg.Environment).
		Str("store", cfg.StoreBackend).
		Bool("auth_required", cfg.AuthRequired).
		Msg("configuration loaded")

	ctx := context.Background()

	// 4. Storage backends
	deps := &dependencies{}
	var stores matching.Stores

	switch cfg.StoreBackend {
	case "memory":
		logging.Warn().Msg("using in-memory stores, data is lost on restart")
		stores = matching.Stores{
			Interactions:    matching.NewMemoryInteractionStore(),
			SuccessPatterns: matching.NewMemorySuccessPatternStore(),
			Profiles:        profile.NewMemoryStore(),
		}

	default:
		db, err := database.NewPostgresDB(ctx, database.DefaultPostgresConfig(cfg.DatabaseURL))
		if err != nil {
			logging.Fatal().Err(err).Msg("failed to connect to PostgreSQL")
		}
		defer db.Close()
		deps.db = db
		logging.Info().Msg("connected to PostgreSQL")

		// 5. Run database migrations
		if cfg.RunMigrations {
			if err := database.RunMigrations(ctx, db); err != nil {
				logging.Fatal().Err(err).Msg("failed to run migrations")
			}
		}

		stores = matching.Stores{
			Interactions:    matching.NewPostgresInteractionStore(db),
			SuccessPatterns: matching.NewPostgresSuccessPatternStore(db),
			Profiles:        profile.NewPostgresRepository(db),
		}
	}

	// 6. Connect to Redis (optional profile cache)
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClientFromURL(ctx, cfg.RedisURL)
		if err != nil {
			logging.Warn().Err(err).Msg("redis unavailable, continuing without profile cache")
		} else {
			defer redisClient.Close()
			deps.redis = redisClient
			stores.Profiles = profile.NewCachedStore(stores.Profiles, redisClient, cfg.ProfileCacheTTL)
			logging.Info().Dur("ttl", cfg.ProfileCacheTTL).Msg("profile cache enabled")
		}
	} else {
		logging.Info().Msg("redis URL not configured, profile cache disabled")
	}

	// 7. Initialize matching system
	matchingService := matching.NewService(stores, matching.DeriverConfig{
		InteractionWindow: cfg.InteractionWindow,
		PatternWindow:     cfg.SuccessPatternWindow,
		Location:          cfg.Location(),
	})
	matchingHandler := matching.NewHandler(matchingService)
	authMiddleware := auth.NewMiddleware(cfg.JWTSecret, cfg.AuthRequired)

	// 8. Routes
	router := newRouter(deps, matchingHandler, authMiddleware)

	// 9. Create and start HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	logging.Info().Msg("server exited gracefully")
}

// dependencies are the optional backends reported by /health
type dependencies struct {
	db    *sqlx.DB
	redis *redis.Client
}
