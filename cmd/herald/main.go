// @title           Herald API
// @version         1.0
// @description     Users and notifications with soft-delete lifecycle and role-based access.
// @host            localhost:3000
// @BasePath        /api/v1
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/monocle-dev/herald/db"
	"github.com/monocle-dev/herald/internal/auth"
	"github.com/monocle-dev/herald/internal/config"
	"github.com/monocle-dev/herald/internal/logger"
	"github.com/monocle-dev/herald/internal/realtime"
	"github.com/monocle-dev/herald/internal/router"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatal().Err(err).Msg("Error loading .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	logger.Init(cfg.LogLevel, cfg.LogFormat)

	if cfg.JWTSecretIsWeak {
		logger.Logger.Warn().Msg("JWT_SECRET is not set; using an insecure development secret")
	}

	conn, err := db.ConnectDatabase(cfg.DBDriver, cfg.DatabaseURL, logger.Logger)
	if err != nil {
		logger.Logger.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("Failed to connect to database")
	}

	if err := db.MigrateDatabase(conn); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to migrate database")
	}

	r := router.NewRouter(router.Deps{
		Config: cfg,
		DB:     conn,
		Tokens: auth.NewTokenService(cfg.JWTSecret, cfg.JWTTTL),
		Hasher: auth.BcryptHasher{Cost: cfg.BcryptCost},
		Hub:    realtime.NewHub(cfg.AllowedOrigins, logger.Logger),
		Log:    logger.Logger,
	})

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Logger.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Logger.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("Graceful shutdown failed")
	}

	if sqlDB, err := conn.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
