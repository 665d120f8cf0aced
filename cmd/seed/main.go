package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/monocle-dev/herald/db"
	"github.com/monocle-dev/herald/internal/auth"
	"github.com/monocle-dev/herald/internal/config"
	"github.com/monocle-dev/herald/internal/logger"
	"github.com/monocle-dev/herald/internal/seed"
	"github.com/rs/zerolog/log"
)

func main() {
	reset := flag.Bool("reset", true, "delete every user and notification before seeding")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatal().Err(err).Msg("Error loading .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	conn, err := db.ConnectDatabase(cfg.DBDriver, cfg.DatabaseURL, logger.Logger)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	if err := db.MigrateDatabase(conn); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to migrate database")
	}

	ctx := context.Background()
	seeder := seed.New(conn, auth.BcryptHasher{Cost: cfg.BcryptCost}, logger.Logger)

	logger.Logger.Info().Msg("Starting seeding")

	if *reset {
		if err := seeder.Reset(ctx); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Error during seeding")
		}
	}

	summary, err := seeder.Run(ctx)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Error during seeding")
	}

	logger.Logger.Info().
		Int("notifications", summary.Notifications).
		Int("skipped_users", summary.Skipped).
		Msg("Seeding completed")
}
