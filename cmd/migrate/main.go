package main

import (
	"flag"

	"github.com/pageza/mealdeck/backend/config"
	"github.com/pageza/mealdeck/backend/internal/database"
	"github.com/pageza/mealdeck/backend/internal/logging"
)

func main() {
	dir := flag.String("dir", "", "Directory holding the .sql migrations (defaults to MIGRATIONS_DIR)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	migrationsDir := cfg.MigrationsDir
	if *dir != "" {
		migrationsDir = *dir
	}

	db, err := database.Open(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close(db)

	if err := database.RunMigrations(db, migrationsDir); err != nil {
		logging.Fatal().Err(err).Msg("Migration failed")
	}
	logging.Info().Str("dir", migrationsDir).Msg("All migrations applied successfully")
}
