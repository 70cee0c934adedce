package main

// Apply pending schema migrations:
//   go run ./cmd/migrate

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"offerfit-backend/internal/shared/config"
	"offerfit-backend/internal/shared/storage/db"
)

func main() {
	timeout := flag.Duration("timeout", 5*time.Minute, "abort if migrations run longer than this")
	flag.Parse()

	if err := run(*timeout); err != nil {
		log.Fatalf("migrate: %v", err)
	}
}

func run(timeout time.Duration) error {
	cfg := config.Load()
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return errors.New("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer sqlDB.Close()

	return db.RunMigrations(ctx, sqlDB)
}
