// Command seed-sqlite writes the embedded catalog into SQLITE_PATH so a
// server started with SEED_SOURCE=sqlite has data to load.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"bizarre-bazaar/internal/config"
	"bizarre-bazaar/internal/database"
	"bizarre-bazaar/internal/logger"
	"bizarre-bazaar/internal/seed"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Instance()
	cfg := config.Instance()

	db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
	if err != nil {
		logger.Error(ctx, "Failed to open sqlite", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	catalog := seed.Default()
	if err := seed.WriteSQLite(ctx, db.DB, catalog); err != nil {
		logger.Error(ctx, "Failed to write seed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info(ctx, "SQLite seed written",
		slog.String("path", cfg.SQLitePath),
		slog.Int("products", len(catalog.Products)),
		slog.Int("suppliers", len(catalog.Suppliers)),
		slog.Int("reviews", len(catalog.Reviews)),
	)
}
