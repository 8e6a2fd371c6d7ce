// Package main is the entry point for the Spot API server, a REST service
// for registering users, reviewing places and searching them by rating.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/spot-api/internal/config"
	"github.com/phrazzld/spot-api/internal/platform/logger"
	"github.com/phrazzld/spot-api/internal/redact"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"run a migration command and exit: up, down, status, version or reset")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *migrateCmd); err != nil {
		slog.Error("spot-api exited with error", slog.String("error", redact.Error(err)))
		stop()
		os.Exit(1)
	}
}

// run loads configuration, connects to the database and either executes a
// migration command or serves HTTP until ctx is cancelled.
func run(ctx context.Context, migrateCmd string) error {
	if migrateCmd != "" {
		if err := validateMigrationCommand(migrateCmd); err != nil {
			return err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	l.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.Bool("metrics_enabled", cfg.Metrics.Enabled))

	db, err := setupAppDatabase(ctx, cfg.Database, l)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			l.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}()

	if migrateCmd != "" {
		return runMigrations(ctx, db, migrateCmd, l)
	}

	app, err := newApplication(cfg, l, db, prometheus.NewRegistry())
	if err != nil {
		return err
	}
	return app.Run(ctx)
}
