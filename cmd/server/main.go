// Package main runs the lexis HTTP server: it loads configuration, opens the
// configured storage backend, applies migrations and serves the learning API
// until SIGINT or SIGTERM.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run a migration command (up, version) and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *migrateCmd); err != nil {
		log.Printf("lexis: %v", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, migrateCmd string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	repos, err := openStorage(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer repos.close(logger)

	if migrateCmd != "" {
		return handleMigrations(ctx, repos, migrateCmd, logger)
	}
	if err := handleMigrations(ctx, repos, "up", logger); err != nil {
		return err
	}

	app, err := newApplication(ctx, cfg, logger, repos)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run(ctx)
}
