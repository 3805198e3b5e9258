package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/lexis/internal/platform/migrations"
)

// handleMigrations runs migrateCmd ("up" or "version") against the storage
// database. The memory driver has no schema, so both commands are no-ops.
func handleMigrations(ctx context.Context, s *storage, migrateCmd string, logger *slog.Logger) error {
	if migrateCmd != "up" && migrateCmd != "version" {
		return fmt.Errorf("unknown migration command %q", migrateCmd)
	}
	if s.db == nil {
		logger.Debug("skipping migrations", "driver", s.driver)
		return nil
	}

	switch migrateCmd {
	case "up":
		if err := migrations.Up(ctx, s.db, s.dialect, logger); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
	case "version":
		version, err := migrations.Version(ctx, s.db, s.dialect)
		if err != nil {
			return fmt.Errorf("failed to read migration version: %w", err)
		}
		logger.Info("Current migration version", "version", version, "driver", s.driver)
	}
	return nil
}
