package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/phrazzld/lexis/internal/config"
	"github.com/phrazzld/lexis/internal/platform/memory"
	"github.com/phrazzld/lexis/internal/platform/migrations"
	"github.com/phrazzld/lexis/internal/platform/postgres"
	"github.com/phrazzld/lexis/internal/platform/sqlite"
	"github.com/phrazzld/lexis/internal/store"
)

// storage bundles the repositories of one backend with its connection.
type storage struct {
	driver   string
	words    store.WordStore
	sessions store.SessionStore
	progress store.ProgressStore

	// db is nil for the memory driver.
	db      *sql.DB
	dialect migrations.Dialect
}

// openStorage opens the backend selected by cfg.Driver.
func openStorage(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*storage, error) {
	switch cfg.Driver {
	case "memory":
		logger.Warn("using in-memory storage, data is lost on shutdown")
		return &storage{
			driver:   cfg.Driver,
			words:    memory.NewWordStore(),
			sessions: memory.NewSessionStore(),
			progress: memory.NewProgressStore(),
		}, nil

	case "sqlite":
		db, err := sqlite.Open(ctx, cfg.URL)
		if err != nil {
			return nil, err
		}
		logger.Info("Database connection established", "driver", cfg.Driver)
		return &storage{
			driver:   cfg.Driver,
			words:    sqlite.NewWordStore(db, logger),
			sessions: sqlite.NewSessionStore(db, logger),
			progress: sqlite.NewProgressStore(db, logger),
			db:       db.DB,
			dialect:  migrations.SQLite,
		}, nil

	case "postgres":
		db, err := openPostgres(ctx, cfg.URL)
		if err != nil {
			return nil, err
		}
		logger.Info("Database connection established", "driver", cfg.Driver)
		return &storage{
			driver:   cfg.Driver,
			words:    postgres.NewWordStore(db, logger),
			sessions: postgres.NewSessionStore(db, logger),
			progress: postgres.NewProgressStore(db, logger),
			db:       db,
			dialect:  migrations.Postgres,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func openPostgres(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

func (s *storage) close(logger *slog.Logger) {
	if s == nil || s.db == nil {
		return
	}
	if err := s.db.Close(); err != nil {
		logger.Error("Error closing database connection", "error", err)
	}
}
