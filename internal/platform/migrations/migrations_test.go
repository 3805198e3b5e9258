package migrations_test

import (
	"context"
	"database/sql"
	"log/slog"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/phrazzld/lexis/internal/platform/migrations"
	"github.com/phrazzld/lexis/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestUpSQLite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := openMemoryDB(t)
	capture, log := testutils.NewSlogCapture()

	require.NoError(t, migrations.Up(ctx, db, migrations.SQLite, log))
	assert.True(t, capture.HasMessage(slog.LevelInfo, "migrations applied"))

	for _, table := range []string{"words", "study_sessions", "user_progress", migrations.TableName} {
		var name string
		err := db.QueryRowContext(ctx,
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		require.NoError(t, err, "table %s", table)
	}

	version, err := migrations.Version(ctx, db, migrations.SQLite)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	require.NoError(t, migrations.Up(ctx, db, migrations.SQLite, log), "re-running is a no-op")
}

func TestUpRejectsUnknownDialect(t *testing.T) {
	t.Parallel()

	err := migrations.Up(context.Background(), openMemoryDB(t), migrations.Dialect("oracle"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported migration dialect")
}

func TestSQLiteSchemaEnforcesConstraints(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := openMemoryDB(t)
	require.NoError(t, migrations.Up(ctx, db, migrations.SQLite, nil))

	_, err := db.ExecContext(ctx,
		"INSERT INTO words (headword, translation, difficulty) VALUES ('a', 'x', 9)")
	assert.Error(t, err, "difficulty is bounded")

	_, err = db.ExecContext(ctx,
		"INSERT INTO words (headword, translation, difficulty, learning_count, correct_count) VALUES ('a', 'x', 1, 1, 2)")
	assert.Error(t, err, "correct count cannot exceed learning count")
}
