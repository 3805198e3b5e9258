package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/lexis/internal/domain"
	"github.com/phrazzld/lexis/internal/platform/logger"
	"github.com/phrazzld/lexis/internal/store"
)

// ProgressStore implements store.ProgressStore on SQLite.
type ProgressStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

var _ store.ProgressStore = (*ProgressStore)(nil)

// NewProgressStore creates a ProgressStore over db.
func NewProgressStore(db *sqlx.DB, log *slog.Logger) *ProgressStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &ProgressStore{db: db, logger: log.With(slog.String("component", "sqlite_progress_store"))}
}

func (s *ProgressStore) LoadCurrent(ctx context.Context) (*domain.UserProgress, error) {
	var row progressRow
	err := s.db.GetContext(ctx, &row, `SELECT * FROM user_progress ORDER BY created_at LIMIT 1`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrProgressNotFound
		}
		return nil, s.fail(ctx, "load_current", "failed to load progress", err)
	}

	p, err := row.toDomain()
	if err != nil {
		return nil, s.fail(ctx, "load_current", "failed to decode progress", err)
	}
	return p, nil
}

func (s *ProgressStore) Save(ctx context.Context, p *domain.UserProgress) error {
	if err := p.Validate(); err != nil {
		return store.NewStoreError("user_progress", "save", "invalid progress", err)
	}

	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO user_progress (
			id, total_words_learned, current_streak, longest_streak, total_study_ms,
			level, experience, daily_goal, weekly_goal, last_study_date,
			created_at, updated_at
		) VALUES (
			:id, :total_words_learned, :current_streak, :longest_streak, :total_study_ms,
			:level, :experience, :daily_goal, :weekly_goal, :last_study_date,
			:created_at, :updated_at
		)
	`, newProgressRow(p))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", store.ErrProgressExists, p.ID)
		}
		return s.fail(ctx, "save", "failed to insert progress", err)
	}
	return nil
}

func (s *ProgressStore) Update(ctx context.Context, p *domain.UserProgress) error {
	if err := p.Validate(); err != nil {
		return store.NewStoreError("user_progress", "update", "invalid progress", err)
	}

	result, err := s.db.NamedExecContext(ctx, `
		UPDATE user_progress
		SET total_words_learned = :total_words_learned, current_streak = :current_streak,
			longest_streak = :longest_streak, total_study_ms = :total_study_ms,
			level = :level, experience = :experience, daily_goal = :daily_goal,
			weekly_goal = :weekly_goal, last_study_date = :last_study_date,
			created_at = :created_at, updated_at = :updated_at
		WHERE id = :id
	`, newProgressRow(p))
	if err != nil {
		return s.fail(ctx, "update", "failed to update progress", err)
	}
	return checkRowsAffected(result, store.ErrProgressNotFound)
}

func (s *ProgressStore) fail(ctx context.Context, op, msg string, err error) error {
	logger.FromContextOrDefault(ctx, s.logger).Error(msg,
		slog.String("operation", op),
		slog.String("error", err.Error()))
	return store.NewStoreError("user_progress", op, msg, mapError(err))
}
