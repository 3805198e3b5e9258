package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/lexis/internal/domain"
	"github.com/phrazzld/lexis/internal/platform/logger"
	"github.com/phrazzld/lexis/internal/store"
)

const progressColumns = `id, total_words_learned, current_streak, longest_streak,
	total_study_ms, level, experience, daily_goal, weekly_goal, last_study_date,
	created_at, updated_at`

// ProgressStore implements store.ProgressStore on PostgreSQL. The table
// holds a single row; the oldest row wins if more exist.
type ProgressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.ProgressStore = (*ProgressStore)(nil)

// NewProgressStore creates a ProgressStore over db.
func NewProgressStore(db store.DBTX, log *slog.Logger) *ProgressStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &ProgressStore{
		db:     db,
		logger: log.With(slog.String("component", "postgres_progress_store")),
	}
}

func (s *ProgressStore) LoadCurrent(ctx context.Context) (*domain.UserProgress, error) {
	var (
		p         domain.UserProgress
		studyMS   int64
		lastStudy sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT `+progressColumns+`
		FROM user_progress
		ORDER BY created_at
		LIMIT 1
	`).Scan(
		&p.ID,
		&p.TotalWordsLearned,
		&p.CurrentStreak,
		&p.LongestStreak,
		&studyMS,
		&p.Level,
		&p.Experience,
		&p.DailyGoal,
		&p.WeeklyGoal,
		&lastStudy,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrProgressNotFound
		}
		return nil, s.fail(ctx, "load_current", "failed to load progress", err)
	}

	p.TotalStudyTime = time.Duration(studyMS) * time.Millisecond
	p.LastStudyDate = timePtr(lastStudy)
	return &p, nil
}

func (s *ProgressStore) Save(ctx context.Context, p *domain.UserProgress) error {
	if err := p.Validate(); err != nil {
		return store.NewStoreError("user_progress", "save", "invalid progress", err)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_progress (`+progressColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`,
		p.ID,
		p.TotalWordsLearned,
		p.CurrentStreak,
		p.LongestStreak,
		p.TotalStudyTime.Milliseconds(),
		p.Level,
		p.Experience,
		p.DailyGoal,
		p.WeeklyGoal,
		nullTime(p.LastStudyDate),
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
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

	result, err := s.db.ExecContext(ctx, `
		UPDATE user_progress
		SET total_words_learned = $1, current_streak = $2, longest_streak = $3,
			total_study_ms = $4, level = $5, experience = $6, daily_goal = $7,
			weekly_goal = $8, last_study_date = $9, created_at = $10, updated_at = $11
		WHERE id = $12
	`,
		p.TotalWordsLearned,
		p.CurrentStreak,
		p.LongestStreak,
		p.TotalStudyTime.Milliseconds(),
		p.Level,
		p.Experience,
		p.DailyGoal,
		p.WeeklyGoal,
		nullTime(p.LastStudyDate),
		p.CreatedAt,
		p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		return s.fail(ctx, "update", "failed to update progress", err)
	}
	return CheckRowsAffected(result, store.ErrProgressNotFound)
}

func (s *ProgressStore) fail(ctx context.Context, op, msg string, err error) error {
	logger.FromContextOrDefault(ctx, s.logger).Error(msg,
		slog.String("operation", op),
		slog.String("error", err.Error()))
	return store.NewStoreError("user_progress", op, msg, MapError(err))
}
