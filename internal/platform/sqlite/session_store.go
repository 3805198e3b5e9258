package sqlite

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/lexis/internal/domain"
	"github.com/phrazzld/lexis/internal/platform/logger"
	"github.com/phrazzld/lexis/internal/store"
)

// SessionStore implements store.SessionStore on SQLite. The word list is
// stored as JSON text.
type SessionStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

var _ store.SessionStore = (*SessionStore)(nil)

// NewSessionStore creates a SessionStore over db.
func NewSessionStore(db *sqlx.DB, log *slog.Logger) *SessionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &SessionStore{db: db, logger: log.With(slog.String("component", "sqlite_session_store"))}
}

func (s *SessionStore) Save(ctx context.Context, session *domain.StudySession) error {
	if err := session.Validate(); err != nil {
		return store.NewStoreError("study_session", "save", "invalid session", err)
	}
	row, err := newSessionRow(session)
	if err != nil {
		return store.NewStoreError("study_session", "save", "failed to encode session", err)
	}

	_, err = s.db.NamedExecContext(ctx, `
		INSERT INTO study_sessions (
			id, kind, start_time, end_time, words, words_studied,
			correct_answers, total_questions, is_completed
		) VALUES (
			:id, :kind, :start_time, :end_time, :words, :words_studied,
			:correct_answers, :total_questions, :is_completed
		)
	`, row)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", store.ErrSessionExists, session.ID)
		}
		return s.fail(ctx, "save", "failed to insert session", err)
	}
	return nil
}

func (s *SessionStore) Update(ctx context.Context, session *domain.StudySession) error {
	if err := session.Validate(); err != nil {
		return store.NewStoreError("study_session", "update", "invalid session", err)
	}
	row, err := newSessionRow(session)
	if err != nil {
		return store.NewStoreError("study_session", "update", "failed to encode session", err)
	}

	result, err := s.db.NamedExecContext(ctx, `
		UPDATE study_sessions
		SET end_time = :end_time, words_studied = :words_studied,
			correct_answers = :correct_answers, is_completed = :is_completed
		WHERE id = :id
	`, row)
	if err != nil {
		return s.fail(ctx, "update", "failed to update session", err)
	}
	return checkRowsAffected(result, store.ErrSessionNotFound)
}

func (s *SessionStore) FindRecent(ctx context.Context, limit int) ([]*domain.StudySession, error) {
	if limit <= 0 {
		return []*domain.StudySession{}, nil
	}

	var rows []sessionRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT * FROM study_sessions ORDER BY start_time DESC LIMIT ?`, limit)
	if err != nil {
		return nil, s.fail(ctx, "find_recent", "failed to query sessions", err)
	}

	sessions := make([]*domain.StudySession, 0, len(rows))
	for _, r := range rows {
		sess, err := r.toDomain()
		if err != nil {
			return nil, s.fail(ctx, "find_recent", "failed to decode session", err)
		}
		sessions = append(sessions, sess)
	}
	return sessions, nil
}

func (s *SessionStore) fail(ctx context.Context, op, msg string, err error) error {
	logger.FromContextOrDefault(ctx, s.logger).Error(msg,
		slog.String("operation", op),
		slog.String("error", err.Error()))
	return store.NewStoreError("study_session", op, msg, mapError(err))
}
