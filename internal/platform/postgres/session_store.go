package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/phrazzld/lexis/internal/domain"
	"github.com/phrazzld/lexis/internal/platform/logger"
	"github.com/phrazzld/lexis/internal/store"
)

const sessionColumns = `id, kind, start_time, end_time, words, words_studied,
	correct_answers, total_questions, is_completed`

// SessionStore implements store.SessionStore on PostgreSQL. The word list
// is stored as a JSONB array.
type SessionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.SessionStore = (*SessionStore)(nil)

// NewSessionStore creates a SessionStore over db.
func NewSessionStore(db store.DBTX, log *slog.Logger) *SessionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &SessionStore{
		db:     db,
		logger: log.With(slog.String("component", "postgres_session_store")),
	}
}

func (s *SessionStore) Save(ctx context.Context, session *domain.StudySession) error {
	if err := session.Validate(); err != nil {
		return store.NewStoreError("study_session", "save", "invalid session", err)
	}
	words, err := json.Marshal(session.Words)
	if err != nil {
		return store.NewStoreError("study_session", "save", "failed to encode words", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO study_sessions (`+sessionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		session.ID,
		string(session.Kind),
		session.StartTime,
		nullTime(session.EndTime),
		words,
		session.WordsStudied,
		session.CorrectAnswers,
		session.TotalQuestions,
		session.IsCompleted,
	)
	if err != nil {
		if IsUniqueViolation(err) {
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

	result, err := s.db.ExecContext(ctx, `
		UPDATE study_sessions
		SET end_time = $1, words_studied = $2, correct_answers = $3, is_completed = $4
		WHERE id = $5
	`,
		nullTime(session.EndTime),
		session.WordsStudied,
		session.CorrectAnswers,
		session.IsCompleted,
		session.ID,
	)
	if err != nil {
		return s.fail(ctx, "update", "failed to update session", err)
	}
	return CheckRowsAffected(result, store.ErrSessionNotFound)
}

func (s *SessionStore) FindRecent(ctx context.Context, limit int) ([]*domain.StudySession, error) {
	if limit <= 0 {
		return []*domain.StudySession{}, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+sessionColumns+`
		FROM study_sessions
		ORDER BY start_time DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, s.fail(ctx, "find_recent", "failed to query sessions", err)
	}
	defer func() { _ = rows.Close() }()

	sessions := make([]*domain.StudySession, 0)
	for rows.Next() {
		var (
			sess    domain.StudySession
			kind    string
			endTime sql.NullTime
			words   []byte
		)
		if err := rows.Scan(
			&sess.ID,
			&kind,
			&sess.StartTime,
			&endTime,
			&words,
			&sess.WordsStudied,
			&sess.CorrectAnswers,
			&sess.TotalQuestions,
			&sess.IsCompleted,
		); err != nil {
			return nil, s.fail(ctx, "find_recent", "failed to scan session", err)
		}
		if err := json.Unmarshal(words, &sess.Words); err != nil {
			return nil, s.fail(ctx, "find_recent", "failed to decode session words", err)
		}
		sess.Kind = domain.SessionKind(kind)
		sess.EndTime = timePtr(endTime)
		sessions = append(sessions, &sess)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail(ctx, "find_recent", "failed to read sessions", err)
	}
	return sessions, nil
}

func (s *SessionStore) fail(ctx context.Context, op, msg string, err error) error {
	logger.FromContextOrDefault(ctx, s.logger).Error(msg,
		slog.String("operation", op),
		slog.String("error", err.Error()))
	return store.NewStoreError("study_session", op, msg, MapError(err))
}
