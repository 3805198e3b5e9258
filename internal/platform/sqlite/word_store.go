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

const upsertWordQuery = `
	INSERT INTO words (
		headword, translation, pronunciation, part_of_speech, example,
		example_translation, difficulty, learning_count, correct_count,
		is_learned, is_favorited, last_study_date, created_at
	) VALUES (
		:headword, :translation, :pronunciation, :part_of_speech, :example,
		:example_translation, :difficulty, :learning_count, :correct_count,
		:is_learned, :is_favorited, :last_study_date, :created_at
	)
	ON CONFLICT (headword) DO UPDATE SET
		translation = excluded.translation,
		pronunciation = excluded.pronunciation,
		part_of_speech = excluded.part_of_speech,
		example = excluded.example,
		example_translation = excluded.example_translation,
		difficulty = excluded.difficulty,
		learning_count = excluded.learning_count,
		correct_count = excluded.correct_count,
		is_learned = excluded.is_learned,
		is_favorited = excluded.is_favorited,
		last_study_date = excluded.last_study_date
`

// WordStore implements store.WordStore on SQLite.
type WordStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

var _ store.WordStore = (*WordStore)(nil)

// NewWordStore creates a WordStore over db.
func NewWordStore(db *sqlx.DB, log *slog.Logger) *WordStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &WordStore{db: db, logger: log.With(slog.String("component", "sqlite_word_store"))}
}

func (s *WordStore) LoadAll(ctx context.Context) ([]*domain.Word, error) {
	var rows []wordRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT * FROM words ORDER BY headword`); err != nil {
		return nil, s.fail(ctx, "load_all", "failed to load words", err)
	}
	return toWords(rows), nil
}

func (s *WordStore) Save(ctx context.Context, word *domain.Word) error {
	if err := word.Validate(); err != nil {
		return store.NewStoreError("word", "save", "invalid word", err)
	}
	if _, err := s.db.NamedExecContext(ctx, upsertWordQuery, newWordRow(word)); err != nil {
		return s.fail(ctx, "save", "failed to save word "+word.Headword, err)
	}
	return nil
}

// SaveBatch upserts every word in a single transaction.
func (s *WordStore) SaveBatch(ctx context.Context, words []*domain.Word) error {
	if len(words) == 0 {
		return nil
	}
	for _, w := range words {
		if err := w.Validate(); err != nil {
			return store.NewStoreError("word", "save_batch", "invalid word "+w.Headword, err)
		}
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", store.ErrTransactionFailed, err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareNamedContext(ctx, upsertWordQuery)
	if err != nil {
		return s.fail(ctx, "save_batch", "failed to prepare upsert", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, w := range words {
		if _, err := stmt.ExecContext(ctx, newWordRow(w)); err != nil {
			return s.fail(ctx, "save_batch", "failed to save word "+w.Headword, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", store.ErrTransactionFailed, err)
	}
	return nil
}

func (s *WordStore) Delete(ctx context.Context, headword string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM words WHERE headword = ?`, headword)
	if err != nil {
		return s.fail(ctx, "delete", "failed to delete word", err)
	}
	return checkRowsAffected(result, store.ErrWordNotFound)
}

func (s *WordStore) DeleteAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM words`); err != nil {
		return s.fail(ctx, "delete_all", "failed to delete words", err)
	}
	return nil
}

func (s *WordStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM words`); err != nil {
		return 0, s.fail(ctx, "count", "failed to count words", err)
	}
	return n, nil
}

// Search relies on SQLite's LIKE, which folds ASCII case only.
func (s *WordStore) Search(ctx context.Context, query string) ([]*domain.Word, error) {
	if query == "" {
		return s.LoadAll(ctx)
	}

	var rows []wordRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT * FROM words
		WHERE headword LIKE ?1 ESCAPE '\'
			OR translation LIKE ?1 ESCAPE '\'
			OR part_of_speech LIKE ?1 ESCAPE '\'
		ORDER BY headword
	`, store.LikePattern(query))
	if err != nil {
		return nil, s.fail(ctx, "search", "failed to search words", err)
	}
	return toWords(rows), nil
}

func (s *WordStore) fail(ctx context.Context, op, msg string, err error) error {
	logger.FromContextOrDefault(ctx, s.logger).Error(msg,
		slog.String("operation", op),
		slog.String("error", err.Error()))
	return store.NewStoreError("word", op, msg, mapError(err))
}

func toWords(rows []wordRow) []*domain.Word {
	words := make([]*domain.Word, len(rows))
	for i, r := range rows {
		words[i] = r.toDomain()
	}
	return words
}
