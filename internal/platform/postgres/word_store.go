package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/lexis/internal/domain"
	"github.com/phrazzld/lexis/internal/platform/logger"
	"github.com/phrazzld/lexis/internal/store"
)

const wordColumns = `headword, translation, pronunciation, part_of_speech, example,
	example_translation, difficulty, learning_count, correct_count, is_learned,
	is_favorited, last_study_date, created_at`

const upsertWordQuery = `
	INSERT INTO words (` + wordColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	ON CONFLICT (headword) DO UPDATE SET
		translation = EXCLUDED.translation,
		pronunciation = EXCLUDED.pronunciation,
		part_of_speech = EXCLUDED.part_of_speech,
		example = EXCLUDED.example,
		example_translation = EXCLUDED.example_translation,
		difficulty = EXCLUDED.difficulty,
		learning_count = EXCLUDED.learning_count,
		correct_count = EXCLUDED.correct_count,
		is_learned = EXCLUDED.is_learned,
		is_favorited = EXCLUDED.is_favorited,
		last_study_date = EXCLUDED.last_study_date
`

// WordStore implements store.WordStore on PostgreSQL.
type WordStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.WordStore = (*WordStore)(nil)

// NewWordStore creates a WordStore over db, which may be a *sql.DB or a *sql.Tx.
func NewWordStore(db store.DBTX, log *slog.Logger) *WordStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &WordStore{
		db:     db,
		logger: log.With(slog.String("component", "postgres_word_store")),
	}
}

// WithTx returns a WordStore that runs every statement in tx.
func (s *WordStore) WithTx(tx *sql.Tx) *WordStore {
	return &WordStore{db: tx, logger: s.logger}
}

func (s *WordStore) LoadAll(ctx context.Context) ([]*domain.Word, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+wordColumns+` FROM words ORDER BY headword`)
	if err != nil {
		return nil, s.fail(ctx, "load_all", "failed to query words", err)
	}
	words, err := scanWords(rows)
	if err != nil {
		return nil, s.fail(ctx, "load_all", "failed to read words", err)
	}
	return words, nil
}

// Save upserts the word by headword.
func (s *WordStore) Save(ctx context.Context, word *domain.Word) error {
	if err := word.Validate(); err != nil {
		return store.NewStoreError("word", "save", "invalid word", err)
	}

	if _, err := s.db.ExecContext(ctx, upsertWordQuery, wordArgs(word)...); err != nil {
		return s.fail(ctx, "save", "failed to save word "+word.Headword, err)
	}
	return nil
}

// SaveBatch upserts every word in one transaction. When the store already
// runs inside a transaction the statements join it.
func (s *WordStore) SaveBatch(ctx context.Context, words []*domain.Word) error {
	if len(words) == 0 {
		return nil
	}
	for _, w := range words {
		if err := w.Validate(); err != nil {
			return store.NewStoreError("word", "save_batch", "invalid word "+w.Headword, err)
		}
	}

	db, ok := s.db.(*sql.DB)
	if !ok {
		return s.saveAll(ctx, words)
	}
	return store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		return s.WithTx(tx).saveAll(ctx, words)
	})
}

func (s *WordStore) saveAll(ctx context.Context, words []*domain.Word) error {
	for _, w := range words {
		if _, err := s.db.ExecContext(ctx, upsertWordQuery, wordArgs(w)...); err != nil {
			return s.fail(ctx, "save_batch", "failed to save word "+w.Headword, err)
		}
	}
	return nil
}

func (s *WordStore) Delete(ctx context.Context, headword string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM words WHERE headword = $1`, headword)
	if err != nil {
		return s.fail(ctx, "delete", "failed to delete word", err)
	}
	return CheckRowsAffected(result, store.ErrWordNotFound)
}

func (s *WordStore) DeleteAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM words`); err != nil {
		return s.fail(ctx, "delete_all", "failed to delete words", err)
	}
	return nil
}

func (s *WordStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM words`).Scan(&n); err != nil {
		return 0, s.fail(ctx, "count", "failed to count words", err)
	}
	return n, nil
}

// Search matches query as a case-insensitive substring. LIKE wildcards in
// query are matched literally.
func (s *WordStore) Search(ctx context.Context, query string) ([]*domain.Word, error) {
	if query == "" {
		return s.LoadAll(ctx)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+wordColumns+`
		FROM words
		WHERE headword ILIKE $1 OR translation ILIKE $1 OR part_of_speech ILIKE $1
		ORDER BY headword
	`, store.LikePattern(query))
	if err != nil {
		return nil, s.fail(ctx, "search", "failed to search words", err)
	}
	words, err := scanWords(rows)
	if err != nil {
		return nil, s.fail(ctx, "search", "failed to read words", err)
	}
	return words, nil
}

func (s *WordStore) fail(ctx context.Context, op, msg string, err error) error {
	logger.FromContextOrDefault(ctx, s.logger).Error(msg,
		slog.String("operation", op),
		slog.String("error", err.Error()))
	return store.NewStoreError("word", op, msg, MapError(err))
}

func wordArgs(w *domain.Word) []any {
	return []any{
		w.Headword,
		w.Translation,
		w.Pronunciation,
		w.PartOfSpeech,
		w.Example,
		w.ExampleTranslation,
		int(w.Difficulty),
		w.LearningCount,
		w.CorrectCount,
		w.IsLearned,
		w.IsFavorited,
		nullTime(w.LastStudyDate),
		w.CreatedAt,
	}
}

func scanWords(rows *sql.Rows) ([]*domain.Word, error) {
	defer func() { _ = rows.Close() }()

	var words []*domain.Word
	for rows.Next() {
		var (
			w          domain.Word
			difficulty int
			lastStudy  sql.NullTime
		)
		if err := rows.Scan(
			&w.Headword,
			&w.Translation,
			&w.Pronunciation,
			&w.PartOfSpeech,
			&w.Example,
			&w.ExampleTranslation,
			&difficulty,
			&w.LearningCount,
			&w.CorrectCount,
			&w.IsLearned,
			&w.IsFavorited,
			&lastStudy,
			&w.CreatedAt,
		); err != nil {
			return nil, err
		}
		w.Difficulty = domain.Difficulty(difficulty)
		w.LastStudyDate = timePtr(lastStudy)
		words = append(words, &w)
	}
	return words, rows.Err()
}
