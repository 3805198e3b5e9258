// Package wordstore holds the in-memory corpus of vocabulary words. The
// memory copy is authoritative during a process lifetime; every mutation is
// written through to a store.WordStore.
package wordstore

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/phrazzld/lexis/internal/domain"
	"github.com/phrazzld/lexis/internal/domain/mastery"
	"github.com/phrazzld/lexis/internal/platform/logger"
	"github.com/phrazzld/lexis/internal/store"
)

// Store owns every Word. Callers only ever receive copies.
type Store struct {
	mu     sync.RWMutex
	words  map[string]*domain.Word
	repo   store.WordStore
	policy mastery.Policy
	logger *slog.Logger
}

// New creates an empty Store. Call Load to populate it from repo.
func New(repo store.WordStore, policy mastery.Policy, log *slog.Logger) *Store {
	if repo == nil {
		panic("repo cannot be nil")
	}
	if policy == nil {
		panic("policy cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		words:  make(map[string]*domain.Word),
		repo:   repo,
		policy: policy,
		logger: log.With(slog.String("component", "word_store")),
	}
}

// Load replaces the in-memory corpus with the repository contents.
// Invalid rows are skipped and logged.
func (s *Store) Load(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	words, err := s.repo.LoadAll(ctx)
	if err != nil {
		return domain.NewRepositoryError("load words", err)
	}

	loaded := make(map[string]*domain.Word, len(words))
	for _, w := range words {
		if err := w.Validate(); err != nil {
			log.Warn("skipping invalid stored word",
				slog.String("headword", w.Headword),
				slog.String("error", err.Error()))
			continue
		}
		loaded[w.Headword] = w.Clone()
	}

	s.mu.Lock()
	s.words = loaded
	s.mu.Unlock()

	log.Info("loaded words", slog.Int("count", len(loaded)))

	if n, err := s.repo.Count(ctx); err != nil {
		log.Warn("failed to count stored words", slog.String("error", err.Error()))
	} else if n != len(words) {
		log.Warn("stored word count differs from loaded words",
			slog.Int("stored", n),
			slog.Int("loaded", len(words)))
	}
	return nil
}

// Add inserts a new word. The headword must not already exist.
func (s *Store) Add(ctx context.Context, w *domain.Word) error {
	return s.AddBatch(ctx, []*domain.Word{w})
}

// AddBatch inserts several new words at once. Nothing is added if any word
// is invalid or duplicated, in the batch or in the store.
func (s *Store) AddBatch(ctx context.Context, words []*domain.Word) error {
	if len(words) == 0 {
		return domain.ErrEmptyWordList
	}

	s.mu.Lock()
	seen := make(map[string]struct{}, len(words))
	batch := make([]*domain.Word, 0, len(words))
	for _, w := range words {
		if w == nil {
			s.mu.Unlock()
			return fmt.Errorf("%w: nil word", domain.ErrValidation)
		}
		if err := w.Validate(); err != nil {
			s.mu.Unlock()
			return fmt.Errorf("word %q: %w", w.Headword, err)
		}
		_, inBatch := seen[w.Headword]
		_, inStore := s.words[w.Headword]
		if inBatch || inStore {
			s.mu.Unlock()
			return fmt.Errorf("%w: %q", domain.ErrDuplicateWord, w.Headword)
		}
		seen[w.Headword] = struct{}{}
		c := w.Clone()
		if c.CreatedAt.IsZero() {
			c.CreatedAt = time.Now().UTC()
		}
		batch = append(batch, c)
	}
	for _, w := range batch {
		s.words[w.Headword] = w
	}
	s.mu.Unlock()

	persist := make([]*domain.Word, len(batch))
	for i, w := range batch {
		persist[i] = w.Clone()
	}
	if err := s.repo.SaveBatch(ctx, persist); err != nil {
		return domain.NewRepositoryError("save words", err)
	}
	return nil
}

// Get returns a copy of the word with the given headword.
func (s *Store) Get(headword string) (*domain.Word, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.words[headword]
	if !ok {
		return nil, false
	}
	return w.Clone(), true
}

// All returns copies of every word ordered by headword.
func (s *Store) All() []*domain.Word {
	return s.filter(func(*domain.Word) bool { return true })
}

// Count returns the number of words held in memory.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}

// Search returns words whose headword, translation or part of speech
// contains query, ignoring case.
func (s *Store) Search(query string) []*domain.Word {
	return s.filter(func(w *domain.Word) bool { return w.Matches(query) })
}

// Learned returns every mastered word.
func (s *Store) Learned() []*domain.Word {
	return s.filter(func(w *domain.Word) bool { return w.IsLearned })
}

// Favorites returns every favorited word.
func (s *Store) Favorites() []*domain.Word {
	return s.filter(func(w *domain.Word) bool { return w.IsFavorited })
}

// Difficult returns studied words with low accuracy.
func (s *Store) Difficult() []*domain.Word {
	return s.filter(s.policy.IsDifficult)
}

// DueForReview returns learned words due at now.
func (s *Store) DueForReview(now time.Time) []*domain.Word {
	return s.filter(func(w *domain.Word) bool { return s.policy.IsDueForReview(w, now) })
}

// Update replaces the stored statistics of an existing word. The memory copy
// is updated first; a repository failure is returned as a RepositoryError
// but the memory copy keeps the new value.
func (s *Store) Update(ctx context.Context, w *domain.Word) error {
	if err := w.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	if _, ok := s.words[w.Headword]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %q", domain.ErrUnknownWord, w.Headword)
	}
	s.words[w.Headword] = w.Clone()
	s.mu.Unlock()

	if err := s.repo.Save(ctx, w.Clone()); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to persist word",
			slog.String("headword", w.Headword),
			slog.String("error", err.Error()))
		return domain.NewRepositoryError("save word", err)
	}
	return nil
}

// SetFavorite flags or unflags a word.
func (s *Store) SetFavorite(ctx context.Context, headword string, favorited bool) (*domain.Word, error) {
	w, ok := s.Get(headword)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownWord, headword)
	}
	w.IsFavorited = favorited
	if err := s.Update(ctx, w); err != nil {
		return w, err
	}
	return w, nil
}

// Delete removes one word from memory and from the repository.
func (s *Store) Delete(ctx context.Context, headword string) error {
	s.mu.Lock()
	if _, ok := s.words[headword]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %q", domain.ErrUnknownWord, headword)
	}
	delete(s.words, headword)
	s.mu.Unlock()

	if err := s.repo.Delete(ctx, headword); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete word",
			slog.String("headword", headword),
			slog.String("error", err.Error()))
		return domain.NewRepositoryError("delete word", err)
	}
	return nil
}

// Reset deletes every word from memory and from the repository.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	removed := len(s.words)
	s.words = make(map[string]*domain.Word)
	s.mu.Unlock()

	logger.FromContextOrDefault(ctx, s.logger).Info("reset word store", slog.Int("removed", removed))

	if err := s.repo.DeleteAll(ctx); err != nil {
		return domain.NewRepositoryError("delete all words", err)
	}
	return nil
}

func (s *Store) filter(keep func(*domain.Word) bool) []*domain.Word {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Word, 0)
	for _, w := range s.words {
		if keep(w) {
			out = append(out, w.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Headword < out[j].Headword })
	return out
}
