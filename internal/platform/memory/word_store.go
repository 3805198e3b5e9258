package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/phrazzld/lexis/internal/domain"
	"github.com/phrazzld/lexis/internal/store"
)

// WordStore implements store.WordStore over a map.
type WordStore struct {
	mu    sync.RWMutex
	words map[string]*domain.Word
}

var _ store.WordStore = (*WordStore)(nil)

// NewWordStore creates an empty WordStore seeded with words.
func NewWordStore(words ...*domain.Word) *WordStore {
	s := &WordStore{words: make(map[string]*domain.Word, len(words))}
	for _, w := range words {
		s.words[w.Headword] = w.Clone()
	}
	return s
}

func (s *WordStore) LoadAll(_ context.Context) ([]*domain.Word, error) {
	return s.collect(func(*domain.Word) bool { return true }), nil
}

func (s *WordStore) Save(_ context.Context, word *domain.Word) error {
	if err := word.Validate(); err != nil {
		return store.NewStoreError("word", "save", "invalid word", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.words[word.Headword] = word.Clone()
	return nil
}

func (s *WordStore) SaveBatch(_ context.Context, words []*domain.Word) error {
	for _, w := range words {
		if err := w.Validate(); err != nil {
			return store.NewStoreError("word", "save_batch", "invalid word "+w.Headword, err)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range words {
		s.words[w.Headword] = w.Clone()
	}
	return nil
}

func (s *WordStore) Delete(_ context.Context, headword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.words[headword]; !ok {
		return store.ErrWordNotFound
	}
	delete(s.words, headword)
	return nil
}

func (s *WordStore) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.words = make(map[string]*domain.Word)
	return nil
}

func (s *WordStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words), nil
}

func (s *WordStore) Search(_ context.Context, query string) ([]*domain.Word, error) {
	return s.collect(func(w *domain.Word) bool { return w.Matches(query) }), nil
}

func (s *WordStore) collect(keep func(*domain.Word) bool) []*domain.Word {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Word, 0, len(s.words))
	for _, w := range s.words {
		if keep(w) {
			out = append(out, w.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Headword < out[j].Headword })
	return out
}
