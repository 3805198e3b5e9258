// Package selection builds the ordered word queue of a study session and the
// multiple-choice options of quiz questions. Selection never mutates words.
package selection

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/phrazzld/lexis/internal/domain"
	"github.com/phrazzld/lexis/internal/domain/mastery"
)

// Selector draws session words at random according to a Config.
type Selector struct {
	policy mastery.Policy
	cfg    Config
	now    func() time.Time

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// Option customizes a Selector.
type Option func(*Selector)

// WithRand sets the random source, for deterministic selection.
func WithRand(rng *rand.Rand) Option {
	return func(s *Selector) { s.rng = rng }
}

// WithClock sets the time source used for review eligibility.
func WithClock(now func() time.Time) Option {
	return func(s *Selector) { s.now = now }
}

// NewSelector creates a Selector. It fails if cfg is invalid.
func NewSelector(policy mastery.Policy, cfg Config, opts ...Option) (*Selector, error) {
	if policy == nil {
		return nil, fmt.Errorf("%w: policy cannot be nil", domain.ErrValidation)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Selector{
		policy: policy,
		cfg:    cfg,
		now:    time.Now,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Config returns the session sizes in use.
func (s *Selector) Config() Config {
	return s.cfg
}

// SelectLearning draws up to NewWordTarget unlearned words and up to
// ReviewWordTarget words due for review, then shuffles them together.
func (s *Selector) SelectLearning(words []*domain.Word) ([]*domain.Word, error) {
	if len(words) == 0 {
		return nil, domain.ErrEmptySelection
	}

	now := s.now()
	var unlearned, due []*domain.Word
	for _, w := range words {
		switch {
		case !w.IsLearned:
			unlearned = append(unlearned, w)
		case s.policy.IsDueForReview(w, now):
			due = append(due, w)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	picked := append(s.sample(unlearned, s.cfg.NewWordTarget), s.sample(due, s.cfg.ReviewWordTarget)...)
	if len(picked) == 0 {
		return nil, fmt.Errorf("%w: no unlearned or due words", domain.ErrEmptySelection)
	}
	s.shuffle(picked)
	return picked, nil
}

// SelectReview draws up to ReviewSessionSize words due for review.
func (s *Selector) SelectReview(words []*domain.Word) ([]*domain.Word, error) {
	if len(words) == 0 {
		return nil, domain.ErrEmptySelection
	}

	now := s.now()
	var due []*domain.Word
	for _, w := range words {
		if s.policy.IsDueForReview(w, now) {
			due = append(due, w)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	picked := s.sample(due, s.cfg.ReviewSessionSize)
	if len(picked) == 0 {
		return nil, fmt.Errorf("%w: no words due for review", domain.ErrEmptySelection)
	}
	return picked, nil
}

// SelectQuiz draws QuizSize learned words. When fewer than QuizSize words
// are learned it draws min(QuizSize, len(words)) from all words instead.
func (s *Selector) SelectQuiz(words []*domain.Word) ([]*domain.Word, error) {
	if len(words) == 0 {
		return nil, domain.ErrEmptySelection
	}

	pool := make([]*domain.Word, 0, len(words))
	for _, w := range words {
		if w.IsLearned {
			pool = append(pool, w)
		}
	}
	if len(pool) < s.cfg.QuizSize {
		pool = words
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sample(pool, s.cfg.QuizSize), nil
}

// QuizOptions returns the target's translation plus up to QuizOptionCount-1
// translations of other words, in random order. Distractors are drawn from
// distinct words but their translations are not deduplicated.
func (s *Selector) QuizOptions(target *domain.Word, words []*domain.Word) ([]string, error) {
	if target == nil {
		return nil, fmt.Errorf("%w: quiz target cannot be nil", domain.ErrValidation)
	}

	others := make([]*domain.Word, 0, len(words))
	for _, w := range words {
		if w.Headword != target.Headword {
			others = append(others, w)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	distractors := s.sample(others, s.cfg.QuizOptionCount-1)
	options := make([]string, 0, len(distractors)+1)
	options = append(options, target.Translation)
	for _, w := range distractors {
		options = append(options, w.Translation)
	}
	s.rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })
	return options, nil
}

// sample draws min(n, len(pool)) distinct elements uniformly at random
// without modifying pool. Callers hold s.mu.
func (s *Selector) sample(pool []*domain.Word, n int) []*domain.Word {
	if n > len(pool) {
		n = len(pool)
	}
	if n <= 0 {
		return nil
	}

	scratch := make([]*domain.Word, len(pool))
	copy(scratch, pool)
	for i := 0; i < n; i++ {
		j := i + s.rng.Intn(len(scratch)-i)
		scratch[i], scratch[j] = scratch[j], scratch[i]
	}
	return scratch[:n]
}

func (s *Selector) shuffle(words []*domain.Word) {
	s.rng.Shuffle(len(words), func(i, j int) { words[i], words[j] = words[j], words[i] })
}
