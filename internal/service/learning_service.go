package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/phrazzld/lexis/internal/domain"
	"github.com/phrazzld/lexis/internal/platform/logger"
	"github.com/phrazzld/lexis/internal/progress"
	"github.com/phrazzld/lexis/internal/selection"
	"github.com/phrazzld/lexis/internal/session"
	"github.com/phrazzld/lexis/internal/store"
	"github.com/phrazzld/lexis/internal/wordstore"
)

// DefaultHistoryLimit bounds the session history read for achievements and
// recent-session listings when no limit is configured.
const DefaultHistoryLimit = 100

// SessionView is a snapshot of the runner for presentation.
type SessionView struct {
	State       session.State        `json:"state"`
	Session     *domain.StudySession `json:"session,omitempty"`
	CurrentWord *domain.Word         `json:"current_word,omitempty"`
	Position    int                  `json:"position"`
	Total       int                  `json:"total"`
}

// QuizResult is the outcome of a multiple-choice answer.
type QuizResult struct {
	*session.AnswerResult
	Correct  bool   `json:"correct"`
	Expected string `json:"expected"`
}

// LearningService exposes the study workflow to delivery mechanisms.
//
// Operations that advance a session return their result together with a
// non-nil error when persistence or event delivery failed afterwards. The
// in-memory state has already moved on in that case and the result is valid.
type LearningService interface {
	// StartSession selects words for kind and starts a session over them,
	// ending any running session first.
	//
	// Returns domain.ErrEmptySelection when no word qualifies and
	// domain.ErrInvalidSessionKind for an unknown kind.
	StartSession(ctx context.Context, kind domain.SessionKind) (*SessionView, error)

	// CurrentSession describes the runner. It never fails before the first
	// session; the view is simply idle.
	CurrentSession(ctx context.Context) *SessionView

	// QuizOptions returns the shuffled answer choices for the current word.
	QuizOptions(ctx context.Context) ([]string, error)

	SubmitAnswer(ctx context.Context, headword string, correct bool) (*session.AnswerResult, error)

	// SubmitQuizAnswer grades choice against the word's translation and
	// records the outcome as a regular answer.
	SubmitQuizAnswer(ctx context.Context, headword, choice string) (*QuizResult, error)

	SkipWord(ctx context.Context) (*SessionView, error)
	PauseSession(ctx context.Context) (*SessionView, error)
	ResumeSession(ctx context.Context) (*SessionView, error)
	EndSession(ctx context.Context) (*domain.StudySession, error)
	Statistics(ctx context.Context) session.Statistics

	// RecentSessions returns persisted sessions, newest first.
	RecentSessions(ctx context.Context, limit int) ([]*domain.StudySession, error)

	SearchWords(ctx context.Context, query string) []*domain.Word
	AddWords(ctx context.Context, words []*domain.Word) error
	SetFavorite(ctx context.Context, headword string, favorited bool) (*domain.Word, error)
	DifficultWords(ctx context.Context) []*domain.Word
	DueWords(ctx context.Context) []*domain.Word

	// DeleteWord removes one word. Words of an active or paused session
	// cannot be deleted.
	DeleteWord(ctx context.Context, headword string) error

	// ResetWords ends any running session and deletes every word.
	ResetWords(ctx context.Context) error

	Progress(ctx context.Context) (*domain.UserProgress, error)
	Achievements(ctx context.Context) ([]progress.Achievement, error)
	ResetProgress(ctx context.Context) (*domain.UserProgress, error)
}

// Option customizes the learning service.
type Option func(*learningService)

// WithClock sets the time source used for review eligibility and
// achievements.
func WithClock(now func() time.Time) Option {
	return func(s *learningService) { s.now = now }
}

// WithHistoryLimit bounds how many sessions are read from the session store.
func WithHistoryLimit(limit int) Option {
	return func(s *learningService) {
		if limit > 0 {
			s.historyLimit = limit
		}
	}
}

type learningService struct {
	mu           sync.Mutex
	words        *wordstore.Store
	selector     *selection.Selector
	runner       *session.Runner
	sessions     store.SessionStore
	aggregator   *progress.Aggregator
	now          func() time.Time
	historyLimit int
	logger       *slog.Logger
}

var _ LearningService = (*learningService)(nil)

// NewLearningService wires the scheduler components together.
// It panics if any collaborator is nil.
func NewLearningService(
	words *wordstore.Store,
	selector *selection.Selector,
	runner *session.Runner,
	sessions store.SessionStore,
	aggregator *progress.Aggregator,
	log *slog.Logger,
	opts ...Option,
) LearningService {
	if words == nil {
		panic("words cannot be nil")
	}
	if selector == nil {
		panic("selector cannot be nil")
	}
	if runner == nil {
		panic("runner cannot be nil")
	}
	if sessions == nil {
		panic("sessions cannot be nil")
	}
	if aggregator == nil {
		panic("aggregator cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	s := &learningService{
		words:        words,
		selector:     selector,
		runner:       runner,
		sessions:     sessions,
		aggregator:   aggregator,
		now:          time.Now,
		historyLimit: DefaultHistoryLimit,
		logger:       log.With(slog.String("component", "learning_service")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *learningService) StartSession(ctx context.Context, kind domain.SessionKind) (*SessionView, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidSessionKind, kind)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	corpus := s.words.All()

	var (
		selected []*domain.Word
		err      error
	)
	switch kind {
	case domain.SessionKindLearning:
		selected, err = s.selector.SelectLearning(corpus)
	case domain.SessionKindReview:
		selected, err = s.selector.SelectReview(corpus)
	case domain.SessionKindQuiz:
		selected, err = s.selector.SelectQuiz(corpus)
	}
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Debug("no words selected",
			slog.String("kind", string(kind)),
			slog.Int("corpus_size", len(corpus)))
		return nil, err
	}

	started, err := s.runner.Start(ctx, kind, selected)
	if started == nil {
		return nil, err
	}
	return s.view(), err
}

func (s *learningService) CurrentSession(ctx context.Context) *SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

func (s *learningService) QuizOptions(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.runner.CurrentWord()
	if !ok {
		return nil, ErrNoCurrentWord
	}
	return s.selector.QuizOptions(current, s.words.All())
}

func (s *learningService) SubmitAnswer(ctx context.Context, headword string, correct bool) (*session.AnswerResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runner.SubmitAnswer(ctx, headword, correct)
}

func (s *learningService) SubmitQuizAnswer(ctx context.Context, headword, choice string) (*QuizResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.words.Get(headword)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownWord, headword)
	}
	expected := strings.TrimSpace(w.Translation)
	correct := strings.TrimSpace(choice) == expected

	result, err := s.runner.SubmitAnswer(ctx, headword, correct)
	if result == nil {
		return nil, err
	}
	return &QuizResult{AnswerResult: result, Correct: correct, Expected: expected}, err
}

func (s *learningService) SkipWord(ctx context.Context) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.runner.SkipCurrentWord(ctx); err != nil {
		if errors.Is(err, domain.ErrData) {
			return nil, err
		}
		return s.view(), err
	}
	return s.view(), nil
}

func (s *learningService) PauseSession(ctx context.Context) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view(), s.runner.Pause(ctx)
}

func (s *learningService) ResumeSession(ctx context.Context) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view(), s.runner.Resume(ctx)
}

func (s *learningService) EndSession(ctx context.Context) (*domain.StudySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runner.End(ctx)
}

func (s *learningService) Statistics(ctx context.Context) session.Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runner.Statistics()
}

func (s *learningService) RecentSessions(ctx context.Context, limit int) ([]*domain.StudySession, error) {
	if limit <= 0 || limit > s.historyLimit {
		limit = s.historyLimit
	}

	sessions, err := s.sessions.FindRecent(ctx, limit)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to load recent sessions",
			slog.Int("limit", limit),
			slog.String("error", err.Error()))
		return nil, NewServiceError("recent_sessions", "failed to load sessions",
			domain.NewRepositoryError("find recent sessions", err))
	}
	return sessions, nil
}

func (s *learningService) SearchWords(ctx context.Context, query string) []*domain.Word {
	return s.words.Search(query)
}

func (s *learningService) AddWords(ctx context.Context, words []*domain.Word) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.words.AddBatch(ctx, words); err != nil {
		return err
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("words added", slog.Int("count", len(words)))
	return nil
}

func (s *learningService) SetFavorite(ctx context.Context, headword string, favorited bool) (*domain.Word, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.words.SetFavorite(ctx, headword, favorited)
	if errors.Is(err, domain.ErrUnknownWord) {
		return nil, fmt.Errorf("%w: %q", ErrWordNotFound, headword)
	}
	return w, err
}

func (s *learningService) DifficultWords(ctx context.Context) []*domain.Word {
	return s.words.Difficult()
}

func (s *learningService) DueWords(ctx context.Context) []*domain.Word {
	return s.words.DueForReview(s.now())
}

func (s *learningService) DeleteWord(ctx context.Context, headword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st := s.runner.State(); st == session.Active || st == session.Paused {
		if running := s.runner.Session(); running != nil && slices.Contains(running.Words, headword) {
			return fmt.Errorf("%w: %q", ErrWordInSession, headword)
		}
	}

	err := s.words.Delete(ctx, headword)
	if errors.Is(err, domain.ErrUnknownWord) {
		return fmt.Errorf("%w: %q", ErrWordNotFound, headword)
	}
	if err != nil {
		return err
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("word deleted", slog.String("headword", headword))
	return nil
}

func (s *learningService) ResetWords(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	if s.runner.State() == session.Active || s.runner.State() == session.Paused {
		_, err := s.runner.End(ctx)
		errs = append(errs, err)
	}
	errs = append(errs, s.words.Reset(ctx))
	return errors.Join(errs...)
}

func (s *learningService) Progress(ctx context.Context) (*domain.UserProgress, error) {
	return s.aggregator.Current(ctx)
}

func (s *learningService) Achievements(ctx context.Context) ([]progress.Achievement, error) {
	current, err := s.aggregator.Current(ctx)
	if err != nil {
		return nil, err
	}

	history, err := s.sessions.FindRecent(ctx, s.historyLimit)
	if err != nil {
		return nil, NewServiceError("achievements", "failed to load session history",
			domain.NewRepositoryError("find recent sessions", err))
	}

	return progress.Evaluate(current, history, s.now(), s.aggregator.Location()), nil
}

func (s *learningService) ResetProgress(ctx context.Context) (*domain.UserProgress, error) {
	return s.aggregator.Reset(ctx)
}

// view must be called with s.mu held.
func (s *learningService) view() *SessionView {
	v := &SessionView{
		State:   s.runner.State(),
		Session: s.runner.Session(),
	}
	v.Position, v.Total = s.runner.Progress()
	if w, ok := s.runner.CurrentWord(); ok {
		v.CurrentWord = w
	}
	if v.State == session.Completed && v.Session != nil {
		v.Position, v.Total = v.Session.TotalQuestions, v.Session.TotalQuestions
	}
	return v
}
