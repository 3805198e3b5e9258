package progress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/phrazzld/lexis/internal/domain"
	"github.com/phrazzld/lexis/internal/events"
	"github.com/phrazzld/lexis/internal/platform/logger"
	"github.com/phrazzld/lexis/internal/store"
)

// Aggregator owns the singleton progress record. It implements
// events.EventHandler and folds every session.completed event into progress.
type Aggregator struct {
	mu         sync.Mutex
	repo       store.ProgressStore
	emitter    events.EventEmitter
	loc        *time.Location
	dailyGoal  int
	weeklyGoal int
	now        func() time.Time
	logger     *slog.Logger
}

var _ events.EventHandler = (*Aggregator)(nil)

// Option customizes an Aggregator.
type Option func(*Aggregator)

// WithLocation sets the time zone in which calendar days are compared.
func WithLocation(loc *time.Location) Option {
	return func(a *Aggregator) { a.loc = loc }
}

// WithGoals sets the goals used when the progress record is first created.
func WithGoals(daily, weekly int) Option {
	return func(a *Aggregator) { a.dailyGoal, a.weeklyGoal = daily, weekly }
}

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.now = now }
}

// WithEmitter publishes progress.updated events.
func WithEmitter(emitter events.EventEmitter) Option {
	return func(a *Aggregator) { a.emitter = emitter }
}

// NewAggregator creates an Aggregator over repo.
func NewAggregator(repo store.ProgressStore, log *slog.Logger, opts ...Option) *Aggregator {
	if repo == nil {
		panic("repo cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	a := &Aggregator{
		repo:    repo,
		emitter: events.NopEmitter{},
		loc:     time.Local,
		now:     time.Now,
		logger:  log.With(slog.String("component", "progress_aggregator")),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Location returns the time zone used for calendar-day comparisons.
func (a *Aggregator) Location() *time.Location {
	return a.loc
}

// Current returns the progress record, creating it on first use.
func (a *Aggregator) Current(ctx context.Context) (*domain.UserProgress, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loadOrCreate(ctx)
}

// RecordSessionCompletion adds a sealed session to the progress record and
// persists the result.
func (a *Aggregator) RecordSessionCompletion(ctx context.Context, s *domain.StudySession) (*domain.UserProgress, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	current, err := a.loadOrCreate(ctx)
	if err != nil {
		return nil, err
	}

	updated, err := RecordSessionCompletion(current, s, a.loc)
	if err != nil {
		return nil, err
	}

	if err := a.repo.Update(ctx, updated); err != nil {
		return nil, domain.NewRepositoryError("update progress", err)
	}

	logger.FromContextOrDefault(ctx, a.logger).Info("progress updated",
		slog.String("session_id", s.ID.String()),
		slog.Int("total_words_learned", updated.TotalWordsLearned),
		slog.Int("current_streak", updated.CurrentStreak),
		slog.Int("level", updated.Level))

	return updated, a.emitUpdated(ctx, s, updated)
}

// Reset replaces the progress record with a fresh one, keeping its identity
// and goals.
func (a *Aggregator) Reset(ctx context.Context) (*domain.UserProgress, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	current, err := a.loadOrCreate(ctx)
	if err != nil {
		return nil, err
	}

	fresh := domain.NewUserProgress(current.DailyGoal, current.WeeklyGoal, a.now())
	fresh.ID = current.ID
	fresh.CreatedAt = current.CreatedAt

	if err := a.repo.Update(ctx, fresh); err != nil {
		return nil, domain.NewRepositoryError("reset progress", err)
	}
	logger.FromContextOrDefault(ctx, a.logger).Info("progress reset")
	return fresh, nil
}

// HandleEvent folds session.completed events into progress. Other event
// types are ignored.
func (a *Aggregator) HandleEvent(ctx context.Context, event *events.Event) error {
	if event.Type != events.SessionCompleted {
		return nil
	}

	var s domain.StudySession
	if err := event.UnmarshalPayload(&s); err != nil {
		return fmt.Errorf("failed to decode completed session: %w", err)
	}

	_, err := a.RecordSessionCompletion(ctx, &s)
	return err
}

// loadOrCreate must be called with a.mu held.
func (a *Aggregator) loadOrCreate(ctx context.Context) (*domain.UserProgress, error) {
	current, err := a.repo.LoadCurrent(ctx)
	if err == nil {
		return current, nil
	}
	if !errors.Is(err, store.ErrProgressNotFound) {
		return nil, domain.NewRepositoryError("load progress", err)
	}

	created := domain.NewUserProgress(a.dailyGoal, a.weeklyGoal, a.now())
	if err := a.repo.Save(ctx, created); err != nil {
		return nil, domain.NewRepositoryError("create progress", err)
	}

	logger.FromContextOrDefault(ctx, a.logger).Info("created progress record",
		slog.String("progress_id", created.ID.String()))
	return created, nil
}

func (a *Aggregator) emitUpdated(ctx context.Context, s *domain.StudySession, p *domain.UserProgress) error {
	event, err := events.NewEvent(events.ProgressUpdated, s.ID, p)
	if err != nil {
		return fmt.Errorf("failed to build progress event: %w", err)
	}
	return a.emitter.EmitEvent(ctx, event)
}
