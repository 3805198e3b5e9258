// Package session drives a single study session: it walks the selected word
// queue, records answers through the mastery policy, and seals the session
// when the queue is exhausted or the learner stops.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/lexis/internal/domain"
	"github.com/phrazzld/lexis/internal/domain/mastery"
	"github.com/phrazzld/lexis/internal/events"
	"github.com/phrazzld/lexis/internal/platform/logger"
	"github.com/phrazzld/lexis/internal/store"
)

// WordSource is the part of the word store the runner reads and writes.
type WordSource interface {
	Get(headword string) (*domain.Word, bool)
	Update(ctx context.Context, w *domain.Word) error
}

// AnswerResult describes the effect of one submitted answer.
type AnswerResult struct {
	Word *domain.Word `json:"word"`
	// NewlyLearned is true when this answer mastered the word.
	NewlyLearned bool `json:"newly_learned"`
	// SessionCompleted is true when this answer exhausted the queue.
	SessionCompleted bool `json:"session_completed"`
}

// Runner is the session state machine. It holds at most one session at a
// time and is not safe for concurrent use; callers serialize access.
//
// Errors wrapping domain.ErrRepository or returned by event handlers do not
// roll back the transition: the in-memory state stays authoritative and the
// result values are valid alongside the error.
type Runner struct {
	words    WordSource
	policy   mastery.Policy
	sessions store.SessionStore
	emitter  events.EventEmitter
	now      func() time.Time
	logger   *slog.Logger

	state     State
	session   *domain.StudySession
	queue     []string
	cursor    int
	persisted bool
}

// RunnerOption customizes a Runner.
type RunnerOption func(*Runner)

// WithClock sets the time source.
func WithClock(now func() time.Time) RunnerOption {
	return func(r *Runner) { r.now = now }
}

// WithEmitter sets where lifecycle events are published.
func WithEmitter(emitter events.EventEmitter) RunnerOption {
	return func(r *Runner) { r.emitter = emitter }
}

// NewRunner creates an idle Runner.
func NewRunner(
	words WordSource,
	policy mastery.Policy,
	sessions store.SessionStore,
	log *slog.Logger,
	opts ...RunnerOption,
) *Runner {
	if words == nil {
		panic("words cannot be nil")
	}
	if policy == nil {
		panic("policy cannot be nil")
	}
	if sessions == nil {
		panic("sessions cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	r := &Runner{
		words:    words,
		policy:   policy,
		sessions: sessions,
		emitter:  events.NopEmitter{},
		now:      time.Now,
		logger:   log.With(slog.String("component", "session_runner")),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start begins a session over words, in the given order. An active or
// paused session is ended first.
func (r *Runner) Start(ctx context.Context, kind domain.SessionKind, words []*domain.Word) (*domain.StudySession, error) {
	if len(words) == 0 {
		return nil, domain.ErrEmptyWordList
	}

	headwords := make([]string, len(words))
	for i, w := range words {
		headwords[i] = w.Headword
	}

	now := r.now()
	sess, err := domain.NewStudySession(kind, headwords, now)
	if err != nil {
		return nil, err
	}

	var errs []error
	if r.state == Active || r.state == Paused {
		r.logger.Debug("ending previous session before start",
			slog.String("session_id", r.session.ID.String()))
		errs = append(errs, r.finish(ctx, now))
	}

	r.session = sess
	r.queue = headwords
	r.cursor = 0
	r.persisted = false
	r.state = Active

	logger.FromContextOrDefault(ctx, r.logger).Info("session started",
		slog.String("session_id", sess.ID.String()),
		slog.String("kind", string(kind)),
		slog.Int("total_questions", sess.TotalQuestions))

	errs = append(errs,
		r.persist(ctx),
		r.emit(ctx, events.SessionStarted, sess))

	return sess.Clone(), errors.Join(errs...)
}

// SubmitAnswer records an answer for headword and advances the cursor by
// one. Any word known to the word store is accepted, not only the word at
// the cursor. Answering the last queued word completes the session.
func (r *Runner) SubmitAnswer(ctx context.Context, headword string, correct bool) (*AnswerResult, error) {
	if err := r.requireActive(); err != nil {
		return nil, err
	}

	w, ok := r.words.Get(headword)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownWord, headword)
	}

	now := r.now()
	updated, err := r.policy.RecordAnswer(w, correct, now)
	if err != nil {
		return nil, err
	}

	var errs []error
	if err := r.words.Update(ctx, updated); err != nil {
		if !errors.Is(err, domain.ErrRepository) {
			return nil, err
		}
		errs = append(errs, err)
	}

	r.session.WordsStudied++
	if correct {
		r.session.CorrectAnswers++
	}
	r.cursor++

	result := &AnswerResult{
		Word:         updated,
		NewlyLearned: updated.IsLearned && !w.IsLearned,
	}

	logger.FromContextOrDefault(ctx, r.logger).Debug("answer recorded",
		slog.String("session_id", r.session.ID.String()),
		slog.String("headword", headword),
		slog.Bool("correct", correct),
		slog.Bool("newly_learned", result.NewlyLearned))

	errs = append(errs, r.emit(ctx, events.SessionAnswerRecorded, result))

	if r.cursor >= len(r.queue) {
		result.SessionCompleted = true
		errs = append(errs, r.finish(ctx, now))
	} else {
		errs = append(errs, r.persist(ctx))
	}

	return result, errors.Join(errs...)
}

// SkipCurrentWord advances the cursor without touching word statistics.
// It returns the next word, or nil when the skip completed the session.
func (r *Runner) SkipCurrentWord(ctx context.Context) (*domain.Word, error) {
	if err := r.requireActive(); err != nil {
		return nil, err
	}

	skipped := r.queue[r.cursor]
	r.cursor++

	errs := []error{r.emit(ctx, events.SessionWordSkipped, map[string]string{"headword": skipped})}

	if r.cursor >= len(r.queue) {
		errs = append(errs, r.finish(ctx, r.now()))
		return nil, errors.Join(errs...)
	}

	errs = append(errs, r.persist(ctx))
	next, _ := r.CurrentWord()
	return next, errors.Join(errs...)
}

// Pause suspends an active session. It is a no-op in any other state.
func (r *Runner) Pause(ctx context.Context) error {
	if r.state != Active {
		return nil
	}
	r.state = Paused
	return r.emit(ctx, events.SessionPaused, r.session)
}

// Resume continues a paused session. It is a no-op in any other state.
func (r *Runner) Resume(ctx context.Context) error {
	if r.state != Paused {
		return nil
	}
	r.state = Active
	return r.emit(ctx, events.SessionResumed, r.session)
}

// End seals the current session regardless of the cursor position and
// returns it. Fails with domain.ErrNoActiveSession when nothing is running.
func (r *Runner) End(ctx context.Context) (*domain.StudySession, error) {
	if r.state != Active && r.state != Paused {
		return nil, domain.ErrNoActiveSession
	}
	err := r.finish(ctx, r.now())
	return r.session.Clone(), err
}

// Statistics summarizes the current session, or the last one once sealed.
func (r *Runner) Statistics() Statistics {
	return ComputeStatistics(r.session, r.now())
}

// CurrentWord returns the word at the cursor of an active or paused session.
func (r *Runner) CurrentWord() (*domain.Word, bool) {
	if (r.state != Active && r.state != Paused) || r.cursor >= len(r.queue) {
		return nil, false
	}
	return r.words.Get(r.queue[r.cursor])
}

// Progress returns the cursor position and the queue length.
func (r *Runner) Progress() (position, total int) {
	return r.cursor, len(r.queue)
}

// State returns the lifecycle state.
func (r *Runner) State() State {
	return r.state
}

// IsSessionActive is true only while a session is Active (not Paused).
func (r *Runner) IsSessionActive() bool {
	return r.state == Active
}

// Session returns a copy of the current session, or of the last sealed one.
// It is nil before the first Start.
func (r *Runner) Session() *domain.StudySession {
	if r.session == nil {
		return nil
	}
	return r.session.Clone()
}

func (r *Runner) requireActive() error {
	switch r.state {
	case Active:
		return nil
	case Paused:
		return domain.ErrSessionPaused
	default:
		return domain.ErrNoActiveSession
	}
}

// finish seals the session and clears the working queue.
func (r *Runner) finish(ctx context.Context, now time.Time) error {
	r.session.Complete(now)
	r.state = Completed
	r.queue = nil
	r.cursor = 0

	logger.FromContextOrDefault(ctx, r.logger).Info("session completed",
		slog.String("session_id", r.session.ID.String()),
		slog.Int("words_studied", r.session.WordsStudied),
		slog.Int("correct_answers", r.session.CorrectAnswers),
		slog.Int("total_questions", r.session.TotalQuestions))

	return errors.Join(
		r.persist(ctx),
		r.emit(ctx, events.SessionCompleted, r.session))
}

func (r *Runner) persist(ctx context.Context) error {
	snapshot := r.session.Clone()

	var err error
	if r.persisted {
		err = r.sessions.Update(ctx, snapshot)
	} else {
		err = r.sessions.Save(ctx, snapshot)
		if err == nil {
			r.persisted = true
		}
	}
	if err != nil {
		logger.FromContextOrDefault(ctx, r.logger).Error("failed to persist session",
			slog.String("session_id", snapshot.ID.String()),
			slog.String("error", err.Error()))
		return domain.NewRepositoryError("save session", err)
	}
	return nil
}

func (r *Runner) emit(ctx context.Context, eventType events.Type, payload any) error {
	event, err := events.NewEvent(eventType, r.session.ID, payload)
	if err != nil {
		return fmt.Errorf("failed to build %s event: %w", eventType, err)
	}
	return r.emitter.EmitEvent(ctx, event)
}
