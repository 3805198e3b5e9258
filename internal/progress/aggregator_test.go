package progress_test

import (
	"context"
	"testing"
	"time"

	"github.com/phrazzld/lexis/internal/domain"
	"github.com/phrazzld/lexis/internal/events"
	"github.com/phrazzld/lexis/internal/platform/memory"
	"github.com/phrazzld/lexis/internal/progress"
	"github.com/phrazzld/lexis/internal/store"
	"github.com/phrazzld/lexis/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenProgressStore struct{ store.ProgressStore }

func (brokenProgressStore) LoadCurrent(context.Context) (*domain.UserProgress, error) {
	return nil, testutils.ErrInjected
}

func completedSession(t *testing.T, start time.Time, studied, correct int) *domain.StudySession {
	t.Helper()
	s, err := domain.NewStudySession(domain.SessionKindLearning, []string{"a", "b", "c", "d", "e"}, start)
	require.NoError(t, err)
	s.WordsStudied = studied
	s.CorrectAnswers = correct
	s.Complete(start.Add(5 * time.Minute))
	return s
}

func TestAggregatorCurrentCreatesOnce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := memory.NewProgressStore()
	clock := testutils.NewClock(time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC))
	agg := progress.NewAggregator(repo, nil, progress.WithGoals(30, 150), progress.WithClock(clock.Now))

	first, err := agg.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, 30, first.DailyGoal)
	assert.Equal(t, 150, first.WeeklyGoal)
	assert.Equal(t, 1, first.Level)

	second, err := agg.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestAggregatorRecordSessionCompletion(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := memory.NewProgressStore()
	_, log := testutils.NewSlogCapture()
	agg := progress.NewAggregator(repo, log, progress.WithLocation(time.UTC))

	day1 := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	p, err := agg.RecordSessionCompletion(ctx, completedSession(t, day1, 5, 4))
	require.NoError(t, err)
	assert.Equal(t, 5, p.TotalWordsLearned)
	assert.Equal(t, 1, p.CurrentStreak)

	p, err = agg.RecordSessionCompletion(ctx, completedSession(t, day1.AddDate(0, 0, 1), 3, 3))
	require.NoError(t, err)
	assert.Equal(t, 8, p.TotalWordsLearned)
	assert.Equal(t, 2, p.CurrentStreak)
	assert.Equal(t, 2, p.LongestStreak)
	assert.Equal(t, 10*time.Minute, p.TotalStudyTime)

	stored, err := repo.LoadCurrent(ctx)
	require.NoError(t, err)
	assert.Equal(t, p.TotalWordsLearned, stored.TotalWordsLearned)

	open, err := domain.NewStudySession(domain.SessionKindQuiz, []string{"a"}, day1)
	require.NoError(t, err)
	_, err = agg.RecordSessionCompletion(ctx, open)
	assert.ErrorIs(t, err, domain.ErrInvalidSession)
}

func TestAggregatorHandlesCompletedEvents(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := memory.NewProgressStore()
	emitter := events.NewInMemoryEventEmitter(nil)
	var updates int
	emitter.RegisterHandler(events.HandlerFunc(func(_ context.Context, e *events.Event) error {
		if e.Type == events.ProgressUpdated {
			updates++
		}
		return nil
	}))
	agg := progress.NewAggregator(repo, nil, progress.WithEmitter(emitter), progress.WithLocation(time.UTC))
	emitter.RegisterHandler(agg)

	s := completedSession(t, time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC), 4, 2)

	started, err := events.NewEvent(events.SessionStarted, s.ID, s)
	require.NoError(t, err)
	require.NoError(t, emitter.EmitEvent(ctx, started))
	_, err = repo.LoadCurrent(ctx)
	assert.ErrorIs(t, err, store.ErrProgressNotFound, "non-completion events are ignored")

	completed, err := events.NewEvent(events.SessionCompleted, s.ID, s)
	require.NoError(t, err)
	require.NoError(t, emitter.EmitEvent(ctx, completed))

	p, err := repo.LoadCurrent(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, p.TotalWordsLearned)
	assert.Equal(t, 1, updates)

	bad := &events.Event{Type: events.SessionCompleted, Payload: []byte("{")}
	assert.Error(t, agg.HandleEvent(ctx, bad))
}

func TestAggregatorReset(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := memory.NewProgressStore()
	agg := progress.NewAggregator(repo, nil, progress.WithGoals(25, 0))

	p, err := agg.RecordSessionCompletion(ctx, completedSession(t, time.Now().Add(-time.Hour), 5, 5))
	require.NoError(t, err)
	require.Equal(t, 5, p.TotalWordsLearned)

	fresh, err := agg.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, p.ID, fresh.ID)
	assert.Zero(t, fresh.TotalWordsLearned)
	assert.Zero(t, fresh.CurrentStreak)
	assert.Nil(t, fresh.LastStudyDate)
	assert.Equal(t, 25, fresh.DailyGoal)
	assert.Equal(t, domain.DefaultWeeklyGoal, fresh.WeeklyGoal)
}

func TestAggregatorRepositoryFailure(t *testing.T) {
	t.Parallel()

	agg := progress.NewAggregator(brokenProgressStore{}, nil)
	_, err := agg.Current(context.Background())
	assert.ErrorIs(t, err, domain.ErrRepository)
	assert.ErrorIs(t, err, testutils.ErrInjected)
}
