package progress

import (
	"testing"
	"time"

	"github.com/phrazzld/lexis/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sealed(t *testing.T, start time.Time, d time.Duration, total, studied, correct int) *domain.StudySession {
	t.Helper()
	words := make([]string, total)
	for i := range words {
		words[i] = "w"
	}
	s, err := domain.NewStudySession(domain.SessionKindLearning, words, start)
	require.NoError(t, err)
	s.WordsStudied = studied
	s.CorrectAnswers = correct
	s.Complete(start.Add(d))
	return s
}

func byID(achievements []Achievement) map[string]Achievement {
	out := make(map[string]Achievement, len(achievements))
	for _, a := range achievements {
		out[a.ID] = a
	}
	return out
}

func TestEvaluateFreshProgress(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	p := domain.NewUserProgress(0, 0, now)

	got := Evaluate(p, nil, now, time.UTC)
	require.Len(t, got, len(WordMilestones)+4)
	for _, a := range got {
		assert.False(t, a.Unlocked, a.ID)
		assert.Zero(t, a.Progress, a.ID)
	}
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	p := domain.NewUserProgress(20, 100, now)
	p.TotalWordsLearned = 120
	p.CurrentStreak = 2
	p.LongestStreak = 8

	sessions := []*domain.StudySession{
		// today: 10 studied in 4 minutes at 90% accuracy
		sealed(t, now.Add(-2*time.Hour), 4*time.Minute, 10, 10, 9),
		// today: 10 more, slowly
		sealed(t, now.Add(-time.Hour), 20*time.Minute, 10, 10, 4),
		// yesterday, does not count for the daily goal
		sealed(t, now.AddDate(0, 0, -1), 10*time.Minute, 20, 20, 10),
	}

	got := byID(Evaluate(p, sessions, now, time.UTC))

	assert.True(t, got["words_1"].Unlocked)
	assert.True(t, got["words_100"].Unlocked)
	assert.False(t, got["words_500"].Unlocked)
	assert.InDelta(t, 120.0/500.0, got["words_500"].Progress, 1e-9)

	assert.False(t, got["streak_7"].Unlocked, "only the running streak counts")
	assert.InDelta(t, 2.0/7.0, got["streak_7"].Progress, 1e-9)
	assert.True(t, got["accuracy_90"].Unlocked)
	assert.True(t, got["daily_goal"].Unlocked, "20 words studied today")
	assert.True(t, got["speed"].Unlocked)

	p.CurrentStreak = 7
	assert.True(t, byID(Evaluate(p, sessions, now, time.UTC))["streak_7"].Unlocked)
}

func TestEvaluateDailyGoalCountsTodayOnly(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	p := domain.NewUserProgress(20, 100, now)

	sessions := []*domain.StudySession{
		sealed(t, now.Add(-time.Hour), 30*time.Minute, 15, 15, 5),
		sealed(t, now.AddDate(0, 0, -1), 40*time.Minute, 20, 20, 10),
	}

	got := byID(Evaluate(p, sessions, now, time.UTC))
	assert.False(t, got["daily_goal"].Unlocked)
	assert.InDelta(t, 0.75, got["daily_goal"].Progress, 1e-9)
	assert.False(t, got["accuracy_90"].Unlocked)
	assert.InDelta(t, 0.5/0.9, got["accuracy_90"].Progress, 1e-9)
	assert.False(t, got["speed"].Unlocked)
	assert.InDelta(t, 0.5, got["speed"].Progress, 1e-9)
}

func TestEvaluateIgnoresOpenSessionsForSpeed(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	open, err := domain.NewStudySession(domain.SessionKindQuiz, []string{"a", "b"}, now.Add(-time.Minute))
	require.NoError(t, err)
	open.WordsStudied = 2

	got := byID(Evaluate(domain.NewUserProgress(0, 0, now), []*domain.StudySession{open}, now, time.UTC))
	assert.False(t, got["speed"].Unlocked)
}
