package session

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/phrazzld/lexis/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStatistics(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		session *domain.StudySession
		now     time.Time
		want    Statistics
	}{
		{
			name: "nil session",
			want: Statistics{},
		},
		{
			name:    "nothing studied",
			session: &domain.StudySession{StartTime: start, TotalQuestions: 5},
			now:     start,
			want:    Statistics{TotalWords: 5, SkippedWords: 5},
		},
		{
			name:    "open session measured to now",
			session: &domain.StudySession{StartTime: start, TotalQuestions: 10, WordsStudied: 6, CorrectAnswers: 3},
			now:     start.Add(3 * time.Minute),
			want: Statistics{
				TotalWords:       10,
				WordsStudied:     6,
				CorrectAnswers:   3,
				IncorrectAnswers: 3,
				SkippedWords:     4,
				Accuracy:         0.5,
				TimeSpent:        3 * time.Minute,
				WordsPerMinute:   2,
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := ComputeStatistics(tc.session, tc.now)
			assert.Equal(t, tc.want.TotalWords, got.TotalWords)
			assert.Equal(t, tc.want.IncorrectAnswers, got.IncorrectAnswers)
			assert.Equal(t, tc.want.SkippedWords, got.SkippedWords)
			assert.InDelta(t, tc.want.Accuracy, got.Accuracy, 1e-9)
			assert.Equal(t, tc.want.TimeSpent, got.TimeSpent)
			assert.InDelta(t, tc.want.WordsPerMinute, got.WordsPerMinute, 1e-9)
		})
	}
}

func TestStateText(t *testing.T) {
	t.Parallel()

	for _, s := range []State{Idle, Active, Paused, Completed} {
		text, err := s.MarshalText()
		require.NoError(t, err)

		var back State
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, s, back)
	}

	assert.Equal(t, "State(9)", State(9).String())
	_, err := State(9).MarshalText()
	assert.Error(t, err)

	var s State
	assert.Error(t, s.UnmarshalText([]byte("running")))

	data, err := json.Marshal(map[string]State{"state": Paused})
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":"paused"}`, string(data))
}
