package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/phrazzld/lexis/internal/domain"
	"github.com/phrazzld/lexis/internal/platform/memory"
	"github.com/phrazzld/lexis/internal/store"
	"github.com/phrazzld/lexis/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := memory.NewWordStore(testutils.NewWord("banana"))
	require.NoError(t, s.SaveBatch(ctx, []*domain.Word{testutils.NewWord("apple"), testutils.NewWord("cherry")}))

	all, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "banana", "cherry"}, testutils.Headwords(all))

	updated := testutils.StudiedWord("apple", 2, 1, time.Now())
	require.NoError(t, s.Save(ctx, updated))
	all, err = s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, all[0].LearningCount, "save replaces an existing headword")

	all[0].LearningCount = 99
	again, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, again[0].LearningCount, "returned words are copies")

	found, err := s.Search(ctx, "AN")
	require.NoError(t, err)
	assert.Equal(t, []string{"banana"}, testutils.Headwords(found))

	require.NoError(t, s.Delete(ctx, "banana"))
	assert.ErrorIs(t, s.Delete(ctx, "banana"), store.ErrWordNotFound)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, s.DeleteAll(ctx))
	n, err = s.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	invalid := testutils.StudiedWord("bad", 1, 2, time.Now())
	assert.ErrorIs(t, s.Save(ctx, invalid), domain.ErrCorrectExceedsTotal)
}

func TestSessionStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := memory.NewSessionStore()
	base := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)

	var sessions []*domain.StudySession
	for i := 0; i < 3; i++ {
		sess, err := domain.NewStudySession(domain.SessionKindLearning, []string{"a", "b"}, base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, err)
		require.NoError(t, s.Save(ctx, sess))
		sessions = append(sessions, sess)
	}
	assert.ErrorIs(t, s.Save(ctx, sessions[0]), store.ErrSessionExists)

	sessions[0].WordsStudied = 1
	sessions[0].Complete(base.Add(10 * time.Minute))
	require.NoError(t, s.Update(ctx, sessions[0]))

	recent, err := s.FindRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, sessions[2].ID, recent[0].ID)
	assert.Equal(t, sessions[1].ID, recent[1].ID)

	all, err := s.FindRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[2].IsCompleted)

	orphan, err := domain.NewStudySession(domain.SessionKindQuiz, []string{"x"}, base)
	require.NoError(t, err)
	assert.ErrorIs(t, s.Update(ctx, orphan), store.ErrSessionNotFound)
}

func TestProgressStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := memory.NewProgressStore()

	_, err := s.LoadCurrent(ctx)
	assert.ErrorIs(t, err, store.ErrProgressNotFound)

	p := domain.NewUserProgress(0, 0, time.Now())
	assert.ErrorIs(t, s.Update(ctx, p), store.ErrProgressNotFound)
	require.NoError(t, s.Save(ctx, p))
	assert.ErrorIs(t, s.Save(ctx, p), store.ErrProgressExists)

	p.CurrentStreak = 4
	require.NoError(t, s.Update(ctx, p))

	loaded, err := s.LoadCurrent(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, loaded.CurrentStreak)
}
