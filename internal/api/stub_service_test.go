package api_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/phrazzld/lexis/internal/api"
	"github.com/phrazzld/lexis/internal/domain"
	"github.com/phrazzld/lexis/internal/progress"
	"github.com/phrazzld/lexis/internal/service"
	"github.com/phrazzld/lexis/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubService overrides the methods a test needs; any other call panics on
// the nil embedded interface.
type stubService struct {
	service.LearningService

	submitAnswer   func(ctx context.Context, headword string, correct bool) (*session.AnswerResult, error)
	recentSessions func(ctx context.Context, limit int) ([]*domain.StudySession, error)
	achievements   func(ctx context.Context) ([]progress.Achievement, error)
}

func (s *stubService) SubmitAnswer(ctx context.Context, headword string, correct bool) (*session.AnswerResult, error) {
	return s.submitAnswer(ctx, headword, correct)
}

func (s *stubService) RecentSessions(ctx context.Context, limit int) ([]*domain.StudySession, error) {
	return s.recentSessions(ctx, limit)
}

func (s *stubService) Achievements(ctx context.Context) ([]progress.Achievement, error) {
	return s.achievements(ctx)
}

func TestRepositoryFailureAfterAnswerIsReported(t *testing.T) {
	t.Parallel()

	svc := &stubService{
		submitAnswer: func(ctx context.Context, headword string, correct bool) (*session.AnswerResult, error) {
			return &session.AnswerResult{Word: &domain.Word{Headword: headword}},
				domain.NewRepositoryError("update session", errors.New("connection reset"))
		},
	}

	w := serve(t, newRouter(svc), http.MethodPost, "/api/sessions/current/answers",
		map[string]any{"headword": "agua", "correct": false})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection reset")
}

func TestListSessionsPassesLimit(t *testing.T) {
	t.Parallel()

	var gotLimit int
	svc := &stubService{
		recentSessions: func(ctx context.Context, limit int) ([]*domain.StudySession, error) {
			gotLimit = limit
			return nil, nil
		},
	}

	w := serve(t, newRouter(svc), http.MethodGet, "/api/sessions?limit=7", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 7, gotLimit)

	w = serve(t, newRouter(svc), http.MethodGet, "/api/sessions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, gotLimit)
}

func TestAchievementsFailure(t *testing.T) {
	t.Parallel()

	svc := &stubService{
		achievements: func(ctx context.Context) ([]progress.Achievement, error) {
			return nil, service.NewServiceError("achievements", "failed to load session history",
				domain.NewRepositoryError("find recent sessions", errors.New("timeout")))
		},
	}

	w := serve(t, newRouter(svc), http.MethodGet, "/api/progress/achievements", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Storage is unavailable")
}

func TestNewHandlersPanicOnNilService(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { api.NewSessionHandler(nil, nil) })
	assert.Panics(t, func() { api.NewWordHandler(nil, nil) })
	assert.Panics(t, func() { api.NewProgressHandler(nil, nil) })
}
