package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/lexis/internal/api/shared"
	"github.com/phrazzld/lexis/internal/service"
)

// ProgressHandler serves the progress and achievement endpoints.
type ProgressHandler struct {
	service service.LearningService
	logger  *slog.Logger
}

// NewProgressHandler creates a ProgressHandler. It panics if svc is nil.
func NewProgressHandler(svc service.LearningService, log *slog.Logger) *ProgressHandler {
	if svc == nil {
		panic("service cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &ProgressHandler{
		service: svc,
		logger:  log.With(slog.String("component", "progress_handler")),
	}
}

// GetProgress handles GET /api/progress.
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Progress(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, progressToResponse(p))
}

// GetAchievements handles GET /api/progress/achievements.
func (h *ProgressHandler) GetAchievements(w http.ResponseWriter, r *http.Request) {
	achievements, err := h.service.Achievements(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, AchievementsResponse{Achievements: achievements})
}

// ResetProgress handles DELETE /api/progress.
func (h *ProgressHandler) ResetProgress(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.ResetProgress(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, progressToResponse(p))
}
