package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/phrazzld/lexis/internal/api/shared"
	"github.com/phrazzld/lexis/internal/domain"
	"github.com/phrazzld/lexis/internal/platform/logger"
	"github.com/phrazzld/lexis/internal/service"
)

// SessionHandler serves the study session endpoints.
type SessionHandler struct {
	service service.LearningService
	logger  *slog.Logger
}

// NewSessionHandler creates a SessionHandler. It panics if svc is nil.
func NewSessionHandler(svc service.LearningService, log *slog.Logger) *SessionHandler {
	if svc == nil {
		panic("service cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &SessionHandler{
		service: svc,
		logger:  log.With(slog.String("component", "session_handler")),
	}
}

// StartSession handles POST /api/sessions.
func (h *SessionHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req StartSessionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleValidationError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleValidationError(w, r, err)
		return
	}

	view, err := h.service.StartSession(r.Context(), domain.SessionKind(req.Kind))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Info("session started",
		slog.String("kind", req.Kind),
		slog.Int("words", view.Total))
	shared.RespondWithJSON(w, r, http.StatusCreated, view)
}

// GetCurrentSession handles GET /api/sessions/current.
func (h *SessionHandler) GetCurrentSession(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.service.CurrentSession(r.Context()))
}

// GetQuizOptions handles GET /api/sessions/current/options.
func (h *SessionHandler) GetQuizOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.service.QuizOptions(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	resp := QuizOptionsResponse{Options: options}
	if view := h.service.CurrentSession(r.Context()); view.CurrentWord != nil {
		resp.Headword = view.CurrentWord.Headword
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// SubmitAnswer handles POST /api/sessions/current/answers.
func (h *SessionHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req SubmitAnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleValidationError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleValidationError(w, r, err)
		return
	}

	result, err := h.service.SubmitAnswer(r.Context(), req.Headword, *req.Correct)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// SubmitQuizAnswer handles POST /api/sessions/current/quiz-answers.
func (h *SessionHandler) SubmitQuizAnswer(w http.ResponseWriter, r *http.Request) {
	var req QuizAnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleValidationError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleValidationError(w, r, err)
		return
	}

	result, err := h.service.SubmitQuizAnswer(r.Context(), req.Headword, req.Choice)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// SkipWord handles POST /api/sessions/current/skip.
func (h *SessionHandler) SkipWord(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.SkipWord(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// PauseSession handles POST /api/sessions/current/pause.
func (h *SessionHandler) PauseSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.PauseSession(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// ResumeSession handles POST /api/sessions/current/resume.
func (h *SessionHandler) ResumeSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.ResumeSession(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// EndSession handles POST /api/sessions/current/end.
func (h *SessionHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	ended, err := h.service.EndSession(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ended)
}

// GetStatistics handles GET /api/sessions/current/statistics.
func (h *SessionHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	stats := h.service.Statistics(r.Context())
	shared.RespondWithJSON(w, r, http.StatusOK, statisticsToResponse(stats))
}

// ListSessions handles GET /api/sessions?limit=N.
func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	sessions, err := h.service.RecentSessions(r.Context(), limit)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if sessions == nil {
		sessions = []*domain.StudySession{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, SessionsResponse{Sessions: sessions})
}
