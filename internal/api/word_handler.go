package api

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/lexis/internal/api/shared"
	"github.com/phrazzld/lexis/internal/domain"
	"github.com/phrazzld/lexis/internal/platform/logger"
	"github.com/phrazzld/lexis/internal/service"
)

// WordHandler serves the vocabulary endpoints.
type WordHandler struct {
	service service.LearningService
	now     func() time.Time
	logger  *slog.Logger
}

// NewWordHandler creates a WordHandler. It panics if svc is nil.
func NewWordHandler(svc service.LearningService, log *slog.Logger) *WordHandler {
	if svc == nil {
		panic("service cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &WordHandler{
		service: svc,
		now:     func() time.Time { return time.Now().UTC() },
		logger:  log.With(slog.String("component", "word_handler")),
	}
}

// SearchWords handles GET /api/words?q=.
func (h *WordHandler) SearchWords(w http.ResponseWriter, r *http.Request) {
	words := h.service.SearchWords(r.Context(), r.URL.Query().Get("q"))
	shared.RespondWithJSON(w, r, http.StatusOK, wordsResponse(words))
}

// AddWords handles POST /api/words. The batch is added atomically.
func (h *WordHandler) AddWords(w http.ResponseWriter, r *http.Request) {
	var req AddWordsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleValidationError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleValidationError(w, r, err)
		return
	}

	now := h.now()
	words := make([]*domain.Word, 0, len(req.Words))
	for _, wr := range req.Words {
		words = append(words, wr.toDomain(now))
	}

	if err := h.service.AddWords(r.Context(), words); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, wordsResponse(words))
}

// GetDifficultWords handles GET /api/words/difficult.
func (h *WordHandler) GetDifficultWords(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, wordsResponse(h.service.DifficultWords(r.Context())))
}

// GetDueWords handles GET /api/words/due.
func (h *WordHandler) GetDueWords(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, wordsResponse(h.service.DueWords(r.Context())))
}

// SetFavorite handles PUT /api/words/{headword}/favorite.
func (h *WordHandler) SetFavorite(w http.ResponseWriter, r *http.Request) {
	headword, err := url.PathUnescape(chi.URLParam(r, "headword"))
	if err != nil || headword == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid headword")
		return
	}

	var req FavoriteRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleValidationError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleValidationError(w, r, err)
		return
	}

	word, err := h.service.SetFavorite(r.Context(), headword, *req.Favorited)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, word)
}

// DeleteWord handles DELETE /api/words/{headword}.
func (h *WordHandler) DeleteWord(w http.ResponseWriter, r *http.Request) {
	headword, err := url.PathUnescape(chi.URLParam(r, "headword"))
	if err != nil || headword == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid headword")
		return
	}

	if err := h.service.DeleteWord(r.Context(), headword); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ResetWords handles DELETE /api/words.
func (h *WordHandler) ResetWords(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ResetWords(r.Context()); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	logger.FromContextOrDefault(r.Context(), h.logger).Warn("word store reset")
	w.WriteHeader(http.StatusNoContent)
}
