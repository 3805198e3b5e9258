package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/lexis/internal/service"
)

// RegisterRoutes mounts every /api endpoint on r.
func RegisterRoutes(r chi.Router, svc service.LearningService, log *slog.Logger) {
	sessions := NewSessionHandler(svc, log)
	words := NewWordHandler(svc, log)
	prog := NewProgressHandler(svc, log)

	r.Route("/api", func(r chi.Router) {
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessions.StartSession)
			r.Get("/", sessions.ListSessions)

			r.Route("/current", func(r chi.Router) {
				r.Get("/", sessions.GetCurrentSession)
				r.Get("/options", sessions.GetQuizOptions)
				r.Get("/statistics", sessions.GetStatistics)
				r.Post("/answers", sessions.SubmitAnswer)
				r.Post("/quiz-answers", sessions.SubmitQuizAnswer)
				r.Post("/skip", sessions.SkipWord)
				r.Post("/pause", sessions.PauseSession)
				r.Post("/resume", sessions.ResumeSession)
				r.Post("/end", sessions.EndSession)
			})
		})

		r.Route("/words", func(r chi.Router) {
			r.Get("/", words.SearchWords)
			r.Post("/", words.AddWords)
			r.Delete("/", words.ResetWords)
			r.Get("/difficult", words.GetDifficultWords)
			r.Get("/due", words.GetDueWords)
			r.Put("/{headword}/favorite", words.SetFavorite)
			r.Delete("/{headword}", words.DeleteWord)
		})

		r.Route("/progress", func(r chi.Router) {
			r.Get("/", prog.GetProgress)
			r.Delete("/", prog.ResetProgress)
			r.Get("/achievements", prog.GetAchievements)
		})
	})
}
