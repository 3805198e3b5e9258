package session

import (
	"time"

	"github.com/phrazzld/lexis/internal/domain"
)

// Statistics summarizes a session at a point in time.
type Statistics struct {
	TotalWords       int           `json:"total_words"`
	WordsStudied     int           `json:"words_studied"`
	CorrectAnswers   int           `json:"correct_answers"`
	IncorrectAnswers int           `json:"incorrect_answers"`
	SkippedWords     int           `json:"skipped_words"`
	Accuracy         float64       `json:"accuracy"`
	TimeSpent        time.Duration `json:"time_spent"`
	WordsPerMinute   float64       `json:"words_per_minute"`
}

// ComputeStatistics derives Statistics from s. Open sessions are measured up
// to now, sealed sessions up to their end time.
func ComputeStatistics(s *domain.StudySession, now time.Time) Statistics {
	if s == nil {
		return Statistics{}
	}

	stats := Statistics{
		TotalWords:       s.TotalQuestions,
		WordsStudied:     s.WordsStudied,
		CorrectAnswers:   s.CorrectAnswers,
		IncorrectAnswers: s.WordsStudied - s.CorrectAnswers,
		SkippedWords:     s.TotalQuestions - s.WordsStudied,
	}
	if s.WordsStudied > 0 {
		stats.Accuracy = float64(s.CorrectAnswers) / float64(s.WordsStudied)
	}

	end := now
	if s.EndTime != nil {
		end = *s.EndTime
	}
	if spent := end.Sub(s.StartTime); spent > 0 {
		stats.TimeSpent = spent
		stats.WordsPerMinute = float64(s.WordsStudied) / spent.Minutes()
	}

	return stats
}
