package api

import (
	"strings"
	"time"

	"github.com/phrazzld/lexis/internal/domain"
	"github.com/phrazzld/lexis/internal/progress"
	"github.com/phrazzld/lexis/internal/session"
)

// StartSessionRequest is the payload of POST /api/sessions.
type StartSessionRequest struct {
	Kind string `json:"kind" validate:"required,oneof=learning quiz review"`
}

// SubmitAnswerRequest is the payload of POST /api/sessions/current/answers.
// Correct is a pointer so an omitted field fails validation instead of
// reading as false.
type SubmitAnswerRequest struct {
	Headword string `json:"headword" validate:"required,max=200"`
	Correct  *bool  `json:"correct"  validate:"required"`
}

// QuizAnswerRequest is the payload of POST /api/sessions/current/quiz-answers.
type QuizAnswerRequest struct {
	Headword string `json:"headword" validate:"required,max=200"`
	Choice   string `json:"choice"   validate:"required,max=500"`
}

// WordRequest describes one word to add.
type WordRequest struct {
	Headword           string `json:"headword"                      validate:"required,max=200"`
	Translation        string `json:"translation"                   validate:"required,max=500"`
	Pronunciation      string `json:"pronunciation,omitempty"       validate:"max=200"`
	PartOfSpeech       string `json:"part_of_speech,omitempty"      validate:"max=50"`
	Example            string `json:"example,omitempty"             validate:"max=1000"`
	ExampleTranslation string `json:"example_translation,omitempty" validate:"max=1000"`
	Difficulty         int    `json:"difficulty,omitempty"          validate:"gte=0,lte=5"`
}

// AddWordsRequest is the payload of POST /api/words.
type AddWordsRequest struct {
	Words []WordRequest `json:"words" validate:"required,min=1,max=5000,dive"`
}

// FavoriteRequest is the payload of PUT /api/words/{headword}/favorite.
type FavoriteRequest struct {
	Favorited *bool `json:"favorited" validate:"required"`
}

// QuizOptionsResponse lists the answer choices for the current word.
type QuizOptionsResponse struct {
	Headword string   `json:"headword"`
	Options  []string `json:"options"`
}

// StatisticsResponse is session.Statistics with durations in seconds.
type StatisticsResponse struct {
	TotalWords       int     `json:"total_words"`
	WordsStudied     int     `json:"words_studied"`
	CorrectAnswers   int     `json:"correct_answers"`
	IncorrectAnswers int     `json:"incorrect_answers"`
	SkippedWords     int     `json:"skipped_words"`
	Accuracy         float64 `json:"accuracy"`
	TimeSpentSeconds float64 `json:"time_spent_seconds"`
	WordsPerMinute   float64 `json:"words_per_minute"`
}

// SessionsResponse lists persisted sessions, newest first.
type SessionsResponse struct {
	Sessions []*domain.StudySession `json:"sessions"`
}

// WordsResponse lists words.
type WordsResponse struct {
	Words []*domain.Word `json:"words"`
	Count int            `json:"count"`
}

// ProgressResponse is the user progress plus the study time in seconds.
type ProgressResponse struct {
	*domain.UserProgress
	TotalStudyTimeSeconds float64 `json:"total_study_time_seconds"`
}

// AchievementsResponse lists every achievement with its unlock state.
type AchievementsResponse struct {
	Achievements []progress.Achievement `json:"achievements"`
}

func (r WordRequest) toDomain(now time.Time) *domain.Word {
	difficulty := domain.Difficulty(r.Difficulty)
	if difficulty == 0 {
		difficulty = domain.DifficultyBeginner
	}
	return &domain.Word{
		Headword:           strings.TrimSpace(r.Headword),
		Translation:        strings.TrimSpace(r.Translation),
		Pronunciation:      r.Pronunciation,
		PartOfSpeech:       r.PartOfSpeech,
		Example:            r.Example,
		ExampleTranslation: r.ExampleTranslation,
		Difficulty:         difficulty,
		CreatedAt:          now,
	}
}

func statisticsToResponse(s session.Statistics) StatisticsResponse {
	return StatisticsResponse{
		TotalWords:       s.TotalWords,
		WordsStudied:     s.WordsStudied,
		CorrectAnswers:   s.CorrectAnswers,
		IncorrectAnswers: s.IncorrectAnswers,
		SkippedWords:     s.SkippedWords,
		Accuracy:         s.Accuracy,
		TimeSpentSeconds: s.TimeSpent.Seconds(),
		WordsPerMinute:   s.WordsPerMinute,
	}
}

func progressToResponse(p *domain.UserProgress) ProgressResponse {
	return ProgressResponse{
		UserProgress:          p,
		TotalStudyTimeSeconds: p.TotalStudyTime.Seconds(),
	}
}

func wordsResponse(words []*domain.Word) WordsResponse {
	if words == nil {
		words = []*domain.Word{}
	}
	return WordsResponse{Words: words, Count: len(words)}
}
