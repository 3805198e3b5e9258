package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis/internal/domain"
)

// Times are converted to UTC before writing. go-sqlite3 stores them as text in
// the "2006-01-02 15:04:05.999999999-07:00" layout, so with a fixed +00:00
// offset text ordering matches time ordering.

type wordRow struct {
	Headword           string       `db:"headword"`
	Translation        string       `db:"translation"`
	Pronunciation      string       `db:"pronunciation"`
	PartOfSpeech       string       `db:"part_of_speech"`
	Example            string       `db:"example"`
	ExampleTranslation string       `db:"example_translation"`
	Difficulty         int          `db:"difficulty"`
	LearningCount      int          `db:"learning_count"`
	CorrectCount       int          `db:"correct_count"`
	IsLearned          bool         `db:"is_learned"`
	IsFavorited        bool         `db:"is_favorited"`
	LastStudyDate      sql.NullTime `db:"last_study_date"`
	CreatedAt          time.Time    `db:"created_at"`
}

func newWordRow(w *domain.Word) wordRow {
	return wordRow{
		Headword:           w.Headword,
		Translation:        w.Translation,
		Pronunciation:      w.Pronunciation,
		PartOfSpeech:       w.PartOfSpeech,
		Example:            w.Example,
		ExampleTranslation: w.ExampleTranslation,
		Difficulty:         int(w.Difficulty),
		LearningCount:      w.LearningCount,
		CorrectCount:       w.CorrectCount,
		IsLearned:          w.IsLearned,
		IsFavorited:        w.IsFavorited,
		LastStudyDate:      nullTime(w.LastStudyDate),
		CreatedAt:          w.CreatedAt.UTC(),
	}
}

func (r wordRow) toDomain() *domain.Word {
	return &domain.Word{
		Headword:           r.Headword,
		Translation:        r.Translation,
		Pronunciation:      r.Pronunciation,
		PartOfSpeech:       r.PartOfSpeech,
		Example:            r.Example,
		ExampleTranslation: r.ExampleTranslation,
		Difficulty:         domain.Difficulty(r.Difficulty),
		LearningCount:      r.LearningCount,
		CorrectCount:       r.CorrectCount,
		IsLearned:          r.IsLearned,
		IsFavorited:        r.IsFavorited,
		LastStudyDate:      timePtr(r.LastStudyDate),
		CreatedAt:          r.CreatedAt,
	}
}

type sessionRow struct {
	ID             string       `db:"id"`
	Kind           string       `db:"kind"`
	StartTime      time.Time    `db:"start_time"`
	EndTime        sql.NullTime `db:"end_time"`
	Words          string       `db:"words"`
	WordsStudied   int          `db:"words_studied"`
	CorrectAnswers int          `db:"correct_answers"`
	TotalQuestions int          `db:"total_questions"`
	IsCompleted    bool         `db:"is_completed"`
}

func newSessionRow(s *domain.StudySession) (sessionRow, error) {
	words, err := json.Marshal(s.Words)
	if err != nil {
		return sessionRow{}, fmt.Errorf("failed to encode session words: %w", err)
	}
	return sessionRow{
		ID:             s.ID.String(),
		Kind:           string(s.Kind),
		StartTime:      s.StartTime.UTC(),
		EndTime:        nullTime(s.EndTime),
		Words:          string(words),
		WordsStudied:   s.WordsStudied,
		CorrectAnswers: s.CorrectAnswers,
		TotalQuestions: s.TotalQuestions,
		IsCompleted:    s.IsCompleted,
	}, nil
}

func (r sessionRow) toDomain() (*domain.StudySession, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid session id %q: %w", r.ID, err)
	}
	s := &domain.StudySession{
		ID:             id,
		Kind:           domain.SessionKind(r.Kind),
		StartTime:      r.StartTime,
		EndTime:        timePtr(r.EndTime),
		WordsStudied:   r.WordsStudied,
		CorrectAnswers: r.CorrectAnswers,
		TotalQuestions: r.TotalQuestions,
		IsCompleted:    r.IsCompleted,
	}
	if err := json.Unmarshal([]byte(r.Words), &s.Words); err != nil {
		return nil, fmt.Errorf("failed to decode session words: %w", err)
	}
	return s, nil
}

type progressRow struct {
	ID                string       `db:"id"`
	TotalWordsLearned int          `db:"total_words_learned"`
	CurrentStreak     int          `db:"current_streak"`
	LongestStreak     int          `db:"longest_streak"`
	TotalStudyMS      int64        `db:"total_study_ms"`
	Level             int          `db:"level"`
	Experience        int          `db:"experience"`
	DailyGoal         int          `db:"daily_goal"`
	WeeklyGoal        int          `db:"weekly_goal"`
	LastStudyDate     sql.NullTime `db:"last_study_date"`
	CreatedAt         time.Time    `db:"created_at"`
	UpdatedAt         time.Time    `db:"updated_at"`
}

func newProgressRow(p *domain.UserProgress) progressRow {
	return progressRow{
		ID:                p.ID.String(),
		TotalWordsLearned: p.TotalWordsLearned,
		CurrentStreak:     p.CurrentStreak,
		LongestStreak:     p.LongestStreak,
		TotalStudyMS:      p.TotalStudyTime.Milliseconds(),
		Level:             p.Level,
		Experience:        p.Experience,
		DailyGoal:         p.DailyGoal,
		WeeklyGoal:        p.WeeklyGoal,
		LastStudyDate:     nullTime(p.LastStudyDate),
		CreatedAt:         p.CreatedAt.UTC(),
		UpdatedAt:         p.UpdatedAt.UTC(),
	}
}

func (r progressRow) toDomain() (*domain.UserProgress, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid progress id %q: %w", r.ID, err)
	}
	return &domain.UserProgress{
		ID:                id,
		TotalWordsLearned: r.TotalWordsLearned,
		CurrentStreak:     r.CurrentStreak,
		LongestStreak:     r.LongestStreak,
		TotalStudyTime:    time.Duration(r.TotalStudyMS) * time.Millisecond,
		Level:             r.Level,
		Experience:        r.Experience,
		DailyGoal:         r.DailyGoal,
		WeeklyGoal:        r.WeeklyGoal,
		LastStudyDate:     timePtr(r.LastStudyDate),
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
