package domain

import (
	"time"

	"github.com/google/uuid"
)

// Progress defaults applied by NewUserProgress.
const (
	DefaultLevel      = 1
	DefaultDailyGoal  = 20
	DefaultWeeklyGoal = 100
)

// UserProgress is the single progress record of the learner.
type UserProgress struct {
	ID                uuid.UUID     `json:"id"`
	TotalWordsLearned int           `json:"total_words_learned"`
	CurrentStreak     int           `json:"current_streak"`
	LongestStreak     int           `json:"longest_streak"`
	TotalStudyTime    time.Duration `json:"total_study_time"`
	Level             int           `json:"level"`
	Experience        int           `json:"experience"`
	DailyGoal         int           `json:"daily_goal"`
	WeeklyGoal        int           `json:"weekly_goal"`
	LastStudyDate     *time.Time    `json:"last_study_date,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// NewUserProgress creates a fresh progress record. Non-positive goals fall
// back to the defaults.
func NewUserProgress(dailyGoal, weeklyGoal int, now time.Time) *UserProgress {
	if dailyGoal <= 0 {
		dailyGoal = DefaultDailyGoal
	}
	if weeklyGoal <= 0 {
		weeklyGoal = DefaultWeeklyGoal
	}
	return &UserProgress{
		ID:         uuid.New(),
		Level:      DefaultLevel,
		DailyGoal:  dailyGoal,
		WeeklyGoal: weeklyGoal,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Validate checks that counters are non-negative and goals are set.
func (p *UserProgress) Validate() error {
	if p.ID == uuid.Nil {
		return ErrInvalidProgress
	}
	if p.TotalWordsLearned < 0 || p.CurrentStreak < 0 || p.LongestStreak < 0 ||
		p.TotalStudyTime < 0 || p.Experience < 0 {
		return ErrInvalidProgress
	}
	if p.Level < 1 || p.DailyGoal < 1 || p.WeeklyGoal < 1 {
		return ErrInvalidProgress
	}
	return nil
}

// Clone returns a deep copy of the progress record.
func (p *UserProgress) Clone() *UserProgress {
	c := *p
	if p.LastStudyDate != nil {
		t := *p.LastStudyDate
		c.LastStudyDate = &t
	}
	return &c
}
