package progress

import (
	"fmt"
	"time"

	"github.com/phrazzld/lexis/internal/domain"
)

// Achievement thresholds.
var WordMilestones = []int{1, 10, 50, 100, 500, 1000}

const (
	StreakTarget         = 7
	PeakAccuracyTarget   = 0.9
	SpeedTargetPerMinute = 1.0
)

// Achievement is the evaluated state of one badge.
type Achievement struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Unlocked    bool    `json:"unlocked"`
	Progress    float64 `json:"progress"`
}

// Evaluate recomputes every achievement from progress and session history.
// Nothing is persisted; the result depends only on the inputs.
func Evaluate(p *domain.UserProgress, sessions []*domain.StudySession, now time.Time, loc *time.Location) []Achievement {
	if loc == nil {
		loc = time.Local
	}

	out := make([]Achievement, 0, len(WordMilestones)+4)
	for _, n := range WordMilestones {
		out = append(out, threshold(
			fmt.Sprintf("words_%d", n),
			fmt.Sprintf("%d words", n),
			fmt.Sprintf("Study %d words", n),
			float64(p.TotalWordsLearned), float64(n)))
	}

	out = append(out, threshold("streak_7", "Week streak",
		fmt.Sprintf("Study %d days in a row", StreakTarget),
		float64(p.CurrentStreak), StreakTarget))

	out = append(out, threshold("accuracy_90", "Sharpshooter",
		"Finish a session with at least 90% accuracy",
		peakAccuracy(sessions), PeakAccuracyTarget))

	goal := p.DailyGoal
	if goal < 1 {
		goal = domain.DefaultDailyGoal
	}
	out = append(out, threshold("daily_goal", "Daily goal",
		fmt.Sprintf("Study %d words today", goal),
		float64(studiedOn(sessions, now, loc)), float64(goal)))

	out = append(out, threshold("speed", "Quick learner",
		"Study at least one word per minute in a session",
		bestPace(sessions), SpeedTargetPerMinute))

	return out
}

func threshold(id, title, description string, value, target float64) Achievement {
	progress := 1.0
	if target > 0 {
		progress = value / target
	}
	if progress > 1 {
		progress = 1
	}
	if progress < 0 {
		progress = 0
	}
	return Achievement{
		ID:          id,
		Title:       title,
		Description: description,
		Unlocked:    value >= target,
		Progress:    progress,
	}
}

// peakAccuracy is the highest StudySession.Accuracy among sessions with questions.
func peakAccuracy(sessions []*domain.StudySession) float64 {
	var peak float64
	for _, s := range sessions {
		if s.TotalQuestions > 0 && s.Accuracy() > peak {
			peak = s.Accuracy()
		}
	}
	return peak
}

// studiedOn sums words studied in sessions started on now's calendar day.
func studiedOn(sessions []*domain.StudySession, now time.Time, loc *time.Location) int {
	var total int
	for _, s := range sessions {
		if calendarDaysBetween(s.StartTime, now, loc) == 0 {
			total += s.WordsStudied
		}
	}
	return total
}

// bestPace is the highest words-per-minute among sealed sessions.
func bestPace(sessions []*domain.StudySession) float64 {
	var best float64
	for _, s := range sessions {
		d := s.Duration()
		if !s.IsCompleted || d <= 0 {
			continue
		}
		if pace := float64(s.WordsStudied) / d.Minutes(); pace > best {
			best = pace
		}
	}
	return best
}
