// Package progress rolls completed study sessions up into the learner's
// progress record: streaks, totals, experience and achievements.
package progress

import (
	"time"

	"github.com/phrazzld/lexis/internal/domain"
)

// Experience awarded per session answer.
const (
	ExperiencePerCorrect = 10
	ExperiencePerStudied = 2
	ExperiencePerLevel   = 500
)

// calendarDaysBetween returns the number of calendar days from a to b in loc.
func calendarDaysBetween(a, b time.Time, loc *time.Location) int {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

// UpdateStreak returns a copy of p with the streak advanced for a study at now.
//
// Same calendar day: unchanged. Exactly one day after the last study: the
// current streak grows and the longest streak follows it. Any longer gap, or
// no previous study: the current streak restarts at 1. LastStudyDate moves
// to now unless now is earlier than it, in which case p is returned
// unchanged.
func UpdateStreak(p *domain.UserProgress, now time.Time, loc *time.Location) *domain.UserProgress {
	if loc == nil {
		loc = time.Local
	}
	updated := p.Clone()

	if updated.LastStudyDate != nil && now.Before(*updated.LastStudyDate) {
		return updated
	}

	if updated.LastStudyDate == nil {
		updated.CurrentStreak = 1
	} else {
		switch days := calendarDaysBetween(*updated.LastStudyDate, now, loc); {
		case days == 1:
			updated.CurrentStreak++
			if updated.CurrentStreak > updated.LongestStreak {
				updated.LongestStreak = updated.CurrentStreak
			}
		case days > 1:
			updated.CurrentStreak = 1
		}
	}

	studied := now
	updated.LastStudyDate = &studied
	return updated
}

// RecordSessionCompletion returns a copy of p with a sealed session added:
// words studied, study time and experience are accumulated, the level is
// recomputed and the streak advanced at the session's end time.
func RecordSessionCompletion(p *domain.UserProgress, s *domain.StudySession, loc *time.Location) (*domain.UserProgress, error) {
	if s == nil || !s.IsCompleted || s.EndTime == nil {
		return nil, domain.ErrInvalidSession
	}

	updated := p.Clone()
	updated.TotalWordsLearned += s.WordsStudied
	if d := s.Duration(); d > 0 {
		updated.TotalStudyTime += d
	}
	updated.Experience += s.CorrectAnswers*ExperiencePerCorrect + s.WordsStudied*ExperiencePerStudied
	updated.Level = levelFor(updated.Experience)

	updated = UpdateStreak(updated, *s.EndTime, loc)
	updated.UpdatedAt = *s.EndTime
	return updated, nil
}

func levelFor(experience int) int {
	return 1 + experience/ExperiencePerLevel
}
