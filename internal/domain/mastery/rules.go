package mastery

import (
	"time"

	"github.com/phrazzld/lexis/internal/domain"
)

// recordAnswer returns a copy of w with one more presentation recorded.
//
// The copy's LearningCount is incremented, CorrectCount too when correct,
// and LastStudyDate is set to now. Mastery is then re-evaluated: the word
// becomes learned once accuracy reaches params.MasteryThreshold with at least
// params.MinLearningCount presentations. A learned word is never un-learned
// here, even if later answers pull its accuracy below the threshold.
func recordAnswer(w *domain.Word, correct bool, now time.Time, params *Params) *domain.Word {
	updated := w.Clone()

	updated.LearningCount++
	if correct {
		updated.CorrectCount++
	}
	studied := now
	updated.LastStudyDate = &studied

	if !updated.IsLearned && meetsMastery(updated, params) {
		updated.IsLearned = true
	}

	return updated
}

func meetsMastery(w *domain.Word, params *Params) bool {
	return w.LearningCount >= params.MinLearningCount &&
		w.Accuracy() >= params.MasteryThreshold
}

// isDueForReview is true for a learned word never studied or last studied at
// least params.ReviewInterval before now.
func isDueForReview(w *domain.Word, now time.Time, params *Params) bool {
	if !w.IsLearned {
		return false
	}
	if w.LastStudyDate == nil {
		return true
	}
	return now.Sub(*w.LastStudyDate) >= params.ReviewInterval
}

// isDifficult is true for a studied word whose accuracy is below the threshold.
func isDifficult(w *domain.Word, params *Params) bool {
	return w.LearningCount > 0 && w.Accuracy() < params.DifficultThreshold
}
