package testutils

import (
	"fmt"
	"time"

	"github.com/phrazzld/lexis/internal/domain"
)

// NewWord returns a valid, never-studied word for headword.
func NewWord(headword string) *domain.Word {
	return &domain.Word{
		Headword:     headword,
		Translation:  "t-" + headword,
		PartOfSpeech: "noun",
		Difficulty:   domain.DifficultyBeginner,
		CreatedAt:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// LearnedWord returns a mastered word last studied at lastStudy.
func LearnedWord(headword string, lastStudy time.Time) *domain.Word {
	w := NewWord(headword)
	w.LearningCount = 3
	w.CorrectCount = 3
	w.IsLearned = true
	w.LastStudyDate = &lastStudy
	return w
}

// StudiedWord returns an unlearned word with the given statistics.
func StudiedWord(headword string, learning, correct int, lastStudy time.Time) *domain.Word {
	w := NewWord(headword)
	w.LearningCount = learning
	w.CorrectCount = correct
	w.LastStudyDate = &lastStudy
	return w
}

// Corpus returns n new words named prefix-00, prefix-01, ...
func Corpus(prefix string, n int) []*domain.Word {
	out := make([]*domain.Word, n)
	for i := range out {
		out[i] = NewWord(fmt.Sprintf("%s-%02d", prefix, i))
	}
	return out
}

// MixedCorpus builds 20 words: 15 new, 5 learned of which the first two were
// studied two days before now and the other three an hour before now.
func MixedCorpus(now time.Time) []*domain.Word {
	words := Corpus("new", 15)
	for i := 0; i < 5; i++ {
		last := now.Add(-time.Hour)
		if i < 2 {
			last = now.Add(-48 * time.Hour)
		}
		words = append(words, LearnedWord(fmt.Sprintf("learned-%02d", i), last))
	}
	return words
}

// Headwords returns the headwords of words in order.
func Headwords(words []*domain.Word) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = w.Headword
	}
	return out
}
