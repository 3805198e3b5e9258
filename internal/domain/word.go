package domain

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty is the ordered difficulty tier of a word, from 1 (easiest) to 5.
type Difficulty int

const (
	DifficultyBeginner Difficulty = iota + 1
	DifficultyElementary
	DifficultyIntermediate
	DifficultyUpperIntermediate
	DifficultyAdvanced
)

var difficultyNames = map[Difficulty]string{
	DifficultyBeginner:          "beginner",
	DifficultyElementary:        "elementary",
	DifficultyIntermediate:      "intermediate",
	DifficultyUpperIntermediate: "upper_intermediate",
	DifficultyAdvanced:          "advanced",
}

// IsValid reports whether d is one of the five defined tiers.
func (d Difficulty) IsValid() bool {
	return d >= DifficultyBeginner && d <= DifficultyAdvanced
}

func (d Difficulty) String() string {
	if name, ok := difficultyNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Difficulty(%d)", int(d))
}

// Word is a single vocabulary item together with its learning statistics.
// The Headword is the identity of the word and is compared case-sensitively.
type Word struct {
	Headword           string     `json:"headword"`
	Translation        string     `json:"translation"`
	Pronunciation      string     `json:"pronunciation,omitempty"`
	PartOfSpeech       string     `json:"part_of_speech,omitempty"`
	Example            string     `json:"example,omitempty"`
	ExampleTranslation string     `json:"example_translation,omitempty"`
	Difficulty         Difficulty `json:"difficulty"`

	LearningCount int        `json:"learning_count"`
	CorrectCount  int        `json:"correct_count"`
	IsLearned     bool       `json:"is_learned"`
	IsFavorited   bool       `json:"is_favorited"`
	LastStudyDate *time.Time `json:"last_study_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// NewWord creates a word with zeroed learning statistics.
// A zero difficulty defaults to DifficultyBeginner.
func NewWord(headword, translation string, difficulty Difficulty) (*Word, error) {
	if difficulty == 0 {
		difficulty = DifficultyBeginner
	}

	w := &Word{
		Headword:    strings.TrimSpace(headword),
		Translation: strings.TrimSpace(translation),
		Difficulty:  difficulty,
		CreatedAt:   time.Now().UTC(),
	}

	if err := w.Validate(); err != nil {
		return nil, err
	}

	return w, nil
}

// Validate checks the word's attributes and the statistics invariants.
func (w *Word) Validate() error {
	if strings.TrimSpace(w.Headword) == "" {
		return ErrEmptyHeadword
	}
	if strings.TrimSpace(w.Translation) == "" {
		return ErrEmptyTranslation
	}
	if !w.Difficulty.IsValid() {
		return ErrInvalidDifficulty
	}
	if w.LearningCount < 0 || w.CorrectCount < 0 {
		return ErrNegativeCount
	}
	if w.CorrectCount > w.LearningCount {
		return ErrCorrectExceedsTotal
	}
	return nil
}

// Accuracy returns CorrectCount / LearningCount, or 0 for a word never studied.
func (w *Word) Accuracy() float64 {
	if w.LearningCount == 0 {
		return 0
	}
	return float64(w.CorrectCount) / float64(w.LearningCount)
}

// IsNew reports whether the word has never been presented.
func (w *Word) IsNew() bool {
	return w.LearningCount == 0
}

// Clone returns a deep copy of the word.
func (w *Word) Clone() *Word {
	c := *w
	if w.LastStudyDate != nil {
		t := *w.LastStudyDate
		c.LastStudyDate = &t
	}
	return &c
}

// Matches reports whether query occurs, ignoring case, in the headword,
// translation or part of speech. An empty query matches every word.
func (w *Word) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(w.Headword), q) ||
		strings.Contains(strings.ToLower(w.Translation), q) ||
		strings.Contains(strings.ToLower(w.PartOfSpeech), q)
}
