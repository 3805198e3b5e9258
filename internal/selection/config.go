package selection

import (
	"fmt"

	"github.com/phrazzld/lexis/internal/domain"
)

// Config sets the size of each kind of session.
type Config struct {
	NewWordTarget     int
	ReviewWordTarget  int
	QuizSize          int
	ReviewSessionSize int
	// QuizOptionCount is the number of choices offered per quiz question,
	// the correct translation included.
	QuizOptionCount int
}

// DefaultConfig returns 15 new + 5 review words per learning session,
// 10-question quizzes with 4 choices and 20-word review sessions.
func DefaultConfig() Config {
	return Config{
		NewWordTarget:     15,
		ReviewWordTarget:  5,
		QuizSize:          10,
		ReviewSessionSize: 20,
		QuizOptionCount:   4,
	}
}

// Validate rejects negative targets and degenerate quiz settings.
func (c Config) Validate() error {
	if c.NewWordTarget < 0 || c.ReviewWordTarget < 0 {
		return fmt.Errorf("%w: word targets cannot be negative", domain.ErrValidation)
	}
	if c.NewWordTarget+c.ReviewWordTarget == 0 {
		return fmt.Errorf("%w: learning sessions need a positive word target", domain.ErrValidation)
	}
	if c.QuizSize < 1 || c.ReviewSessionSize < 1 {
		return fmt.Errorf("%w: session sizes must be at least 1", domain.ErrValidation)
	}
	if c.QuizOptionCount < 2 {
		return fmt.Errorf("%w: quizzes need at least 2 options", domain.ErrValidation)
	}
	return nil
}
