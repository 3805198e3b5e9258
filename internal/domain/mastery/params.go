package mastery

import (
	"fmt"
	"time"

	"github.com/phrazzld/lexis/internal/domain"
)

// Params defines the thresholds used by the mastery rules.
type Params struct {
	// MasteryThreshold is the minimum accuracy for a word to become learned.
	MasteryThreshold float64
	// MinLearningCount is the minimum number of presentations before a word
	// can become learned.
	MinLearningCount int
	// ReviewInterval is how long after its last study a learned word is due again.
	ReviewInterval time.Duration
	// DifficultThreshold is the accuracy below which a studied word is difficult.
	DifficultThreshold float64
}

// ParamsConfig allows overriding the default parameters. Zero values keep
// the default.
type ParamsConfig struct {
	MasteryThreshold   float64
	MinLearningCount   int
	ReviewInterval     time.Duration
	DifficultThreshold float64
}

// NewDefaultParams returns the canonical thresholds: 70% accuracy over at
// least three presentations, one day between reviews.
func NewDefaultParams() *Params {
	return &Params{
		MasteryThreshold:   0.70,
		MinLearningCount:   3,
		ReviewInterval:     24 * time.Hour,
		DifficultThreshold: 0.5,
	}
}

// NewParams creates Params from config, falling back to defaults for unset fields.
func NewParams(config ParamsConfig) (*Params, error) {
	params := NewDefaultParams()

	if config.MasteryThreshold != 0 {
		params.MasteryThreshold = config.MasteryThreshold
	}
	if config.MinLearningCount != 0 {
		params.MinLearningCount = config.MinLearningCount
	}
	if config.ReviewInterval != 0 {
		params.ReviewInterval = config.ReviewInterval
	}
	if config.DifficultThreshold != 0 {
		params.DifficultThreshold = config.DifficultThreshold
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}
	return params, nil
}

// Validate checks that every threshold is in range.
func (p *Params) Validate() error {
	if p.MasteryThreshold <= 0 || p.MasteryThreshold > 1 {
		return fmt.Errorf("%w: mastery threshold %v out of range (0, 1]", domain.ErrValidation, p.MasteryThreshold)
	}
	if p.MinLearningCount < 1 {
		return fmt.Errorf("%w: minimum learning count must be at least 1", domain.ErrValidation)
	}
	if p.ReviewInterval <= 0 {
		return fmt.Errorf("%w: review interval must be positive", domain.ErrValidation)
	}
	if p.DifficultThreshold <= 0 || p.DifficultThreshold > 1 {
		return fmt.Errorf("%w: difficult threshold %v out of range (0, 1]", domain.ErrValidation, p.DifficultThreshold)
	}
	return nil
}
