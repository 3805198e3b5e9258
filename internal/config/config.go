package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"    validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"  validate:"required"`
	Scheduler SchedulerConfig `mapstructure:"scheduler" validate:"required"`
	Progress  ProgressConfig  `mapstructure:"progress"  validate:"required"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port           int           `mapstructure:"port"            validate:"required,gt=0,lt=65536"`
	LogLevel       string        `mapstructure:"log_level"       validate:"required,oneof=debug info warn error"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"gt=0"`
}

// DatabaseConfig selects the persistence backend. URL is a file path for
// sqlite and a DSN for postgres; the memory driver ignores it.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=memory sqlite postgres"`
	URL    string `mapstructure:"url"    validate:"required_unless=Driver memory"`
}

// SchedulerConfig holds the mastery thresholds and session sizes.
type SchedulerConfig struct {
	MasteryThreshold   float64       `mapstructure:"mastery_threshold"   validate:"gt=0,lte=1"`
	MinLearningCount   int           `mapstructure:"min_learning_count"  validate:"gte=1"`
	ReviewInterval     time.Duration `mapstructure:"review_interval"     validate:"gt=0"`
	DifficultThreshold float64       `mapstructure:"difficult_threshold" validate:"gt=0,lte=1"`
	NewWordTarget      int           `mapstructure:"new_word_target"     validate:"gte=0"`
	ReviewWordTarget   int           `mapstructure:"review_word_target"  validate:"gte=0"`
	QuizSize           int           `mapstructure:"quiz_size"           validate:"gte=1"`
	ReviewSessionSize  int           `mapstructure:"review_session_size" validate:"gte=1"`
	QuizOptionCount    int           `mapstructure:"quiz_option_count"   validate:"min=2,max=8"`
}

// ProgressConfig holds progress and achievement settings.
type ProgressConfig struct {
	// Timezone is the IANA zone used to compare calendar days for streaks.
	Timezone     string `mapstructure:"timezone"      validate:"required"`
	DailyGoal    int    `mapstructure:"daily_goal"    validate:"gte=1"`
	WeeklyGoal   int    `mapstructure:"weekly_goal"   validate:"gte=1"`
	HistoryLimit int    `mapstructure:"history_limit" validate:"gte=1"`
}

// Location resolves Timezone.
func (p ProgressConfig) Location() (*time.Location, error) {
	return time.LoadLocation(p.Timezone)
}
