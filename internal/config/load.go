package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "LEXIS"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.request_timeout", "30s")

	v.SetDefault("database.driver", "memory")
	v.SetDefault("database.url", "")

	v.SetDefault("scheduler.mastery_threshold", 0.70)
	v.SetDefault("scheduler.min_learning_count", 3)
	v.SetDefault("scheduler.review_interval", "24h")
	v.SetDefault("scheduler.difficult_threshold", 0.5)
	v.SetDefault("scheduler.new_word_target", 15)
	v.SetDefault("scheduler.review_word_target", 5)
	v.SetDefault("scheduler.quiz_size", 10)
	v.SetDefault("scheduler.review_session_size", 20)
	v.SetDefault("scheduler.quiz_option_count", 4)

	v.SetDefault("progress.timezone", "Local")
	v.SetDefault("progress.daily_goal", 20)
	v.SetDefault("progress.weekly_goal", 100)
	v.SetDefault("progress.history_limit", 100)
}

// Load reads configuration from defaults, ./config.yaml when present and the
// environment. Environment variables take precedence over the file.
func Load() (*Config, error) {
	return load("")
}

// LoadFile is Load with an explicit config file path.
func LoadFile(path string) (*Config, error) {
	return load(path)
}

func load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	if _, err := cfg.Progress.Location(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: invalid progress.timezone: %w", err)
	}

	return &cfg, nil
}
