package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/lexis/internal/config"
	"github.com/phrazzld/lexis/internal/domain/mastery"
	"github.com/phrazzld/lexis/internal/events"
	"github.com/phrazzld/lexis/internal/progress"
	"github.com/phrazzld/lexis/internal/selection"
	"github.com/phrazzld/lexis/internal/service"
	"github.com/phrazzld/lexis/internal/session"
	"github.com/phrazzld/lexis/internal/wordstore"
)

// application holds the wired dependencies of the server.
type application struct {
	config  *config.Config
	logger  *slog.Logger
	storage *storage

	words           *wordstore.Store
	eventEmitter    *events.InMemoryEventEmitter
	aggregator      *progress.Aggregator
	learningService service.LearningService
}

// newApplication builds the scheduler on top of an opened storage backend
// and loads the vocabulary into memory.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, repos *storage) (*application, error) {
	app := &application{
		config:  cfg,
		logger:  logger,
		storage: repos,
	}

	params, err := mastery.NewParams(mastery.ParamsConfig{
		MasteryThreshold:   cfg.Scheduler.MasteryThreshold,
		MinLearningCount:   cfg.Scheduler.MinLearningCount,
		ReviewInterval:     cfg.Scheduler.ReviewInterval,
		DifficultThreshold: cfg.Scheduler.DifficultThreshold,
	})
	if err != nil {
		return nil, fmt.Errorf("invalid mastery parameters: %w", err)
	}
	policy := mastery.NewPolicyWithParams(params)

	app.words = wordstore.New(repos.words, policy, logger)
	if err := app.words.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load words: %w", err)
	}
	logger.Info("Vocabulary loaded", "words", app.words.Count())

	selector, err := selection.NewSelector(policy, selection.Config{
		NewWordTarget:     cfg.Scheduler.NewWordTarget,
		ReviewWordTarget:  cfg.Scheduler.ReviewWordTarget,
		QuizSize:          cfg.Scheduler.QuizSize,
		ReviewSessionSize: cfg.Scheduler.ReviewSessionSize,
		QuizOptionCount:   cfg.Scheduler.QuizOptionCount,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create selector: %w", err)
	}

	loc, err := cfg.Progress.Location()
	if err != nil {
		return nil, fmt.Errorf("invalid progress timezone: %w", err)
	}

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.aggregator = progress.NewAggregator(repos.progress, logger,
		progress.WithLocation(loc),
		progress.WithGoals(cfg.Progress.DailyGoal, cfg.Progress.WeeklyGoal),
		progress.WithEmitter(app.eventEmitter))
	app.eventEmitter.RegisterHandler(app.aggregator)

	runner := session.NewRunner(app.words, policy, repos.sessions, logger,
		session.WithEmitter(app.eventEmitter))

	app.learningService = service.NewLearningService(
		app.words,
		selector,
		runner,
		repos.sessions,
		app.aggregator,
		logger,
		service.WithHistoryLimit(cfg.Progress.HistoryLimit),
	)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run serves HTTP until ctx is canceled.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
