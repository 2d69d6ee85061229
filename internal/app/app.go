package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"ReviewInsights/internal/config"
	"ReviewInsights/internal/infrastructure/csvsource"
	"ReviewInsights/internal/infrastructure/llm"
	"ReviewInsights/internal/infrastructure/ml"
	"ReviewInsights/internal/infrastructure/scheduler"
	"ReviewInsights/internal/infrastructure/scraper"
	"ReviewInsights/internal/infrastructure/storage"
	"ReviewInsights/internal/infrastructure/telegram"
	"ReviewInsights/internal/logging"
	"ReviewInsights/internal/ports"
	"ReviewInsights/internal/scanner"
	"ReviewInsights/internal/sentiment"
	"ReviewInsights/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg        config.Config
	logger     *slog.Logger
	db         *sql.DB
	repository *storage.SQLiteRepository
	pipeline   *usecase.Pipeline
	scheduler  ports.Scheduler
}

// New builds a runnable application instance from configuration.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	db, err := storage.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	repository := storage.NewSQLiteRepository(db, cfg.Banks, baseLogger.With("component", "storage"))

	var source ports.ReviewSource
	if cfg.Input.CSVPath != "" {
		source = csvsource.NewSource(cfg.Input.CSVPath, baseLogger.With("component", "csvsource"))
	} else {
		registry := scanner.NewRegistry()
		registry.Register(scraper.NewPlayStoreScraper(nil, baseLogger.With("component", "scraper.playstore")))
		source = scraper.NewStrategySource(registry, cfg.Stores, baseLogger.With("component", "source"))
	}
	if cfg.Input.RawDumpPath != "" {
		source = csvsource.NewDumpingSource(source, cfg.Input.RawDumpPath, baseLogger.With("component", "csvdump"))
	}

	classifier := sentiment.FromModel(
		ml.NewClient(cfg.Inference.SentimentURL, cfg.Inference.APIKey),
		baseLogger.With("component", "sentiment"))

	var translator ports.Translator
	if cfg.Inference.TranslateURL != "" {
		translator = ml.NewTranslator(cfg.Inference.TranslateURL, cfg.Inference.APIKey)
	}

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.BotToken != "" {
		notifier = telegram.NewNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID)
	}

	var recommender ports.Recommender
	if cfg.OpenAI.APIKey != "" {
		recommender = llm.NewRecommender(cfg.OpenAI)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:         source,
		Repository:     repository,
		Classifier:     classifier,
		Translator:     translator,
		Notifier:       notifier,
		Recommender:    recommender,
		Logger:         baseLogger.With("component", "pipeline"),
		TopK:           cfg.Analysis.TopKeywords,
		TopN:           cfg.Analysis.TopThemes,
		EmojiOverrides: cfg.Analysis.EmojiOverrides,
	})

	return &Application{
		cfg:        cfg,
		logger:     baseLogger,
		db:         db,
		repository: repository,
		pipeline:   pipeline,
		scheduler:  scheduler.NewCronScheduler(cfg.Scheduler.CronExpression, cfg.Scheduler.Location()),
	}, nil
}

// Run bootstraps storage, then either executes one batch or hands the
// batch job to the cron scheduler and blocks until ctx is cancelled.
func (a *Application) Run(ctx context.Context) error {
	defer a.close()

	if err := a.repository.InitSchema(ctx); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}

	if !a.cfg.Scheduler.Enabled {
		_, err := a.pipeline.Run(ctx)
		return err
	}

	job := func(now time.Time) {
		a.logger.Info("scheduled batch starting", "at", now.Format(time.RFC3339))
		if _, err := a.pipeline.Run(ctx); err != nil {
			a.logger.Error("scheduled batch failed", "error", err)
		}
	}
	if err := a.scheduler.Start(ctx, job); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return a.scheduler.Stop(stopCtx)
}

func (a *Application) close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("close database", "error", err)
		}
	}
}
