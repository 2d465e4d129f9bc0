// Package app assembles configuration, adapters, and the pipeline into a
// runnable application.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/TruthStack/hackathon-deadline-tracker/internal/config"
	"github.com/TruthStack/hackathon-deadline-tracker/internal/domain"
	"github.com/TruthStack/hackathon-deadline-tracker/internal/infrastructure/notify"
	"github.com/TruthStack/hackathon-deadline-tracker/internal/infrastructure/scheduler"
	"github.com/TruthStack/hackathon-deadline-tracker/internal/infrastructure/scraper"
	"github.com/TruthStack/hackathon-deadline-tracker/internal/infrastructure/storage"
	"github.com/TruthStack/hackathon-deadline-tracker/internal/logging"
	"github.com/TruthStack/hackathon-deadline-tracker/internal/metrics"
	"github.com/TruthStack/hackathon-deadline-tracker/internal/ports"
	"github.com/TruthStack/hackathon-deadline-tracker/internal/scrape"
	"github.com/TruthStack/hackathon-deadline-tracker/internal/usecase"
)

// shutdownTimeout bounds teardown of the scheduler and metrics listener.
const shutdownTimeout = 5 * time.Second

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	pipeline *usecase.Pipeline
	recorder *metrics.Recorder
	store    ports.HistoryStore
}

// New builds a fully wired application instance. The context bounds any
// connection setup the history backend performs.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	recorder := metrics.NewRecorder()

	registry := scrape.NewRegistry()
	registry.Register(scraper.NewDevpostScraper(nil))
	registry.Register(scraper.NewTrackedFile())
	registry.Register(scraper.NewPageScraper(nil, baseLogger.With("component", "scraper.page")))

	source := scraper.NewStrategySource(registry, cfg.Sources, recorder,
		baseLogger.With("component", "source"))

	store, err := storage.FromConfig(ctx, cfg.History, baseLogger.With("component", "history"))
	if err != nil {
		return nil, fmt.Errorf("history store: %w", err)
	}

	notifier, err := notify.FromConfig(notify.Config{
		Backends:       cfg.Notifications.Backends,
		TelegramToken:  cfg.Notifications.Telegram.BotToken,
		TelegramChatID: cfg.Notifications.Telegram.ChatID,
		SlackWebhook:   cfg.Notifications.Slack.WebhookURL,
	})
	if err != nil {
		closeStore(store)
		return nil, fmt.Errorf("notifier: %w", err)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:   source,
		History:  store,
		Notifier: notifier,
		Metrics:  recorder,
		Logger:   baseLogger.With("component", "pipeline"),
		TopN:     cfg.Urgency.TopN,
	})

	return &Application{
		cfg:      cfg,
		logger:   baseLogger,
		pipeline: pipeline,
		recorder: recorder,
		store:    store,
	}, nil
}

// RunOnce executes a single alert cycle. The configured dry-run setting
// applies unless the caller already forced it on.
func (a *Application) RunOnce(ctx context.Context, opts usecase.RunOptions) (usecase.Summary, error) {
	opts.DryRun = opts.DryRun || a.cfg.DryRun
	return a.pipeline.Run(ctx, time.Now(), opts)
}

// FetchScored returns the full classified ranking of active hackathons
// without gating or touching history.
func (a *Application) FetchScored(ctx context.Context, now time.Time) ([]domain.ScoredHackathon, error) {
	return a.pipeline.FetchScored(ctx, now)
}

// Watch runs the pipeline on the configured cadence until the context is
// canceled, serving Prometheus metrics when an address is configured.
func (a *Application) Watch(ctx context.Context) error {
	driver := scheduler.NewTickerScheduler(a.cfg.Scheduler.Interval())
	sched := usecase.NewScheduler(driver, a.pipeline,
		usecase.RunOptions{DryRun: a.cfg.DryRun},
		a.logger.With("component", "scheduler"))

	var srv *http.Server
	if a.cfg.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", a.recorder.Handler())
		srv = &http.Server{Addr: a.cfg.Metrics.Addr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("metrics listener failed", "addr", a.cfg.Metrics.Addr, "error", err)
			}
		}()
		a.logger.Info("metrics listening", "addr", a.cfg.Metrics.Addr)
	}

	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	a.logger.Info("watching deadlines", "every", a.cfg.Scheduler.Interval().String())

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := sched.Stop(stopCtx); err != nil {
		a.logger.Warn("scheduler stop", "error", err)
	}
	if srv != nil {
		if err := srv.Shutdown(stopCtx); err != nil {
			a.logger.Warn("metrics shutdown", "error", err)
		}
	}
	return nil
}

// Close releases backend connections held by the history store.
func (a *Application) Close() error {
	return closeStore(a.store)
}

func closeStore(store ports.HistoryStore) error {
	if closer, ok := store.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
