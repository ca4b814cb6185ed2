package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"PageWatcher/internal/config"
	"PageWatcher/internal/diff"
	"PageWatcher/internal/domain"
	"PageWatcher/internal/infrastructure/fetch"
	"PageWatcher/internal/infrastructure/scheduler"
	"PageWatcher/internal/infrastructure/storage"
	"PageWatcher/internal/infrastructure/telegram"
	"PageWatcher/internal/logging"
	"PageWatcher/internal/ports"
	"PageWatcher/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg     config.Config
	logger  *slog.Logger
	watcher *usecase.Watcher
	history *storage.CheckHistory
}

// New builds a runnable application instance from configuration.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	fetcher := fetch.NewClient(
		&http.Client{Timeout: cfg.Fetch.Timeout()},
		cfg.Fetch.UserAgent,
		cfg.Fetch.RatePerSecond,
	)

	store := storage.NewFileStore(cfg.Cache.Dir)

	notifier := telegram.NewNotifier(
		cfg.Notifications.Telegram.BotToken,
		cfg.Notifications.Telegram.ChannelID,
	)

	var (
		history     *storage.CheckHistory
		historyPort ports.CheckRepository
	)
	if cfg.History.Path != "" {
		opened, err := storage.OpenCheckHistory(cfg.History.Path)
		if err != nil {
			baseLogger.Warn("check history disabled", "path", cfg.History.Path, "error", err)
		} else {
			history = opened
			historyPort = opened
		}
	}

	watcher := usecase.NewWatcher(usecase.WatcherDeps{
		Targets:          targetsFromConfig(cfg.Pages),
		Fetcher:          fetcher,
		Store:            store,
		Notifier:         notifier,
		History:          historyPort,
		Summarizer:       diff.Summarizer{MaxLines: cfg.Diff.MaxLines, Match: diff.Keywords(cfg.Keywords)},
		NotifyAllChanges: cfg.Diff.NotifyAllChanges,
		Logger:           baseLogger.With("component", "watcher"),
	})

	return &Application{cfg: cfg, logger: baseLogger, watcher: watcher, history: history}
}

// Run performs a single watch pass over all configured pages.
func (a *Application) Run(ctx context.Context) (domain.RunReport, error) {
	return a.watcher.Run(ctx)
}

// Watch repeats the run on the configured cron schedule until ctx is done.
func (a *Application) Watch(ctx context.Context) error {
	driver := scheduler.NewCronScheduler(a.cfg.Scheduler.CronExpression, a.cfg.Scheduler.Location())
	runner := usecase.NewScheduler(driver, a.watcher, a.logger.With("component", "scheduler"))

	if err := runner.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return runner.Stop(stopCtx)
}

// RecentChecks reads the latest audit records, newest first.
func (a *Application) RecentChecks(ctx context.Context, limit int) ([]domain.CheckRecord, error) {
	if a.history == nil {
		return nil, nil
	}
	return a.history.RecentChecks(ctx, limit)
}

// Close releases held resources.
func (a *Application) Close() error {
	if a.history == nil {
		return nil
	}
	return a.history.Close()
}

func targetsFromConfig(pages []config.PageConfig) []domain.PageTarget {
	targets := make([]domain.PageTarget, 0, len(pages))
	for _, page := range pages {
		targets = append(targets, domain.PageTarget{
			Name:     page.Name,
			URL:      page.URL,
			CacheKey: page.CacheFile,
		})
	}
	return targets
}
