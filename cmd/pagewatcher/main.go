package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"PageWatcher/internal/app"
	"PageWatcher/internal/config"
	"PageWatcher/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	watch := flag.Bool("watch", false, "keep running on the configured cron schedule instead of checking once")
	historyLimit := flag.Int("history", 0, "print the latest N check records and exit")
	flag.Parse()

	// Credentials may live in a local .env file.
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	application := app.New(cfg, logger)
	defer application.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case *historyLimit > 0:
		records, err := application.RecentChecks(ctx, *historyLimit)
		if err != nil {
			logger.Error("read check history", "error", err)
			return 1
		}
		for _, rec := range records {
			fmt.Printf("%s  %-10s %-30s %s\n",
				rec.CheckedAt.Format("2006-01-02 15:04:05"), rec.State, rec.PageName, rec.Detail)
		}
		return 0

	case *watch:
		if err := application.Watch(ctx); err != nil {
			logger.Error("watch mode stopped", "error", err)
			return 1
		}
		return 0

	default:
		report, err := application.Run(ctx)
		if err != nil {
			logger.Error("run aborted", "error", err)
			return 1
		}
		logger.Info("run finished",
			"checked", report.Checked,
			"changes", len(report.Changes),
			"fetch_errors", len(report.Errors))
		if report.Failed() {
			return 1
		}
		return 0
	}
}
