package ports

import (
	"context"
	"time"

	"PageWatcher/internal/domain"
)

// Fetcher retrieves the raw markup of a page.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (string, error)
}

// SnapshotStore persists the last observed text per cache key.
// Load returns an empty string when no snapshot exists yet.
type SnapshotStore interface {
	Load(ctx context.Context, key string) (string, error)
	Save(ctx context.Context, key, text string) error
}

// Notifier delivers a formatted message to the configured channel.
type Notifier interface {
	Send(ctx context.Context, message string) error
}

// CheckRepository keeps an audit trail of per-page check outcomes.
type CheckRepository interface {
	SaveCheck(ctx context.Context, rec domain.CheckRecord) error
	RecentChecks(ctx context.Context, limit int) ([]domain.CheckRecord, error)
}

// Scheduler controls when watch runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
