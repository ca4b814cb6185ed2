package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"PageWatcher/internal/domain"
	"PageWatcher/internal/ports"
)

const checksSchema = `
CREATE TABLE IF NOT EXISTS checks (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	page_name   TEXT NOT NULL,
	url         TEXT NOT NULL,
	state       TEXT NOT NULL,
	fingerprint TEXT NOT NULL DEFAULT '',
	detail      TEXT NOT NULL DEFAULT '',
	checked_at  TEXT NOT NULL
)`

// CheckHistory appends per-page check outcomes to a SQLite file. It is an
// audit trail only: failures here never affect the run outcome.
type CheckHistory struct {
	db *sql.DB
}

var _ ports.CheckRepository = (*CheckHistory)(nil)

// OpenCheckHistory opens (creating if needed) the history database at path.
func OpenCheckHistory(path string) (*CheckHistory, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	if _, err := db.Exec(checksSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create checks table: %w", err)
	}

	return &CheckHistory{db: db}, nil
}

// SaveCheck appends one record.
func (h *CheckHistory) SaveCheck(ctx context.Context, rec domain.CheckRecord) error {
	if h.db == nil {
		return nil
	}

	_, err := sq.Insert("checks").
		Columns("page_name", "url", "state", "fingerprint", "detail", "checked_at").
		Values(rec.PageName, rec.URL, string(rec.State), rec.Fingerprint, rec.Detail,
			rec.CheckedAt.UTC().Format(time.RFC3339Nano)).
		RunWith(h.db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("insert check: %w", err)
	}

	return nil
}

// RecentChecks returns up to limit records, newest first.
func (h *CheckHistory) RecentChecks(ctx context.Context, limit int) ([]domain.CheckRecord, error) {
	if h.db == nil || limit <= 0 {
		return nil, nil
	}

	rows, err := sq.Select("page_name", "url", "state", "fingerprint", "detail", "checked_at").
		From("checks").
		OrderBy("id DESC").
		Limit(uint64(limit)).
		RunWith(h.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query checks: %w", err)
	}
	defer rows.Close()

	var records []domain.CheckRecord
	for rows.Next() {
		var (
			rec       domain.CheckRecord
			state     string
			checkedAt string
		)
		if err := rows.Scan(&rec.PageName, &rec.URL, &state, &rec.Fingerprint, &rec.Detail, &checkedAt); err != nil {
			return nil, fmt.Errorf("scan check: %w", err)
		}
		rec.State = domain.CheckState(state)
		if ts, err := time.Parse(time.RFC3339Nano, checkedAt); err == nil {
			rec.CheckedAt = ts
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return records, nil
}

// Close releases the underlying database handle.
func (h *CheckHistory) Close() error {
	if h.db == nil {
		return nil
	}
	return h.db.Close()
}
