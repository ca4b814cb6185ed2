package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"PageWatcher/internal/domain"
)

func TestCheckHistoryRoundtrip(t *testing.T) {
	t.Parallel()

	history, err := OpenCheckHistory(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("OpenCheckHistory: %v", err)
	}
	defer history.Close()

	ctx := context.Background()
	checkedAt := time.Date(2026, time.August, 23, 10, 30, 0, 0, time.UTC)

	records := []domain.CheckRecord{
		{PageName: "Informazioni", URL: "https://example.org/a", State: domain.StateNoChange, Fingerprint: "aaa", CheckedAt: checkedAt},
		{PageName: "Home", URL: "https://example.org/b", State: domain.StateSkipped, Fingerprint: "bbb", Detail: "no relevant keywords in additions", CheckedAt: checkedAt.Add(time.Minute)},
		{PageName: "Cinema", URL: "https://example.org/c", State: domain.StateError, Detail: "timeout", CheckedAt: checkedAt.Add(2 * time.Minute)},
	}
	for _, rec := range records {
		if err := history.SaveCheck(ctx, rec); err != nil {
			t.Fatalf("SaveCheck: %v", err)
		}
	}

	recent, err := history.RecentChecks(ctx, 2)
	if err != nil {
		t.Fatalf("RecentChecks: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recent))
	}

	if recent[0].PageName != "Cinema" || recent[0].State != domain.StateError {
		t.Fatalf("newest record first, got %+v", recent[0])
	}
	if recent[0].Detail != "timeout" {
		t.Fatalf("detail lost: %q", recent[0].Detail)
	}
	if recent[1].PageName != "Home" || recent[1].Fingerprint != "bbb" {
		t.Fatalf("unexpected second record: %+v", recent[1])
	}
	if !recent[1].CheckedAt.Equal(checkedAt.Add(time.Minute)) {
		t.Fatalf("timestamp lost: %v", recent[1].CheckedAt)
	}
}

func TestCheckHistoryEmpty(t *testing.T) {
	t.Parallel()

	history, err := OpenCheckHistory(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("OpenCheckHistory: %v", err)
	}
	defer history.Close()

	recent, err := history.RecentChecks(context.Background(), 10)
	if err != nil {
		t.Fatalf("RecentChecks: %v", err)
	}
	if len(recent) != 0 {
		t.Fatalf("expected no records, got %d", len(recent))
	}
}
