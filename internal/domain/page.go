package domain

import "time"

// PageTarget is a single monitored page, fixed at configuration time.
type PageTarget struct {
	Name     string
	URL      string
	CacheKey string
}

// ChangeEvent describes a notification-worthy change detected on a page.
type ChangeEvent struct {
	PageName    string
	URL         string
	Fingerprint string
	Diff        string
}

// FetchError records a page that could not be fetched during a run.
type FetchError struct {
	PageName string
	URL      string
	Detail   string
}

// CheckState enumerates the terminal outcomes of a single page check.
type CheckState string

const (
	StateNoChange CheckState = "no-change"
	StateNotified CheckState = "notified"
	StateSkipped  CheckState = "skipped"
	StateError    CheckState = "error"
)

// CheckRecord is the audit entry persisted per page per run.
type CheckRecord struct {
	PageName    string
	URL         string
	State       CheckState
	Fingerprint string
	Detail      string
	CheckedAt   time.Time
}

// RunReport aggregates the outcome of one full pass over all targets.
type RunReport struct {
	Started time.Time
	Checked int
	Changes []ChangeEvent
	Errors  []FetchError
}

// Failed reports whether at least one fetch failed; it drives the exit code.
func (r RunReport) Failed() bool {
	return len(r.Errors) > 0
}
