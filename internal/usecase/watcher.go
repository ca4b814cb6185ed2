package usecase

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"time"

	"PageWatcher/internal/diff"
	"PageWatcher/internal/domain"
	"PageWatcher/internal/extract"
	"PageWatcher/internal/ports"
)

// WatcherDeps wires all driven adapters into the watch orchestration.
type WatcherDeps struct {
	Targets          []domain.PageTarget
	Fetcher          ports.Fetcher
	Store            ports.SnapshotStore
	Notifier         ports.Notifier
	History          ports.CheckRepository
	Summarizer       diff.Summarizer
	NotifyAllChanges bool
	Logger           *slog.Logger
}

// Watcher implements the per-run check workflow: for every target,
// fetch, extract, compare against the cached snapshot, summarize and
// classify the change, persist, and finally fan out notifications.
type Watcher struct {
	targets    []domain.PageTarget
	fetcher    ports.Fetcher
	store      ports.SnapshotStore
	notifier   ports.Notifier
	history    ports.CheckRepository
	summarizer diff.Summarizer
	notifyAll  bool
	logger     *slog.Logger
}

// NewWatcher constructs the orchestration component.
func NewWatcher(deps WatcherDeps) *Watcher {
	return &Watcher{
		targets:    deps.Targets,
		fetcher:    deps.Fetcher,
		store:      deps.Store,
		notifier:   deps.Notifier,
		history:    deps.History,
		summarizer: deps.Summarizer,
		notifyAll:  deps.NotifyAllChanges,
		logger:     deps.Logger,
	}
}

// Run processes all targets sequentially and then delivers notifications:
// one message per change, then one per fetch error. Notification failures
// are logged and never alter the report.
func (w *Watcher) Run(ctx context.Context) (domain.RunReport, error) {
	report := domain.RunReport{Started: time.Now()}

	for _, target := range w.targets {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		rec := w.checkTarget(ctx, target, &report)
		report.Checked++

		if w.history != nil {
			if err := w.history.SaveCheck(ctx, rec); err != nil {
				w.warn("history record failed", "page", target.Name, "error", err)
			}
		}
	}

	for _, change := range report.Changes {
		w.send(ctx, change.PageName, buildChangeMessage(change))
	}
	for _, fetchErr := range report.Errors {
		w.send(ctx, fetchErr.PageName, buildErrorMessage(fetchErr))
	}

	return report, nil
}

func (w *Watcher) checkTarget(ctx context.Context, target domain.PageTarget, report *domain.RunReport) domain.CheckRecord {
	w.debug("checking page", "page", target.Name, "url", target.URL)

	rec := domain.CheckRecord{
		PageName:  target.Name,
		URL:       target.URL,
		CheckedAt: time.Now(),
	}

	oldText, err := w.store.Load(ctx, target.CacheKey)
	if err != nil {
		// A broken cache read degrades to first-run behavior.
		w.warn("snapshot load failed", "page", target.Name, "error", err)
		oldText = ""
	}

	markup, err := w.fetcher.Fetch(ctx, target.URL)
	if err != nil {
		w.warn("fetch failed", "page", target.Name, "error", err)
		report.Errors = append(report.Errors, domain.FetchError{
			PageName: target.Name,
			URL:      target.URL,
			Detail:   err.Error(),
		})
		rec.State = domain.StateError
		rec.Detail = err.Error()
		return rec
	}

	newText := extract.Text(markup)
	newFingerprint := extract.Fingerprint(newText)
	rec.Fingerprint = newFingerprint

	oldFingerprint := ""
	if oldText != "" {
		oldFingerprint = extract.Fingerprint(oldText)
	}

	switch {
	case oldFingerprint == newFingerprint, oldFingerprint == "" && newText == "":
		w.debug("no change detected", "page", target.Name)
		rec.State = domain.StateNoChange
	default:
		summary, relevant := w.summarizer.Summarize(oldText, newText)
		if relevant || w.notifyAll {
			w.info("change detected, will notify", "page", target.Name, "relevant", relevant)
			report.Changes = append(report.Changes, domain.ChangeEvent{
				PageName:    target.Name,
				URL:         target.URL,
				Fingerprint: newFingerprint,
				Diff:        summary,
			})
			rec.State = domain.StateNotified
		} else {
			w.info("change detected, no relevant keywords", "page", target.Name)
			rec.State = domain.StateSkipped
			rec.Detail = "no relevant keywords in additions"
		}
	}

	// The snapshot always reflects the most recently fetched text,
	// whether or not a notification goes out.
	if err := w.store.Save(ctx, target.CacheKey, newText); err != nil {
		w.warn("snapshot save failed", "page", target.Name, "error", err)
	}

	return rec
}

func (w *Watcher) send(ctx context.Context, page, message string) {
	if w.notifier == nil {
		return
	}
	if err := w.notifier.Send(ctx, message); err != nil {
		w.warn("notification send failed", "page", page, "error", err)
		return
	}
	w.debug("notification sent", "page", page)
}

func buildChangeMessage(change domain.ChangeEvent) string {
	name := html.EscapeString(change.PageName)
	return fmt.Sprintf(
		"🎫 <b>%s Update!</b>\n\nA change has been detected on the %s page.\n\n%s\n\n🔗 <a href=\"%s\">Check the page now</a>\n",
		name, name, change.Diff, change.URL)
}

func buildErrorMessage(fetchErr domain.FetchError) string {
	name := html.EscapeString(fetchErr.PageName)
	return fmt.Sprintf(
		"⚠️ <b>%s Watcher Error</b>\n\nFailed to fetch the %s page:\n<code>%s</code>\n\n🔗 <a href=\"%s\">Target URL</a>",
		name, name, html.EscapeString(fetchErr.Detail), fetchErr.URL)
}

func (w *Watcher) debug(msg string, args ...any) {
	if w.logger != nil {
		w.logger.Debug(msg, args...)
	}
}

func (w *Watcher) info(msg string, args ...any) {
	if w.logger != nil {
		w.logger.Info(msg, args...)
	}
}

func (w *Watcher) warn(msg string, args ...any) {
	if w.logger != nil {
		w.logger.Warn(msg, args...)
	}
}
