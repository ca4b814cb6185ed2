package diff

import (
	"fmt"
	"html"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

const (
	// DefaultMaxLines bounds the summary so it fits downstream message limits.
	DefaultMaxLines = 10

	contextLines = 2
)

// Summarizer computes a bounded, addition-biased summary of the delta
// between two text snapshots and classifies whether it is relevant.
// The relevance predicate is injected so vocabularies can vary per target.
type Summarizer struct {
	MaxLines int
	Match    Matcher
}

// Summarize returns a human-readable diff block and a relevance flag.
//
// With no prior text the first MaxLines lines of the new text are shown as
// additions. Otherwise a line-level unified diff is computed and only
// addition lines survive, plus context lines that follow at least one
// collected addition; removals and leading context are noise to the
// notification consumer and are dropped.
func (s Summarizer) Summarize(oldText, newText string) (string, bool) {
	maxLines := s.MaxLines
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}

	if oldText == "" {
		return s.summarizeFirstRun(newText, maxLines)
	}

	unified, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(oldText),
		B:        difflib.SplitLines(newText),
		FromFile: "previous",
		ToFile:   "current",
		Context:  contextLines,
	})
	if err != nil || unified == "" {
		return "📝 Content changed but no clear diff available", false
	}

	var (
		kept        []string
		hasAddition bool
		relevant    bool
	)
	for _, line := range strings.Split(unified, "\n") {
		switch {
		case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "@@"):
			// file and hunk headers
		case strings.HasPrefix(line, "+"):
			hasAddition = true
			kept = append(kept, line)
			if s.match(strings.TrimSpace(line[1:])) {
				relevant = true
			}
		case strings.HasPrefix(line, " ") && hasAddition:
			kept = append(kept, line)
		}
	}

	if !hasAddition {
		return "📝 Content changed (no new information detected)", false
	}

	if len(kept) > maxLines {
		kept = kept[:maxLines]
	}
	for i, line := range kept {
		kept[i] = html.EscapeString(line)
	}

	return "📝 New information:\n<code>" + strings.Join(kept, "\n") + "</code>", relevant
}

// summarizeFirstRun handles the no-prior-snapshot case: the head of the new
// text is the whole summary, and relevance reflects that truncated window.
func (s Summarizer) summarizeFirstRun(newText string, maxLines int) (string, bool) {
	lines := strings.Split(newText, "\n")
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📝 New content (first %d lines):", len(lines))
	for _, line := range lines {
		b.WriteString("\n+ ")
		b.WriteString(html.EscapeString(line))
	}

	return b.String(), s.match(strings.Join(lines, "\n"))
}

func (s Summarizer) match(text string) bool {
	return s.Match != nil && s.Match(text)
}
