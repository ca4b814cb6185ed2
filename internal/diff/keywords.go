package diff

import "strings"

// Matcher decides whether a piece of text makes a change notification-worthy.
type Matcher func(text string) bool

// Keywords builds a Matcher doing case-insensitive substring matching
// against a fixed vocabulary.
func Keywords(words []string) Matcher {
	lowered := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			lowered = append(lowered, w)
		}
	}

	return func(text string) bool {
		text = strings.ToLower(text)
		for _, w := range lowered {
			if strings.Contains(text, w) {
				return true
			}
		}
		return false
	}
}
