package extract

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Text converts raw markup into normalized visible text. Script, style and
// noscript subtrees are dropped before extraction. Parsing is best effort:
// malformed markup yields whatever text survives, never an error.
func Text(markup string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return ""
	}

	doc.Find("script, style, noscript").Remove()

	return normalize(doc.Text())
}

// normalize trims each line, splits runs of internal double spaces into
// separate fragments (inline elements often concatenate that way), drops
// empty fragments and rejoins with single newlines.
func normalize(text string) string {
	var fragments []string
	for _, line := range strings.Split(text, "\n") {
		for _, fragment := range strings.Split(line, "  ") {
			fragment = strings.TrimSpace(fragment)
			if fragment != "" {
				fragments = append(fragments, fragment)
			}
		}
	}
	return strings.Join(fragments, "\n")
}

// Fingerprint returns the hex SHA-256 digest of the text. It is used only
// for cheap snapshot equality, not for security.
func Fingerprint(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
