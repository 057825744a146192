package consolidate

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Normalizer turns mention and relation surfaces into comparison keys:
// trimmed, Unicode case-folded, internal whitespace collapsed to single
// spaces. A cases.Caser is stateful, so a Normalizer must not be shared
// between goroutines; each document consolidation creates its own.
type Normalizer struct {
	fold cases.Caser
}

// NewNormalizer returns a Normalizer for one consolidation pass.
func NewNormalizer() *Normalizer {
	return &Normalizer{fold: cases.Fold()}
}

// Key returns the comparison key for s. An empty key means s has no
// comparable content and the value should be treated as malformed.
func (n *Normalizer) Key(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = n.fold.String(s)
	return whitespaceRe.ReplaceAllString(s, " ")
}

// Surface cleans a string for output without destroying its casing:
// trimmed, internal whitespace collapsed.
func (n *Normalizer) Surface(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return whitespaceRe.ReplaceAllString(s, " ")
}
