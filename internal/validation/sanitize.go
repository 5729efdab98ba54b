package validation

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// maxCleanPasses bounds how many layers of entity encoding Clean unwraps
const maxCleanPasses = 4

// Sanitizer detects and strips markup in user supplied text
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates a sanitizer with bluemonday's strict policy
func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

// Clean removes every tag, including tags spelled with HTML entities, and
// returns plain text. Input that is still changing after maxCleanPasses is
// returned in its escaped form.
func (s *Sanitizer) Clean(text string) string {
	out := text
	for i := 0; i < maxCleanPasses; i++ {
		next := html.UnescapeString(s.policy.Sanitize(out))
		if next == out {
			return out
		}
		out = next
	}
	return s.policy.Sanitize(out)
}

// HasMarkup reports whether Clean would change text beyond newline normalisation
func (s *Sanitizer) HasMarkup(text string) bool {
	return s.Clean(text) != newlines.Replace(text)
}
