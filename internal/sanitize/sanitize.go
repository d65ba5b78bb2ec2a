// Package sanitize strips markup from free-text inputs before they are
// validated or stored: participant names, message bodies and the acting
// identity taken from the User header.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// policy strips every tag; only text content survives.
var policy = bluemonday.StrictPolicy()

// Clean removes HTML markup and trims surrounding whitespace.
// It never rejects input: a string that is empty after stripping is
// returned as "" and must be caught by validation, not here.
func Clean(s string) string {
	// bluemonday escapes entities in the surviving text; unescape so
	// "&amp;" round-trips back to "&" for plain-text storage.
	return strings.TrimSpace(html.UnescapeString(policy.Sanitize(s)))
}
