// Package textutil prepares raw catalog text for terminal display.
package textutil

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var stripPolicy = bluemonday.StrictPolicy()

// CleanDescription strips markup from a raw description, decodes HTML
// entities and collapses runs of whitespace into single spaces.
func CleanDescription(raw string) string {
	if raw == "" {
		return ""
	}
	stripped := stripPolicy.Sanitize(raw)
	decoded := html.UnescapeString(stripped)
	return strings.Join(strings.Fields(decoded), " ")
}

// Truncate shortens s to at most max runes, appending an ellipsis when
// anything was cut.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return strings.TrimRight(string(runes[:max-1]), " ") + "…"
}
