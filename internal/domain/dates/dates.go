// Package dates parses heterogeneous date strings into ISO-8601.
package dates

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ISO is the only output layout: YYYY-MM-DD.
const ISO = "2006-01-02"

// layouts are tried in order before falling back to the generic parser.
// US month-first is tried before day-first, matching the dominant source.
var layouts = []string{
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
}

// Parse converts a raw date string to YYYY-MM-DD. The ordered layout list is
// tried first, then a generic parse; when everything fails it returns
// ("", false). The output is never partial or ambiguous.
func Parse(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(ISO), true
		}
	}
	if t, err := dateparse.ParseAny(s); err == nil {
		return t.Format(ISO), true
	}
	return "", false
}
