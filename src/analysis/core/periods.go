package core

import (
	"strings"
	"time"
)

// DateLayout is the canonical period and bar date format.
const DateLayout = "2006-01-02"

var periodLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"20060102",
}

// -----------------------------------------------------------------------------

// ParsePeriod parses a date-like period label.
func ParsePeriod(period string) (time.Time, bool) {
	s := strings.TrimSpace(period)
	for _, layout := range periodLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// -----------------------------------------------------------------------------

// CanonicalPeriod renders a date-like period as 2006-01-02 and returns
// anything else unchanged.
func CanonicalPeriod(period string) string {
	if t, ok := ParsePeriod(period); ok {
		return t.Format(DateLayout)
	}
	return period
}

// -----------------------------------------------------------------------------

// ComparePeriods orders date-like periods chronologically, ahead of
// non-date labels which compare as strings. Undated labels such as "TTM"
// are trailing aggregates, so they sort after every dated quarter and
// occupy the newest slots of a trailing window.
func ComparePeriods(a, b string) int {
	ta, okA := ParsePeriod(a)
	tb, okB := ParsePeriod(b)

	switch {
	case okA && okB:
		if c := ta.Compare(tb); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	case okA:
		return -1
	case okB:
		return 1
	}
	return strings.Compare(a, b)
}
