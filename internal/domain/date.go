package domain

import (
	"strings"
	"time"
)

var dateLayouts = []string{
	"02-01-2006",
	"02.01.2006",
	"02/01/2006",
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05.000000Z",
	"2006-01-02 15:04:05",
	"02.01.2006, 15:04:05",
	"02.01.2006 15:04",
}

// ParseDate understands the DD-MM-YYYY form the API uses for listings,
// the ru-RU locale form and ISO timestamps.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DaysBetween returns the number of whole days from `from` to `to`, never negative.
func DaysBetween(from, to time.Time) int {
	d := to.Sub(from)
	if d < 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}
