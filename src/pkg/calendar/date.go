// Package calendar provides the date keys and ISO week identifiers used to
// decide rollovers and to group history.
package calendar

import (
	"fmt"
	"time"
)

const (
	// DateKeyLayout is the layout of a calendar-date key.
	DateKeyLayout = "2006-01-02"
	// HeadingLayout is how a date key is shown as a heading.
	HeadingLayout = "Monday, January 2, 2006"
	monthKeyLayout = "2006-01"
)

// DateKey returns the calendar date of t in t's own location.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// MonthKey returns the YYYY-MM month of t in t's own location.
func MonthKey(t time.Time) string {
	return t.Format(monthKeyLayout)
}

// ParseDateKey parses a date key as midnight in loc.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateKeyLayout, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	return t, nil
}

// FormatHeading renders a date key for display. Unparseable keys are returned as-is.
func FormatHeading(key string) string {
	t, err := time.Parse(DateKeyLayout, key)
	if err != nil {
		return key
	}
	return t.Format(HeadingLayout)
}

// StartOfDay returns midnight of t's calendar date in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysAgo returns the date key n calendar days before now.
func DaysAgo(now time.Time, n int) string {
	return DateKey(StartOfDay(now).AddDate(0, 0, -n))
}

// DaysBetween returns the absolute number of calendar days between two date keys.
func DaysBetween(a, b string) (int, error) {
	ta, err := time.Parse(DateKeyLayout, a)
	if err != nil {
		return 0, fmt.Errorf("invalid date key %q: %w", a, err)
	}
	tb, err := time.Parse(DateKeyLayout, b)
	if err != nil {
		return 0, fmt.Errorf("invalid date key %q: %w", b, err)
	}
	days := int(tb.Sub(ta).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days, nil
}
