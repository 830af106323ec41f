package calendar

import (
	"fmt"
	"time"
)

// WeekID returns the ISO 8601 week identifier of t, formatted YYYY-Www.
// Weeks start on Monday and week 1 contains the year's first Thursday.
func WeekID(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// ParseWeekID splits a YYYY-Www identifier into its ISO year and week.
func ParseWeekID(id string) (year, week int, err error) {
	if _, err := fmt.Sscanf(id, "%4d-W%2d", &year, &week); err != nil {
		return 0, 0, fmt.Errorf("invalid week id %q: %w", id, err)
	}
	if week < 1 || week > 53 {
		return 0, 0, fmt.Errorf("invalid week id %q: week out of range", id)
	}
	return year, week, nil
}

// WeekStart returns the Monday of the given week, as a UTC date.
func WeekStart(id string) (time.Time, error) {
	year, week, err := ParseWeekID(id)
	if err != nil {
		return time.Time{}, err
	}
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	offset := (int(jan4.Weekday()) + 6) % 7
	weekOneMonday := jan4.AddDate(0, 0, -offset)
	return weekOneMonday.AddDate(0, 0, (week-1)*7), nil
}

// WeekEnd returns the Sunday of the given week, as a UTC date.
func WeekEnd(id string) (time.Time, error) {
	start, err := WeekStart(id)
	if err != nil {
		return time.Time{}, err
	}
	return start.AddDate(0, 0, 6), nil
}

// WeekBounds returns the Monday and Sunday of a week as date keys.
func WeekBounds(id string) (start, end string, err error) {
	s, err := WeekStart(id)
	if err != nil {
		return "", "", err
	}
	return DateKey(s), DateKey(s.AddDate(0, 0, 6)), nil
}

// AddWeeks moves a week id by n weeks, n may be negative.
func AddWeeks(id string, n int) (string, error) {
	start, err := WeekStart(id)
	if err != nil {
		return "", err
	}
	return WeekID(start.AddDate(0, 0, 7*n)), nil
}

// PreviousWeek returns the week before id.
func PreviousWeek(id string) (string, error) {
	return AddWeeks(id, -1)
}

// NextWeek returns the week after id.
func NextWeek(id string) (string, error) {
	return AddWeeks(id, 1)
}

// WeeksBetween lists every week id from start to end, both included.
func WeeksBetween(start, end string) ([]string, error) {
	if _, _, err := ParseWeekID(end); err != nil {
		return nil, err
	}
	var weeks []string
	current := start
	for current <= end {
		weeks = append(weeks, current)
		next, err := NextWeek(current)
		if err != nil {
			return nil, err
		}
		current = next
	}
	return weeks, nil
}

// IsFutureWeek reports whether id lies after the week containing now.
func IsFutureWeek(id string, now time.Time) bool {
	return id > WeekID(now)
}

// FormatWeekID renders 2025-W42 as "Week 42, 2025".
func FormatWeekID(id string) string {
	year, week, err := ParseWeekID(id)
	if err != nil {
		return id
	}
	return fmt.Sprintf("Week %02d, %d", week, year)
}

// WeekRangeString renders the Monday to Sunday span, e.g. "Oct 13 - 19, 2025".
func WeekRangeString(id string) string {
	start, err := WeekStart(id)
	if err != nil {
		return id
	}
	end := start.AddDate(0, 0, 6)
	if start.Month() == end.Month() {
		return fmt.Sprintf("%s %d - %d, %d", start.Format("Jan"), start.Day(), end.Day(), end.Year())
	}
	return fmt.Sprintf("%s %d - %s %d, %d", start.Format("Jan"), start.Day(), end.Format("Jan"), end.Day(), end.Year())
}

// WeekDisplayString combines the week label and its date span.
func WeekDisplayString(id string) string {
	return fmt.Sprintf("%s (%s)", FormatWeekID(id), WeekRangeString(id))
}
