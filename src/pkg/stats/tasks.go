// Package stats derives counts, completion rates and streaks from the
// archived history.
package stats

import (
	"sort"
	"time"

	"dailyfocus/local-app/src/pkg/calendar"
	"dailyfocus/local-app/src/pkg/model"
	"dailyfocus/local-app/src/pkg/task"
)

// DayPoint is one bar of the completed/incomplete chart.
type DayPoint struct {
	Date       string `json:"date"`
	Completed  int    `json:"completed"`
	Incomplete int    `json:"incomplete"`
}

// RatePoint is one point of the completion-rate chart.
type RatePoint struct {
	Date string `json:"date"`
	Rate int    `json:"rate"`
}

// Streaks counts runs of consecutive fully completed days.
type Streaks struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// Summary is everything the statistics view shows for a window.
type Summary struct {
	Days      int         `json:"days"`
	Completed int         `json:"completed"`
	Total     int         `json:"total"`
	Rate      int         `json:"rate"`
	Series    []DayPoint  `json:"series"`
	Rates     []RatePoint `json:"rates"`
	Streaks   Streaks     `json:"streaks"`
}

// Entries returns the history entries sorted by date, most recent first.
func Entries(history model.TaskHistory) []model.HistoryEntry {
	out := make([]model.HistoryEntry, 0, len(history))
	for key, e := range history {
		if e.Date == "" {
			e.Date = key
		}
		out = append(out, e)
	}
	sortDescending(out)
	return out
}

// InWindow keeps the entries dated within the last days calendar days,
// today included. days <= 0 keeps everything.
func InWindow(entries []model.HistoryEntry, now time.Time, days int) []model.HistoryEntry {
	if days <= 0 {
		return entries
	}
	cutoff := calendar.DaysAgo(now, days-1)
	out := make([]model.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		if e.Date >= cutoff {
			out = append(out, e)
		}
	}
	return out
}

// Totals sums the frozen root counts of the entries.
func Totals(entries []model.HistoryEntry) task.Counts {
	var c task.Counts
	for _, e := range entries {
		c.Completed += e.Completed
		c.Total += e.Total
	}
	return c
}

// DaySeries returns one point per entry, oldest first.
func DaySeries(entries []model.HistoryEntry) []DayPoint {
	sorted := ascending(entries)
	out := make([]DayPoint, len(sorted))
	for i, e := range sorted {
		out[i] = DayPoint{Date: e.Date, Completed: e.Completed, Incomplete: e.Total - e.Completed}
	}
	return out
}

// RateSeries returns the completion rate of each entry, oldest first.
func RateSeries(entries []model.HistoryEntry) []RatePoint {
	sorted := ascending(entries)
	out := make([]RatePoint, len(sorted))
	for i, e := range sorted {
		out[i] = RatePoint{Date: e.Date, Rate: rate(e)}
	}
	return out
}

// CalculateStreaks walks the entries from the most recent one. A day counts
// only when every root task was completed; a day without tasks breaks the run.
func CalculateStreaks(entries []model.HistoryEntry) Streaks {
	sorted := make([]model.HistoryEntry, len(entries))
	copy(sorted, entries)
	sortDescending(sorted)

	var s Streaks
	run := 0
	leading := true
	for _, e := range sorted {
		if rate(e) == 100 {
			run++
			if run > s.Longest {
				s.Longest = run
			}
			if leading {
				s.Current = run
			}
			continue
		}
		run = 0
		leading = false
	}
	return s
}

// Summarize computes the statistics of the last days calendar days, or of the
// whole history when days <= 0.
func Summarize(history model.TaskHistory, now time.Time, days int) Summary {
	entries := InWindow(Entries(history), now, days)
	totals := Totals(entries)
	return Summary{
		Days:      days,
		Completed: totals.Completed,
		Total:     totals.Total,
		Rate:      totals.Rate(),
		Series:    DaySeries(entries),
		Rates:     RateSeries(entries),
		Streaks:   CalculateStreaks(entries),
	}
}

func rate(e model.HistoryEntry) int {
	return task.Counts{Completed: e.Completed, Total: e.Total}.Rate()
}

func sortDescending(entries []model.HistoryEntry) {
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date > entries[j].Date })
}

func ascending(entries []model.HistoryEntry) []model.HistoryEntry {
	out := make([]model.HistoryEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
