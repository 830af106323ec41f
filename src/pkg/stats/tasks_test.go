package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"dailyfocus/local-app/src/pkg/model"
)

func entry(date string, completed, total int) model.HistoryEntry {
	return model.HistoryEntry{Date: date, Tasks: []model.Task{}, Completed: completed, Total: total}
}

func history(entries ...model.HistoryEntry) model.TaskHistory {
	h := model.TaskHistory{}
	for _, e := range entries {
		h[e.Date] = e
	}
	return h
}

func TestCalculateStreaks_RecentRun(t *testing.T) {
	entries := Entries(history(
		entry("2024-01-01", 1, 2),
		entry("2024-01-03", 3, 3),
		entry("2024-01-02", 2, 2),
	))

	assert.Equal(t, Streaks{Current: 2, Longest: 2}, CalculateStreaks(entries))
}

func TestCalculateStreaks_LongestInThePast(t *testing.T) {
	entries := []model.HistoryEntry{
		entry("2024-01-05", 1, 2),
		entry("2024-01-04", 2, 2),
		entry("2024-01-03", 2, 2),
		entry("2024-01-02", 1, 1),
		entry("2024-01-01", 0, 0),
	}
	assert.Equal(t, Streaks{Current: 0, Longest: 3}, CalculateStreaks(entries))
}

func TestCalculateStreaks_EmptyDayBreaksRun(t *testing.T) {
	entries := []model.HistoryEntry{entry("2024-01-02", 0, 0), entry("2024-01-01", 1, 1)}
	assert.Equal(t, Streaks{Current: 0, Longest: 1}, CalculateStreaks(entries))
	assert.Equal(t, Streaks{}, CalculateStreaks(nil))
}

func TestSummarize_Window(t *testing.T) {
	now := time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC)
	h := history(
		entry("2024-01-10", 1, 1),
		entry("2024-01-04", 1, 3),
		entry("2024-01-03", 2, 2),
	)

	s := Summarize(h, now, 7)
	assert.Equal(t, 2, s.Completed)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 50, s.Rate)
	assert.Equal(t, []DayPoint{
		{Date: "2024-01-04", Completed: 1, Incomplete: 2},
		{Date: "2024-01-10", Completed: 1, Incomplete: 0},
	}, s.Series)
	assert.Equal(t, []RatePoint{{Date: "2024-01-04", Rate: 33}, {Date: "2024-01-10", Rate: 100}}, s.Rates)

	all := Summarize(h, now, 0)
	assert.Equal(t, 6, all.Total)
	assert.Equal(t, 67, all.Rate)
}

func TestSummarize_EmptyHistory(t *testing.T) {
	s := Summarize(model.TaskHistory{}, time.Now(), 30)
	assert.Zero(t, s.Total)
	assert.Zero(t, s.Rate)
	assert.Empty(t, s.Series)
}

func TestEntries_FillsDateFromKey(t *testing.T) {
	h := model.TaskHistory{"2024-02-01": {Completed: 1, Total: 1}}
	assert.Equal(t, "2024-02-01", Entries(h)[0].Date)
}
