package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekID_SameForMondayAndSunday(t *testing.T) {
	monday := time.Date(2025, 10, 13, 9, 0, 0, 0, time.UTC)
	sunday := time.Date(2025, 10, 19, 23, 0, 0, 0, time.UTC)

	assert.Equal(t, "2025-W42", WeekID(monday))
	assert.Equal(t, WeekID(monday), WeekID(sunday))
	assert.Equal(t, "2025-W43", WeekID(sunday.Add(2*time.Hour)))
}

func TestWeekID_YearBoundary(t *testing.T) {
	// 2024-12-30 is a Monday in ISO week 1 of 2025.
	assert.Equal(t, "2025-W01", WeekID(time.Date(2024, 12, 30, 12, 0, 0, 0, time.UTC)))
	// 2021-01-03 is a Sunday still in 2020-W53.
	assert.Equal(t, "2020-W53", WeekID(time.Date(2021, 1, 3, 12, 0, 0, 0, time.UTC)))
}

func TestWeekBounds(t *testing.T) {
	start, end, err := WeekBounds("2025-W42")
	require.NoError(t, err)
	assert.Equal(t, "2025-10-13", start)
	assert.Equal(t, "2025-10-19", end)

	start, end, err = WeekBounds("2025-W01")
	require.NoError(t, err)
	assert.Equal(t, "2024-12-30", start)
	assert.Equal(t, "2025-01-05", end)
}

func TestParseWeekID_Invalid(t *testing.T) {
	for _, id := range []string{"", "2025", "2025-42", "2025-W00", "2025-W54"} {
		_, _, err := ParseWeekID(id)
		assert.Error(t, err, id)
	}
}

func TestAddWeeks(t *testing.T) {
	next, err := NextWeek("2025-W52")
	require.NoError(t, err)
	assert.Equal(t, "2026-W01", next)

	prev, err := PreviousWeek("2025-W01")
	require.NoError(t, err)
	assert.Equal(t, "2024-W52", prev)

	moved, err := AddWeeks("2025-W10", 5)
	require.NoError(t, err)
	assert.Equal(t, "2025-W15", moved)
}

func TestWeeksBetween(t *testing.T) {
	weeks, err := WeeksBetween("2025-W51", "2026-W02")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-W51", "2025-W52", "2026-W01", "2026-W02"}, weeks)

	weeks, err = WeeksBetween("2025-W05", "2025-W04")
	require.NoError(t, err)
	assert.Empty(t, weeks)
}

func TestWeekFormatting(t *testing.T) {
	assert.Equal(t, "Week 42, 2025", FormatWeekID("2025-W42"))
	assert.Equal(t, "Oct 13 - 19, 2025", WeekRangeString("2025-W42"))
	assert.Equal(t, "Sep 29 - Oct 5, 2025", WeekRangeString("2025-W40"))
	assert.Equal(t, "Week 42, 2025 (Oct 13 - 19, 2025)", WeekDisplayString("2025-W42"))
}

func TestIsFutureWeek(t *testing.T) {
	now := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	assert.True(t, IsFutureWeek("2025-W43", now))
	assert.False(t, IsFutureWeek("2025-W42", now))
	assert.False(t, IsFutureWeek("2024-W50", now))
}
