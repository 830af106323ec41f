package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateKeyUsesLocation(t *testing.T) {
	instant := time.Date(2024, 1, 2, 3, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-02", DateKey(instant))

	behind := time.FixedZone("UTC-5", -5*3600)
	assert.Equal(t, "2024-01-01", DateKey(instant.In(behind)))
}

func TestFormatHeading(t *testing.T) {
	assert.Equal(t, "Tuesday, January 2, 2024", FormatHeading("2024-01-02"))
	assert.Equal(t, "not-a-date", FormatHeading("not-a-date"))
}

func TestDaysAgoAndBetween(t *testing.T) {
	now := time.Date(2024, 3, 1, 22, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-02-28", DaysAgo(now, 2))

	days, err := DaysBetween("2024-03-01", "2024-02-28")
	require.NoError(t, err)
	assert.Equal(t, 2, days)

	_, err = DaysBetween("bad", "2024-02-28")
	assert.Error(t, err)
}

func TestParseDateKey(t *testing.T) {
	got, err := ParseDateKey("2024-05-06", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, "2024-05", MonthKey(got))
}
