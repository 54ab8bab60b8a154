package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-08")
	require.NoError(t, err)

	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 8, d.Day())
	assert.Equal(t, "Asia/Riyadh", d.Location().String())
}

func TestParseDate_Invalid(t *testing.T) {
	cases := []string{"", "08-03-2025", "2025-13-01", "2025-02-30", "not a date"}
	for _, c := range cases {
		_, err := ParseDate(c)
		assert.Error(t, err, "input %q", c)
	}
}

func TestFormatDate_RoundTrip(t *testing.T) {
	d, err := ParseDate("2025-01-04")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-04", FormatDate(d))
}

func TestWeekdayIndex(t *testing.T) {
	// 2025-03-08 is a Saturday, 2025-03-05 a Wednesday.
	sat, _ := ParseDate("2025-03-08")
	wed, _ := ParseDate("2025-03-05")
	sun, _ := ParseDate("2025-03-09")

	assert.Equal(t, 6, WeekdayIndex(sat))
	assert.Equal(t, 3, WeekdayIndex(wed))
	assert.Equal(t, 0, WeekdayIndex(sun))
}

func TestMonthOf(t *testing.T) {
	d, _ := ParseDate("2025-07-30")
	assert.Equal(t, 7, MonthOf(d))
}

func TestCheckInClock(t *testing.T) {
	// 04:45 UTC is 07:45 in the center timezone.
	utc := time.Date(2025, 3, 8, 4, 45, 0, 0, time.UTC)
	assert.Equal(t, "07:45", CheckInClock(utc))
}

func TestEndOfMonth(t *testing.T) {
	d := Date(2025, 2, 10)
	end := EndOfMonth(d)
	assert.Equal(t, 28, end.Day())
	assert.Equal(t, time.February, end.Month())
}

func TestSameDay_AcrossZones(t *testing.T) {
	// 23:30 UTC on the 7th is already the 8th in the center timezone.
	utcEvening := time.Date(2025, 3, 7, 23, 30, 0, 0, time.UTC)
	centerMorning := Date(2025, 3, 8)
	assert.True(t, SameDay(utcEvening, centerMorning))
}
