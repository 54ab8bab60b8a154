// Package timeutil provides timezone and calendar-date utilities for the
// center timezone (UTC+3). Attendance records carry day-granularity dates
// and a formatted check-in clock, both anchored to this zone.
// No external dependencies - uses only standard library.
package timeutil

import (
	"fmt"
	"time"
)

// CenterTZ is the timezone of the center (UTC+3, no DST).
// Saudi Arabia has never observed DST, so the offset is constant year-round.
var CenterTZ = time.FixedZone("Asia/Riyadh", 3*60*60)

// DateLayout is the wire format for record dates (day granularity).
const DateLayout = "2006-01-02"

// ClockLayout is the format for check-in times shown to supervisors.
const ClockLayout = "15:04"

// Now returns the current time in the center timezone.
func Now() time.Time {
	return time.Now().In(CenterTZ)
}

// ToCenter converts a time to the center timezone.
func ToCenter(t time.Time) time.Time {
	return t.In(CenterTZ)
}

// Date creates a midnight time in the center timezone for the given day.
func Date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, CenterTZ)
}

// FormatDate renders a time as a record date string.
func FormatDate(t time.Time) string {
	return ToCenter(t).Format(DateLayout)
}

// ParseDate parses a record date string into a midnight time in the
// center timezone. Returns an error for anything that is not a valid
// calendar date in DateLayout.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, CenterTZ)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// Today returns the current date as a record date string.
func Today() string {
	return FormatDate(Now())
}

// CheckInClock renders the given time as a check-in clock string.
func CheckInClock(t time.Time) string {
	return ToCenter(t).Format(ClockLayout)
}

// WeekdayIndex returns the weekday of a record date using the
// Sunday=0 .. Saturday=6 convention the schedule is written in.
func WeekdayIndex(t time.Time) int {
	return int(ToCenter(t).Weekday())
}

// MonthOf extracts the calendar month number (1-12) from a record date.
func MonthOf(t time.Time) int {
	return int(ToCenter(t).Month())
}

// CurrentMonth returns the current real-world calendar month (1-12)
// in the center timezone.
func CurrentMonth() int {
	return int(Now().Month())
}

// SameDay reports whether two times fall on the same calendar day
// in the center timezone.
func SameDay(a, b time.Time) bool {
	a, b = ToCenter(a), ToCenter(b)
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// StartOfDay returns midnight of the given day in the center timezone.
func StartOfDay(t time.Time) time.Time {
	c := ToCenter(t)
	return time.Date(c.Year(), c.Month(), c.Day(), 0, 0, 0, 0, CenterTZ)
}

// StartOfMonth returns midnight of the first day of the month.
func StartOfMonth(t time.Time) time.Time {
	c := ToCenter(t)
	return time.Date(c.Year(), c.Month(), 1, 0, 0, 0, 0, CenterTZ)
}

// EndOfMonth returns the last instant of the month in the center timezone.
func EndOfMonth(t time.Time) time.Time {
	start := StartOfMonth(t)
	next := start.AddDate(0, 1, 0)
	return next.Add(-time.Nanosecond)
}

// ToUTC converts a time to UTC. Entity timestamps (JoinedAt, CreatedAt)
// are stored in UTC; only display formatting uses the center zone.
func ToUTC(t time.Time) time.Time {
	return t.UTC()
}
