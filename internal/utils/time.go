package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/studyplan/internal/constants"
)

// DateKey formats t as YYYY-MM-DD using t's own calendar fields.
// No UTC conversion happens, so late-evening local times keep their local date.
func DateKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// FromDateKey parses a YYYY-MM-DD key into local midnight of that date.
// Empty or unparsable input yields the current time rather than an error.
func FromDateKey(key string) time.Time {
	if key == "" {
		return time.Now()
	}
	t, err := ParseDateInLocation(key, time.Local)
	if err != nil {
		return time.Now()
	}
	return t
}

// ParseDateKey is the strict counterpart of FromDateKey.
func ParseDateKey(key string) (time.Time, error) {
	t, err := ParseDateInLocation(key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", key, err)
	}
	return t, nil
}

// IsSameDay reports whether a and b share year, month and day.
func IsSameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// IsToday reports whether t falls on the current local date.
func IsToday(t time.Time) bool {
	return IsSameDay(t, time.Now())
}

// StartOfDay returns midnight of t in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// MondayOffset returns how many days t lies after the most recent Monday (0..6).
func MondayOffset(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// WeekRange returns the Monday (midnight) and Sunday (midnight) of the week containing t.
func WeekRange(t time.Time) (time.Time, time.Time) {
	start := StartOfDay(t).AddDate(0, 0, -MondayOffset(t))
	return start, start.AddDate(0, 0, 6)
}

// FirstOfMonth returns midnight on the first day of t's month.
func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// AddMonths moves to the first of the month delta months away.
// Anchoring on day 1 keeps Jan 31 + 1 month in February.
func AddMonths(t time.Time, delta int) time.Time {
	return FirstOfMonth(t).AddDate(0, delta, 0)
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, timeStr)
}

// ParseDateInLocation parses a date string (YYYY-MM-DD) in the specified timezone.
func ParseDateInLocation(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// ParseMonth parses YYYY-MM into the first of that month in loc.
func ParseMonth(monthStr string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.MonthFormat, monthStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q (expected YYYY-MM): %w", monthStr, err)
	}
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc), nil
}

// CombineDateAndTime combines a date string (YYYY-MM-DD) and time string (HH:MM)
// into a single time.Time in the specified timezone.
func CombineDateAndTime(dateStr, timeStr string, loc *time.Location) (time.Time, error) {
	date, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %w", err)
	}

	timeOfDay, err := time.Parse(constants.TimeFormat, timeStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time format: %w", err)
	}

	return time.Date(
		date.Year(), date.Month(), date.Day(),
		timeOfDay.Hour(), timeOfDay.Minute(), 0, 0,
		loc,
	), nil
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := ParseTime(timeStr)
	return err == nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
