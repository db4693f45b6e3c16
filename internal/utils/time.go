package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/interviewdesk/internal/constants"
)

// ParseDate parses a date string in the standard format (YYYY-MM-DD) at
// midnight UTC.
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(constants.DateFormat, dateStr)
}

// FormatDate formats a time as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// Today returns today's date at midnight UTC, keeping the local calendar day.
func Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// TruncateDay drops the time-of-day component, keeping the calendar day.
func TruncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// StartOfWeek returns the first day of the week containing t, where weeks
// begin on weekStart.
func StartOfWeek(t time.Time, weekStart time.Weekday) time.Time {
	t = TruncateDay(t)
	offset := (int(t.Weekday()) - int(weekStart) + 7) % 7
	return t.AddDate(0, 0, -offset)
}

// EndOfWeek returns the last day of the week containing t.
func EndOfWeek(t time.Time, weekStart time.Weekday) time.Time {
	return StartOfWeek(t, weekStart).AddDate(0, 0, 6)
}

// WorkWeek returns Monday and Friday of the Monday-based week containing t.
func WorkWeek(t time.Time) (time.Time, time.Time) {
	monday := StartOfWeek(t, time.Monday)
	return monday, monday.AddDate(0, 0, 4)
}

// MonthBounds returns the first and last day of the month containing t.
func MonthBounds(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}

// ParseWeekday parses a weekday name ("sun", "monday") or number (0=Sunday).
func ParseWeekday(s string) (time.Weekday, error) {
	dayMap := map[string]time.Weekday{
		"sun":       time.Sunday,
		"sunday":    time.Sunday,
		"mon":       time.Monday,
		"monday":    time.Monday,
		"tue":       time.Tuesday,
		"tuesday":   time.Tuesday,
		"wed":       time.Wednesday,
		"wednesday": time.Wednesday,
		"thu":       time.Thursday,
		"thursday":  time.Thursday,
		"fri":       time.Friday,
		"friday":    time.Friday,
		"sat":       time.Saturday,
		"saturday":  time.Saturday,
	}

	part := strings.TrimSpace(strings.ToLower(s))
	if wd, ok := dayMap[part]; ok {
		return wd, nil
	}
	num, err := strconv.Atoi(part)
	if err == nil && num >= 0 && num <= 6 {
		return time.Weekday(num), nil
	}
	return 0, fmt.Errorf("invalid weekday: %s", s)
}

// ValidateClock reports whether s is a valid HH:MM:SS value.
func ValidateClock(s string) bool {
	_, _, _, err := parseClock(s)
	return err == nil
}

// NormalizeTime accepts HH:MM or HH:MM:SS and returns HH:MM:SS.
func NormalizeTime(s string) (string, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(constants.ShortClockFormat, s); err == nil {
		return t.Format(constants.ClockFormat), nil
	}
	t, err := time.Parse(constants.ClockFormat, s)
	if err != nil {
		return "", fmt.Errorf("invalid time %q, use HH:MM", s)
	}
	return t.Format(constants.ClockFormat), nil
}

// DurationUnit is the unit a duration was entered in.
type DurationUnit string

const (
	UnitMinutes DurationUnit = "minutes"
	UnitHours   DurationUnit = "hours"
)

// DurationFromValue converts a number of minutes or hours into the HH:MM:SS
// wire form. Hours may exceed 23.
func DurationFromValue(value string, unit DurationUnit) (string, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return "", fmt.Errorf("invalid duration %q: %w", value, err)
	}
	if n <= 0 {
		return "", fmt.Errorf("duration must be positive")
	}

	switch unit {
	case UnitMinutes:
		return fmt.Sprintf("%02d:%02d:00", n/60, n%60), nil
	case UnitHours:
		return fmt.Sprintf("%02d:00:00", n), nil
	default:
		return "", fmt.Errorf("unknown duration unit %q", unit)
	}
}

// SplitDuration converts an HH:MM:SS duration back into the value and unit a
// user would type: whole hours stay in hours, anything else becomes minutes.
func SplitDuration(duration string) (string, DurationUnit, error) {
	h, m, _, err := parseClock(duration)
	if err != nil {
		return "", "", err
	}
	if m == 0 {
		return strconv.Itoa(h), UnitHours, nil
	}
	return strconv.Itoa(h*60 + m), UnitMinutes, nil
}

// DurationMinutes returns the length of an HH:MM:SS duration in minutes,
// rounding seconds down.
func DurationMinutes(duration string) (int, error) {
	h, m, _, err := parseClock(duration)
	if err != nil {
		return 0, err
	}
	return h*60 + m, nil
}

// parseClock splits HH:MM:SS without capping hours at 23, since durations
// may run longer than a day's clock.
func parseClock(s string) (int, int, int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid clock value %q, use HH:MM:SS", s)
	}
	var vals [3]int
	for i, p := range parts {
		if len(p) < 2 {
			return 0, 0, 0, fmt.Errorf("invalid clock value %q, use HH:MM:SS", s)
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, 0, 0, fmt.Errorf("invalid clock value %q, use HH:MM:SS", s)
		}
		vals[i] = n
	}
	if vals[1] > 59 || vals[2] > 59 {
		return 0, 0, 0, fmt.Errorf("invalid clock value %q, use HH:MM:SS", s)
	}
	return vals[0], vals[1], vals[2], nil
}
