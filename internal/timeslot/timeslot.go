package timeslot

import (
	"regexp"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

var timePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidTime reports whether value is a zero-padded 24-hour HH:MM string.
// Zero padding matters: resolved slots are ordered by lexicographic
// comparison of their start times.
func ValidTime(value string) bool {
	return timePattern.MatchString(value)
}

// ValidRange reports whether start and end are well-formed and start < end.
func ValidRange(start, end string) bool {
	return ValidTime(start) && ValidTime(end) && start < end
}

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// share more than a boundary instant. Touching endpoints do not overlap.
func Overlaps(s1, e1, s2, e2 string) bool {
	return s1 < e2 && e1 > s2
}

// ParseDate parses a YYYY-MM-DD calendar date. Out-of-range components
// (e.g. 2025-02-30) are rejected.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// ValidDate reports whether value is a well-formed YYYY-MM-DD calendar date.
func ValidDate(value string) bool {
	_, err := ParseDate(value)
	return err == nil
}

// FormatDate renders a calendar date in the YYYY-MM-DD wire format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// StartOfWeek returns the most recent Sunday on or before t, at midnight in
// t's location. The week anchor is Sunday = 0 throughout the scheduler.
func StartOfWeek(t time.Time) time.Time {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start.AddDate(0, 0, -int(start.Weekday()))
}

// DayOfWeek returns the weekday of t as an integer with Sunday = 0.
func DayOfWeek(t time.Time) int {
	return int(t.Weekday())
}

// ValidDayOfWeek reports whether day is within the Sunday..Saturday range.
func ValidDayOfWeek(day int) bool {
	return day >= 0 && day <= 6
}
