package utils

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the wire format for calendar dates.
	DateLayout = "2006-01-02"
	// TimeOfDayLayout is the wire format for take-off times. Zero-padded
	// 24h times compare correctly as strings.
	TimeOfDayLayout = "15:04"
)

// DateOnly truncates a timestamp to midnight UTC. Every leave date and
// start date is stored in this form so equality filters behave.
func DateOnly(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Today returns the current date truncated to midnight UTC.
func Today() time.Time {
	return DateOnly(time.Now())
}

// ParseDate parses a calendar date in DateLayout.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected %s", value, DateLayout)
	}
	return t, nil
}

// FormatDate renders a calendar date in DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// IsTimeOfDay reports whether value is a valid zero-padded 24h time.
func IsTimeOfDay(value string) bool {
	_, err := time.Parse(TimeOfDayLayout, value)
	return err == nil && len(value) == len(TimeOfDayLayout)
}
