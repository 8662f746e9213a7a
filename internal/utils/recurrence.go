package utils

import (
	"iter"
	"time"
)

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday maps a lowercase weekday name to time.Weekday.
func ParseWeekday(name string) (time.Weekday, bool) {
	day, ok := weekdayNames[name]
	return day, ok
}

// NextWeekdayOnOrAfter returns the first date on or after begin that falls
// on day. The shift is at most six days; if begin already falls on day it
// is returned unchanged.
func NextWeekdayOnOrAfter(begin time.Time, day time.Weekday) time.Time {
	shift := (int(day) - int(begin.Weekday()) + 7) % 7
	return begin.AddDate(0, 0, shift)
}

// RecurrenceDates expands a recurrence rule into the ordered leave dates
// it produces over a forward window of windowDays days, anchored at
// anchor. The sequence is lazy; consumers may stop early.
//
//   - empty rule: the anchor date alone
//   - RecurringEveryday: windowDays consecutive dates starting at anchor
//   - weekday name: weekly dates starting at the first matching date on or
//     after anchor; the occurrence count is ceil(windowDays/7) so the
//     series always spans the window
//
// Rules are validated before they are stored, so an unrecognized rule
// yields an empty sequence rather than an error.
func RecurrenceDates(anchor time.Time, rule string, windowDays int) iter.Seq[time.Time] {
	anchor = DateOnly(anchor)
	return func(yield func(time.Time) bool) {
		switch {
		case rule == "":
			yield(anchor)
		case rule == RecurringEveryday:
			for i := 0; i < windowDays; i++ {
				if !yield(anchor.AddDate(0, 0, i)) {
					return
				}
			}
		default:
			day, ok := ParseWeekday(rule)
			if !ok {
				return
			}
			first := NextWeekdayOnOrAfter(anchor, day)
			occurrences := (windowDays + 6) / 7
			for i := 0; i < occurrences; i++ {
				if !yield(first.AddDate(0, 0, 7*i)) {
					return
				}
			}
		}
	}
}

// CollectRecurrenceDates materializes RecurrenceDates into a slice.
func CollectRecurrenceDates(anchor time.Time, rule string, windowDays int) []time.Time {
	var dates []time.Time
	for date := range RecurrenceDates(anchor, rule, windowDays) {
		dates = append(dates, date)
	}
	return dates
}
