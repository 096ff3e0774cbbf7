package shared

import "time"

// AddMonths returns t offset by the given number of months, clamping the day
// of month to the last valid day of the target month.
//
// Go's time.AddDate normalizes overflow (Jan 31 + 1 month = Mar 3), which is
// the wrong behavior for recency cutoffs; Jan 31 + 1 month must land on the
// last day of February.
func AddMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	// Anchor on the first of the target month, then clamp the day.
	anchor := time.Date(year, month+time.Month(months), 1, hour, min, sec, t.Nanosecond(), t.Location())
	if last := daysInMonth(anchor.Year(), anchor.Month()); day > last {
		day = last
	}

	return time.Date(anchor.Year(), anchor.Month(), day, hour, min, sec, t.Nanosecond(), t.Location())
}

// daysInMonth returns the number of days in the given month.
//
// Day zero of the following month normalizes to the last day of this one.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
