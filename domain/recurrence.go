package domain

import "time"

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// DateOf drops the clock part of t, keeping its calendar date in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string, rejecting dates that do not exist.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, time.UTC)
}

// NextOccurrence returns the due date of the successor of a todo recurring with r, counted
// from base. Monthly recurrence keeps the day of month, clamped to the last day of the
// following month.
func NextOccurrence(r RecurrenceType, base time.Time) time.Time {
	base = DateOf(base)
	switch r {
	case RecurrenceDaily:
		return base.AddDate(0, 0, 1)
	case RecurrenceWeekly:
		return base.AddDate(0, 0, 7)
	case RecurrenceMonthly:
		return addMonthClamped(base)
	default:
		return base
	}
}

func addMonthClamped(base time.Time) time.Time {
	year, month, day := base.Date()
	month++
	if month > time.December {
		month = time.January
		year++
	}
	if last := daysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// daysIn uses day 0 of the next month, which normalizes to the last day of month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
