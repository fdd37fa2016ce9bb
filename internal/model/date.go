package model

import (
	"fmt"
	"time"
)

// Date is a calendar date with no time component. Summaries are keyed by
// Date, so it needs to be comparable and stable across timezones; the
// timezone only enters when converting to and from instants.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// DateOfMillis returns the calendar date of an epoch-milliseconds timestamp
// in the given location.
func DateOfMillis(millis int64, loc *time.Location) Date {
	return DateOf(time.UnixMilli(millis).In(loc))
}

// ParseDate parses an ISO date string (2006-01-02).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// String formats the date as ISO 2006-01-02.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Time returns midnight at the start of the date in loc.
func (d Date) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// Millis returns the epoch-milliseconds instant of midnight in loc.
func (d Date) Millis(loc *time.Location) int64 {
	return d.Time(loc).UnixMilli()
}

// AddDays returns the date n days later (or earlier for negative n).
// time.Date normalizes out-of-range days, so month and year boundaries
// roll over correctly.
func (d Date) AddDays(n int) Date {
	return DateOf(time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC))
}

// Next returns the following calendar date.
func (d Date) Next() Date {
	return d.AddDays(1)
}

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool {
	if d.Year != other.Year {
		return d.Year > other.Year
	}
	if d.Month != other.Month {
		return d.Month > other.Month
	}
	return d.Day > other.Day
}
