package model

import (
	"fmt"
	"time"
)

// TimePeriod is a coarse part-of-day bucket used to group notifications
// into summaries. The four concrete periods partition a 24-hour day, with
// NIGHT wrapping across the date boundary; ALL_DAY is a synthetic bucket
// covering the whole calendar day.
type TimePeriod string

const (
	PeriodMorning   TimePeriod = "MORNING"   // 05:00-11:59
	PeriodAfternoon TimePeriod = "AFTERNOON" // 12:00-16:59
	PeriodEvening   TimePeriod = "EVENING"   // 17:00-21:59
	PeriodNight     TimePeriod = "NIGHT"     // 22:00-04:59, spans midnight
	PeriodAllDay    TimePeriod = "ALL_DAY"
)

// DayPeriods lists the four periods that partition a day, excluding ALL_DAY.
var DayPeriods = []TimePeriod{PeriodMorning, PeriodAfternoon, PeriodEvening, PeriodNight}

// ParseTimePeriod maps a stored label back to a TimePeriod.
func ParseTimePeriod(s string) (TimePeriod, error) {
	p := TimePeriod(s)
	switch p {
	case PeriodMorning, PeriodAfternoon, PeriodEvening, PeriodNight, PeriodAllDay:
		return p, nil
	}
	return "", fmt.Errorf("unknown time period %q", s)
}

// PeriodOf returns the part-of-day bucket for an epoch-milliseconds
// timestamp, judged by local hour in loc.
func PeriodOf(millis int64, loc *time.Location) TimePeriod {
	hour := time.UnixMilli(millis).In(loc).Hour()
	switch {
	case hour >= 5 && hour <= 11:
		return PeriodMorning
	case hour >= 12 && hour <= 16:
		return PeriodAfternoon
	case hour >= 17 && hour <= 21:
		return PeriodEvening
	default:
		return PeriodNight
	}
}

// RangeFor returns the [start, end) epoch-milliseconds window that period
// covers on date, in loc. NIGHT starts at 22:00 on date and ends at 05:00
// the next day. Callers needing an inclusive end use end-1.
func RangeFor(date Date, period TimePeriod, loc *time.Location) (startMillis, endMillis int64) {
	at := func(d Date, hour int) int64 {
		return time.Date(d.Year, d.Month, d.Day, hour, 0, 0, 0, loc).UnixMilli()
	}
	switch period {
	case PeriodMorning:
		return at(date, 5), at(date, 12)
	case PeriodAfternoon:
		return at(date, 12), at(date, 17)
	case PeriodEvening:
		return at(date, 17), at(date, 22)
	case PeriodNight:
		return at(date, 22), at(date.Next(), 5)
	default: // ALL_DAY
		return at(date, 0), at(date.Next(), 0)
	}
}
