package model

import (
	"testing"
	"time"
)

func TestPeriodOfHourBoundaries(t *testing.T) {
	loc := time.UTC
	tests := []struct {
		hour int
		want TimePeriod
	}{
		{0, PeriodNight},
		{4, PeriodNight},
		{5, PeriodMorning},
		{11, PeriodMorning},
		{12, PeriodAfternoon},
		{16, PeriodAfternoon},
		{17, PeriodEvening},
		{21, PeriodEvening},
		{22, PeriodNight},
		{23, PeriodNight},
	}

	for _, tt := range tests {
		ts := time.Date(2025, time.March, 10, tt.hour, 30, 0, 0, loc).UnixMilli()
		if got := PeriodOf(ts, loc); got != tt.want {
			t.Errorf("PeriodOf(hour=%d) = %v, want %v", tt.hour, got, tt.want)
		}
	}
}

func TestPeriodOfRespectsLocation(t *testing.T) {
	// 02:00 UTC is 10:00 in UTC+8: NIGHT in one zone, MORNING in the other.
	ts := time.Date(2025, time.March, 10, 2, 0, 0, 0, time.UTC).UnixMilli()
	if got := PeriodOf(ts, time.UTC); got != PeriodNight {
		t.Errorf("PeriodOf in UTC = %v, want NIGHT", got)
	}
	east := time.FixedZone("UTC+8", 8*3600)
	if got := PeriodOf(ts, east); got != PeriodMorning {
		t.Errorf("PeriodOf in UTC+8 = %v, want MORNING", got)
	}
}

func TestRangeForContainsOwnPeriod(t *testing.T) {
	// For any timestamp, the range of its date and period must contain it.
	loc := time.UTC
	for hour := 0; hour < 24; hour++ {
		ts := time.Date(2025, time.March, 10, hour, 15, 0, 0, loc).UnixMilli()
		period := PeriodOf(ts, loc)
		date := DateOfMillis(ts, loc)
		if period == PeriodNight && hour < 5 {
			// Early-morning night hours belong to the previous date's
			// NIGHT window.
			date = date.AddDays(-1)
		}
		start, end := RangeFor(date, period, loc)
		if ts < start || ts >= end {
			t.Errorf("hour %d: timestamp %d outside %v range [%d, %d)", hour, ts, period, start, end)
		}
	}
}

func TestRangeForNightSpansMidnight(t *testing.T) {
	loc := time.UTC
	date := Date{Year: 2025, Month: time.March, Day: 10}
	start, end := RangeFor(date, PeriodNight, loc)

	wantStart := time.Date(2025, time.March, 10, 22, 0, 0, 0, loc).UnixMilli()
	wantEnd := time.Date(2025, time.March, 11, 5, 0, 0, 0, loc).UnixMilli()
	if start != wantStart || end != wantEnd {
		t.Errorf("NIGHT range = [%d, %d), want [%d, %d)", start, end, wantStart, wantEnd)
	}
}

func TestRangeForAllDayIsUnionOfPeriods(t *testing.T) {
	loc := time.UTC
	date := Date{Year: 2025, Month: time.June, Day: 1}
	dayStart, dayEnd := RangeFor(date, PeriodAllDay, loc)

	if got := dayEnd - dayStart; got != 24*60*60*1000 {
		t.Errorf("ALL_DAY span = %d ms, want 24h", got)
	}

	// MORNING through EVENING are contiguous; NIGHT covers the rest.
	mStart, _ := RangeFor(date, PeriodMorning, loc)
	_, eEnd := RangeFor(date, PeriodEvening, loc)
	nStart, nEnd := RangeFor(date, PeriodNight, loc)
	if eEnd != nStart {
		t.Errorf("EVENING end %d != NIGHT start %d", eEnd, nStart)
	}
	if mStart-dayStart != 5*3600*1000 {
		t.Errorf("MORNING starts %d ms into the day, want 5h", mStart-dayStart)
	}
	if nEnd-dayEnd != 5*3600*1000 {
		t.Errorf("NIGHT ends %d ms past the day, want 5h", nEnd-dayEnd)
	}
}

func TestParseTimePeriod(t *testing.T) {
	for _, p := range append(DayPeriods, PeriodAllDay) {
		got, err := ParseTimePeriod(string(p))
		if err != nil || got != p {
			t.Errorf("ParseTimePeriod(%q) = %v, %v", p, got, err)
		}
	}
	if _, err := ParseTimePeriod("BRUNCH"); err == nil {
		t.Error("ParseTimePeriod accepted an unknown label")
	}
}
