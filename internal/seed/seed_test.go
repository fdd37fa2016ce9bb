package seed_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/AndyChen1024/NotiMind/internal/model"
	"github.com/AndyChen1024/NotiMind/internal/seed"
)

func TestNotificationsTimestampsStayInRange(t *testing.T) {
	loc := time.UTC
	start := model.Date{Year: 2025, Month: 3, Day: 10}
	end := model.Date{Year: 2025, Month: 3, Day: 12}

	g := seed.NewGenerator(1, loc)
	notifications := g.Notifications(start, end, 200)
	if len(notifications) != 200 {
		t.Fatalf("len = %d, want 200", len(notifications))
	}

	lo := start.Millis(loc)
	hi := end.Next().Millis(loc)
	for _, n := range notifications {
		if n.Timestamp < lo || n.Timestamp >= hi {
			t.Fatalf("timestamp %d outside [%d, %d)", n.Timestamp, lo, hi)
		}
	}
}

func TestNotificationsAreClassified(t *testing.T) {
	g := seed.NewGenerator(2, time.UTC)
	d := model.Date{Year: 2025, Month: 3, Day: 10}

	for _, n := range g.Notifications(d, d, 100) {
		if n.Category == "" {
			t.Fatalf("notification from %s has no category", n.SourceID)
		}
		if _, err := model.ParseCategory(n.Category); err != nil {
			t.Fatalf("unparseable category %q", n.Category)
		}
		if n.SourceID == "" || n.SourceName == "" {
			t.Fatalf("missing source fields: %+v", n)
		}
	}
}

func TestSameSeedSameSequence(t *testing.T) {
	d := model.Date{Year: 2025, Month: 3, Day: 10}

	a := seed.NewGenerator(7, time.UTC).Notifications(d, d, 50)
	b := seed.NewGenerator(7, time.UTC).Notifications(d, d, 50)

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if !reflect.DeepEqual(a[i], b[i]) {
			t.Fatalf("sequence diverges at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestInvertedRangeIsNormalized(t *testing.T) {
	loc := time.UTC
	start := model.Date{Year: 2025, Month: 3, Day: 12}
	end := model.Date{Year: 2025, Month: 3, Day: 10}

	g := seed.NewGenerator(3, loc)
	notifications := g.Notifications(start, end, 20)

	lo := end.Millis(loc)
	hi := start.Next().Millis(loc)
	for _, n := range notifications {
		if n.Timestamp < lo || n.Timestamp >= hi {
			t.Fatalf("timestamp %d outside [%d, %d)", n.Timestamp, lo, hi)
		}
	}
}
