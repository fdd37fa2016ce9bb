package summary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/AndyChen1024/NotiMind/internal/model"
	"github.com/AndyChen1024/NotiMind/internal/store"
)

// Generator produces and persists the per-period summaries for calendar
// dates. Generation is idempotent: summary ids are deterministic, so a
// regenerated date overwrites its previous rows in place.
//
// The generator does not guard against two callers regenerating the same
// date at once; each (date, period) upsert is last-writer-wins, and callers
// needing stronger guarantees serialize their own requests. Different dates
// touch disjoint keys and are safe to generate concurrently.
type Generator struct {
	store  store.Store
	loc    *time.Location
	logger *slog.Logger

	// now is stubbed in tests.
	now func() time.Time
}

// NewGenerator builds a Generator persisting through s, with all period
// bucketing done in loc.
func NewGenerator(s store.Store, loc *time.Location, logger *slog.Logger) *Generator {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{store: s, loc: loc, logger: logger, now: time.Now}
}

// GenerateForDate builds and upserts summaries for one calendar date: one
// per non-empty part-of-day period, plus an ALL_DAY summary over the whole
// day. A date with no notifications is a no-op, not an error; nothing is
// persisted for it.
func (g *Generator) GenerateForDate(ctx context.Context, date model.Date) error {
	requestID := uuid.New().String()
	logger := g.logger.With("request_id", requestID, "date", date.String())

	start := date.Millis(g.loc)
	end := date.Next().Millis(g.loc)
	notifications, err := g.store.QueryNotifications(ctx, store.NotificationFilter{
		StartMillis: &start,
		EndMillis:   &end,
	})
	if err != nil {
		return fmt.Errorf("fetching notifications for %s: %w", date, err)
	}

	if len(notifications) == 0 {
		logger.Debug("no notifications for date, skipping generation")
		return nil
	}

	// Partition the fetched list by period directly instead of re-querying
	// per period range; it is one pass and cannot double-count boundary
	// timestamps.
	buckets := make(map[model.TimePeriod][]model.Notification)
	for _, n := range notifications {
		period := model.PeriodOf(n.Timestamp, g.loc)
		buckets[period] = append(buckets[period], n)
	}

	generated := 0
	for _, period := range model.DayPeriods {
		bucket := buckets[period]
		if len(bucket) == 0 {
			continue
		}
		if err := g.persist(ctx, Build(date, period, bucket)); err != nil {
			return err
		}
		generated++
	}

	// ALL_DAY aggregates the full unfiltered day.
	if err := g.persist(ctx, Build(date, model.PeriodAllDay, notifications)); err != nil {
		return err
	}

	logger.Info("generated summaries",
		"periods", generated+1,
		"notifications", len(notifications),
	)
	return nil
}

// GenerateForRange runs GenerateForDate for every date from start to end
// inclusive. Days are independent: one day failing does not stop the rest,
// and already-committed days stay committed. Cancellation is checked
// between days so a long backfill can be abandoned cleanly.
func (g *Generator) GenerateForRange(ctx context.Context, start, end model.Date) error {
	if start.After(end) {
		return fmt.Errorf("invalid range: %s is after %s", start, end)
	}

	var errs []error
	for date := start; !date.After(end); date = date.Next() {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := g.GenerateForDate(ctx, date); err != nil {
			g.logger.Warn("summary generation failed for date",
				"date", date.String(), "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (g *Generator) persist(ctx context.Context, s *model.NotificationSummary) error {
	payload, err := Serialize(s)
	if err != nil {
		return err
	}
	rec := store.SummaryRecord{
		ID:                s.ID,
		Period:            string(s.Period),
		DateMillis:        s.Date.Millis(g.loc),
		Payload:           payload,
		GeneratedAtMillis: g.now().UnixMilli(),
	}
	if err := g.store.UpsertSummary(ctx, rec); err != nil {
		return fmt.Errorf("persisting summary %s: %w", s.ID, err)
	}
	return nil
}
