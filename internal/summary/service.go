package summary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/AndyChen1024/NotiMind/internal/appmeta"
	"github.com/AndyChen1024/NotiMind/internal/model"
	"github.com/AndyChen1024/NotiMind/internal/store"
)

// PreferencesSource supplies the current user-preferences snapshot.
type PreferencesSource interface {
	Current() (*model.UserPreferences, error)
}

// StaticPreferences is a PreferencesSource returning a fixed snapshot.
type StaticPreferences struct {
	Prefs *model.UserPreferences
}

func (s StaticPreferences) Current() (*model.UserPreferences, error) {
	if s.Prefs == nil {
		return model.DefaultPreferences(), nil
	}
	return s.Prefs, nil
}

// Service is the summary query API exposed to callers (CLI, export, a
// future UI): reading summaries back, computing app summaries on demand,
// triggering generation, and clearing old data.
//
// Read paths apply the user's excluded categories cosmetically: excluded
// entries disappear from category counts and highlights, but TotalCount
// still covers every notification the summary was generated over.
// Generation itself never filters.
type Service struct {
	store    store.Store
	gen      *Generator
	prefs    PreferencesSource
	resolver appmeta.Resolver
	loc      *time.Location
	logger   *slog.Logger
}

// NewService wires the summary service.
func NewService(
	s store.Store,
	gen *Generator,
	prefs PreferencesSource,
	resolver appmeta.Resolver,
	loc *time.Location,
	logger *slog.Logger,
) *Service {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}
	if prefs == nil {
		prefs = StaticPreferences{}
	}
	return &Service{store: s, gen: gen, prefs: prefs, resolver: resolver, loc: loc, logger: logger}
}

// GenerateForDate builds and persists summaries for one date.
func (s *Service) GenerateForDate(ctx context.Context, date model.Date) error {
	return s.gen.GenerateForDate(ctx, date)
}

// GenerateForRange builds and persists summaries for each date from start
// to end inclusive.
func (s *Service) GenerateForRange(ctx context.Context, start, end model.Date) error {
	return s.gen.GenerateForRange(ctx, start, end)
}

// TimeSummariesByDate returns the stored summaries for one date. A corrupt
// record is skipped and logged rather than failing the whole read; the
// caller sees whatever decoded.
func (s *Service) TimeSummariesByDate(ctx context.Context, date model.Date) ([]model.NotificationSummary, error) {
	records, err := s.store.SummariesByDate(ctx, date.Millis(s.loc))
	if err != nil {
		return nil, err
	}
	return s.decodeRecords(records)
}

// TimeSummariesByRange returns the stored summaries for dates from start
// to end inclusive, newest date first.
func (s *Service) TimeSummariesByRange(ctx context.Context, start, end model.Date) ([]model.NotificationSummary, error) {
	records, err := s.store.SummariesByDateRange(ctx, start.Millis(s.loc), end.Millis(s.loc))
	if err != nil {
		return nil, err
	}
	return s.decodeRecords(records)
}

// SummaryByID returns one stored summary, or (nil, nil) when it does not
// exist. A corrupt record surfaces its DecodeError; with a single row there
// is nothing partial to degrade to.
func (s *Service) SummaryByID(ctx context.Context, id string) (*model.NotificationSummary, error) {
	rec, err := s.store.GetSummaryByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	decoded, err := Deserialize(rec.Payload)
	if err != nil {
		return nil, err
	}

	prefs, err := s.prefs.Current()
	if err != nil {
		return nil, fmt.Errorf("reading preferences: %w", err)
	}
	applyExclusions(decoded, prefs)
	return decoded, nil
}

// AppSummaries computes on-demand per-app summaries over the inclusive
// date range, one per source that had notifications in the window.
func (s *Service) AppSummaries(ctx context.Context, start, end model.Date) ([]model.AppNotificationSummary, error) {
	sources, err := s.store.SourceIDs(ctx)
	if err != nil {
		return nil, err
	}

	var summaries []model.AppNotificationSummary
	for _, sourceID := range sources {
		appSummary, err := s.AppSummary(ctx, sourceID, start, end)
		if err != nil {
			return nil, err
		}
		if appSummary != nil {
			summaries = append(summaries, *appSummary)
		}
	}
	return summaries, nil
}

// AppSummary computes the summary for one source over the inclusive date
// range. Returns (nil, nil) when the source had no notifications in the
// window.
func (s *Service) AppSummary(ctx context.Context, sourceID string, start, end model.Date) (*model.AppNotificationSummary, error) {
	startMillis := start.Millis(s.loc)
	endMillis := end.Next().Millis(s.loc)
	notifications, err := s.store.QueryNotifications(ctx, store.NotificationFilter{
		SourceID:    &sourceID,
		StartMillis: &startMillis,
		EndMillis:   &endMillis,
	})
	if err != nil {
		return nil, err
	}

	appSummary := BuildAppSummary(sourceID, notifications, s.resolver)
	if appSummary == nil {
		return nil, nil
	}

	prefs, err := s.prefs.Current()
	if err != nil {
		return nil, fmt.Errorf("reading preferences: %w", err)
	}
	applyAppExclusions(appSummary, prefs)
	return appSummary, nil
}

// ClearSummariesOlderThan deletes summaries dated before the given date
// and returns how many were removed.
func (s *Service) ClearSummariesOlderThan(ctx context.Context, date model.Date) (int64, error) {
	return s.store.DeleteSummariesOlderThan(ctx, date.Millis(s.loc))
}

// ClearAllSummaries deletes every stored summary.
func (s *Service) ClearAllSummaries(ctx context.Context) error {
	return s.store.DeleteAllSummaries(ctx)
}

// PruneExpired deletes raw notifications and summaries older than the
// preferences' retention window, returning the deleted counts.
func (s *Service) PruneExpired(ctx context.Context, now time.Time) (notifications, summaries int64, err error) {
	prefs, err := s.prefs.Current()
	if err != nil {
		return 0, 0, fmt.Errorf("reading preferences: %w", err)
	}

	cutoffDate := model.DateOf(now.In(s.loc)).AddDays(-prefs.DataRetentionDays)
	cutoffMillis := cutoffDate.Millis(s.loc)

	notifications, err = s.store.DeleteNotificationsOlderThan(ctx, cutoffMillis)
	if err != nil {
		return 0, 0, err
	}
	summaries, err = s.store.DeleteSummariesOlderThan(ctx, cutoffMillis)
	if err != nil {
		return notifications, 0, err
	}

	s.logger.Info("pruned expired data",
		"cutoff", cutoffDate.String(),
		"notifications", notifications,
		"summaries", summaries,
	)
	return notifications, summaries, nil
}

// decodeRecords deserializes a batch of summary rows, skipping and logging
// any corrupt record, and applies preference exclusions to the survivors.
func (s *Service) decodeRecords(records []store.SummaryRecord) ([]model.NotificationSummary, error) {
	prefs, err := s.prefs.Current()
	if err != nil {
		return nil, fmt.Errorf("reading preferences: %w", err)
	}

	summaries := make([]model.NotificationSummary, 0, len(records))
	for _, rec := range records {
		decoded, err := Deserialize(rec.Payload)
		if err != nil {
			s.logger.Warn("skipping corrupt summary record",
				"id", rec.ID, "error", err)
			continue
		}
		applyExclusions(decoded, prefs)
		summaries = append(summaries, *decoded)
	}
	return summaries, nil
}

// applyExclusions hides excluded categories from a summary's counts and
// highlights. TotalCount intentionally stays untouched: historical summary
// semantics cover everything that was generated.
func applyExclusions(s *model.NotificationSummary, prefs *model.UserPreferences) {
	if len(prefs.ExcludedCategories) == 0 {
		return
	}
	for _, c := range prefs.ExcludedCategories {
		delete(s.Categories, c)
	}
	s.Highlights = filterHighlights(s.Highlights, prefs)
}

func applyAppExclusions(s *model.AppNotificationSummary, prefs *model.UserPreferences) {
	if len(prefs.ExcludedCategories) == 0 {
		return
	}
	for _, c := range prefs.ExcludedCategories {
		delete(s.Categories, c)
	}
	s.Highlights = filterHighlights(s.Highlights, prefs)
}

func filterHighlights(highlights []model.SummaryHighlight, prefs *model.UserPreferences) []model.SummaryHighlight {
	kept := highlights[:0]
	for _, h := range highlights {
		if !prefs.Excluded(h.Category) {
			kept = append(kept, h)
		}
	}
	return kept
}
