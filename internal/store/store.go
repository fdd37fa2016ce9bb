package store

import (
	"context"
	"errors"

	"github.com/AndyChen1024/NotiMind/internal/model"
)

// ErrNotFound is returned by single-entity lookups when no row matches.
// Callers treat it as an absent value, not a failure.
var ErrNotFound = errors.New("not found")

// NotificationFilter controls filtering and pagination for notification
// queries. Zero values mean "no constraint".
type NotificationFilter struct {
	// SourceID restricts results to one posting app.
	SourceID *string

	// StartMillis/EndMillis bound the capture timestamp as a half-open
	// [start, end) window in epoch milliseconds.
	StartMillis *int64
	EndMillis   *int64

	// Category restricts results to one stored category label.
	Category *string

	// Removed restricts results to posting (false) or dismissal (true)
	// events.
	Removed *bool

	Limit  int
	Offset int
}

// SummaryRecord is the durable form of a generated summary: the summary
// itself travels as an opaque serialized payload, with just enough columns
// alongside it to key and range-query the rows.
type SummaryRecord struct {
	// ID is the deterministic {date}_{PERIOD} key.
	ID string

	// Period is the time-period label, stored denormalized for queries.
	Period string

	// DateMillis is local midnight of the summary's date in epoch
	// milliseconds.
	DateMillis int64

	// Payload is the serialized summary document.
	Payload string

	// GeneratedAtMillis records when the summary was (re)generated.
	GeneratedAtMillis int64
}

// NotificationStore is the persistence contract for captured notifications.
type NotificationStore interface {
	InsertNotification(ctx context.Context, n model.Notification) (int64, error)
	GetNotificationByID(ctx context.Context, id int64) (*model.Notification, error)
	QueryNotifications(ctx context.Context, f NotificationFilter) ([]model.Notification, error)
	UpdateNotificationCategory(ctx context.Context, id int64, category string) error
	UpdateNotificationRemoved(ctx context.Context, id int64, removed bool) error
	DeleteNotification(ctx context.Context, id int64) error
	DeleteNotificationsOlderThan(ctx context.Context, cutoffMillis int64) (int64, error)
	DeleteAllNotifications(ctx context.Context) error
	SourceIDs(ctx context.Context) ([]string, error)
	CountNotifications(ctx context.Context) (int, error)
	CountNotificationsBySource(ctx context.Context, sourceID string) (int, error)
}

// SummaryStore is the persistence contract for generated summary records.
type SummaryStore interface {
	UpsertSummary(ctx context.Context, rec SummaryRecord) error
	GetSummaryByID(ctx context.Context, id string) (*SummaryRecord, error)
	SummariesByDate(ctx context.Context, dateMillis int64) ([]SummaryRecord, error)
	SummariesByDateRange(ctx context.Context, startMillis, endMillis int64) ([]SummaryRecord, error)
	DeleteSummariesOlderThan(ctx context.Context, dateMillis int64) (int64, error)
	DeleteAllSummaries(ctx context.Context) error
}

// Store is the combined persistence interface backing the pipeline.
type Store interface {
	NotificationStore
	SummaryStore
}
