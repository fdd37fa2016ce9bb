package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/AndyChen1024/NotiMind/internal/model"
)

// notificationColumns is the select list shared by all notification reads.
var notificationColumns = []string{
	"id", "source_id", "source_name", "title", "body",
	"timestamp", "category", "removed",
}

// InsertNotification inserts a notification together with its extras in a
// single transaction and returns the assigned row id.
func (s *SQLiteStore) InsertNotification(ctx context.Context, n model.Notification) (int64, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO notifications (source_id, source_name, title, body, timestamp, category, removed)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		n.SourceID, n.SourceName, n.Title, n.Body,
		n.Timestamp, n.Category, boolToInt(n.Removed),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting notification: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading inserted notification id: %w", err)
	}

	for key, value := range n.Extras {
		_, err = tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO notification_extras (notification_id, key, value)
			VALUES (?, ?, ?)`,
			id, key, value,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting extra %q for notification %d: %w", key, id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing notification insert: %w", err)
	}

	return id, nil
}

// GetNotificationByID retrieves a single notification with its extras.
// Returns ErrNotFound when no row matches.
func (s *SQLiteStore) GetNotificationByID(ctx context.Context, id int64) (*model.Notification, error) {
	query, args, err := sq.Select(notificationColumns...).
		From("notifications").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building notification query: %w", err)
	}

	row := s.db.QueryRowxContext(ctx, query, args...)
	n, err := scanNotification(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting notification %d: %w", id, err)
	}

	extras, err := s.loadExtras(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	n.Extras = extras[id]

	return &n, nil
}

// QueryNotifications retrieves notifications matching the filter, newest
// first.
func (s *SQLiteStore) QueryNotifications(ctx context.Context, f NotificationFilter) ([]model.Notification, error) {
	b := sq.Select(notificationColumns...).
		From("notifications").
		OrderBy("timestamp DESC")

	if f.SourceID != nil {
		b = b.Where(sq.Eq{"source_id": *f.SourceID})
	}
	if f.StartMillis != nil {
		b = b.Where(sq.GtOrEq{"timestamp": *f.StartMillis})
	}
	if f.EndMillis != nil {
		b = b.Where(sq.Lt{"timestamp": *f.EndMillis})
	}
	if f.Category != nil {
		b = b.Where(sq.Eq{"category": *f.Category})
	}
	if f.Removed != nil {
		b = b.Where(sq.Eq{"removed": boolToInt(*f.Removed)})
	}
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		b = b.Offset(uint64(f.Offset))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building notification query: %w", err)
	}

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	var ids []int64
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning notification row: %w", err)
		}
		notifications = append(notifications, n)
		ids = append(ids, n.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notification rows: %w", err)
	}

	extras, err := s.loadExtras(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range notifications {
		notifications[i].Extras = extras[notifications[i].ID]
	}

	return notifications, nil
}

// UpdateNotificationCategory re-assigns the stored category label.
func (s *SQLiteStore) UpdateNotificationCategory(ctx context.Context, id int64, category string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE notifications SET category = ? WHERE id = ?", category, id,
	)
	if err != nil {
		return fmt.Errorf("updating category for notification %d: %w", id, err)
	}
	return nil
}

// UpdateNotificationRemoved flags a notification as a dismissal event.
func (s *SQLiteStore) UpdateNotificationRemoved(ctx context.Context, id int64, removed bool) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE notifications SET removed = ? WHERE id = ?", boolToInt(removed), id,
	)
	if err != nil {
		return fmt.Errorf("updating removed flag for notification %d: %w", id, err)
	}
	return nil
}

// DeleteNotification removes a notification; its extras cascade.
func (s *SQLiteStore) DeleteNotification(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM notifications WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting notification %d: %w", id, err)
	}
	return nil
}

// DeleteNotificationsOlderThan removes notifications captured before
// cutoffMillis and returns how many were deleted.
func (s *SQLiteStore) DeleteNotificationsOlderThan(ctx context.Context, cutoffMillis int64) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM notifications WHERE timestamp < ?", cutoffMillis,
	)
	if err != nil {
		return 0, fmt.Errorf("deleting notifications before %d: %w", cutoffMillis, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted notifications: %w", err)
	}
	return count, nil
}

// DeleteAllNotifications clears the notifications table.
func (s *SQLiteStore) DeleteAllNotifications(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM notifications")
	if err != nil {
		return fmt.Errorf("deleting all notifications: %w", err)
	}
	return nil
}

// SourceIDs lists the distinct source identifiers present in the store.
func (s *SQLiteStore) SourceIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := s.db.SelectContext(ctx, &ids,
		"SELECT DISTINCT source_id FROM notifications ORDER BY source_id",
	)
	if err != nil {
		return nil, fmt.Errorf("querying source ids: %w", err)
	}
	return ids, nil
}

// CountNotifications returns the total number of stored notifications.
func (s *SQLiteStore) CountNotifications(ctx context.Context) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM notifications")
	if err != nil {
		return 0, fmt.Errorf("counting notifications: %w", err)
	}
	return count, nil
}

// CountNotificationsBySource returns the number of notifications stored for
// one source.
func (s *SQLiteStore) CountNotificationsBySource(ctx context.Context, sourceID string) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM notifications WHERE source_id = ?", sourceID,
	)
	if err != nil {
		return 0, fmt.Errorf("counting notifications for source %s: %w", sourceID, err)
	}
	return count, nil
}

// loadExtras fetches extras for a batch of notification ids in one query,
// keyed by notification id. Notifications without extras map to nil.
func (s *SQLiteStore) loadExtras(ctx context.Context, ids []int64) (map[int64]map[string]string, error) {
	result := make(map[int64]map[string]string)
	if len(ids) == 0 {
		return result, nil
	}

	query, args, err := sqlx.In(
		"SELECT notification_id, key, value FROM notification_extras WHERE notification_id IN (?)",
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("building extras query: %w", err)
	}

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying notification extras: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id         int64
			key, value string
		)
		if err := rows.Scan(&id, &key, &value); err != nil {
			return nil, fmt.Errorf("scanning extras row: %w", err)
		}
		if result[id] == nil {
			result[id] = make(map[string]string)
		}
		result[id][key] = value
	}

	return result, rows.Err()
}

// rowScanner abstracts sqlx.Row and sqlx.Rows for the scan helper.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanNotification scans one notification row; extras are loaded separately.
func scanNotification(row rowScanner) (model.Notification, error) {
	var (
		n       model.Notification
		removed int
	)

	err := row.Scan(
		&n.ID, &n.SourceID, &n.SourceName, &n.Title, &n.Body,
		&n.Timestamp, &n.Category, &removed,
	)
	if err != nil {
		return model.Notification{}, err
	}

	n.Removed = removed != 0
	return n, nil
}
