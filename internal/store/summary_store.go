package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// UpsertSummary inserts or replaces a summary record. The deterministic id
// makes regeneration overwrite the existing row for the same (date, period)
// instead of duplicating it.
func (s *SQLiteStore) UpsertSummary(ctx context.Context, rec SummaryRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO summaries (id, period, date, summary_json, generated_at)
		VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.Period, rec.DateMillis, rec.Payload, rec.GeneratedAtMillis,
	)
	if err != nil {
		return fmt.Errorf("upserting summary %s: %w", rec.ID, err)
	}
	return nil
}

// GetSummaryByID retrieves a single summary record. Returns ErrNotFound
// when no row matches.
func (s *SQLiteStore) GetSummaryByID(ctx context.Context, id string) (*SummaryRecord, error) {
	row := s.db.QueryRowxContext(ctx,
		"SELECT id, period, date, summary_json, generated_at FROM summaries WHERE id = ?", id,
	)

	rec, err := scanSummaryRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting summary %s: %w", id, err)
	}

	return &rec, nil
}

// SummariesByDate retrieves all summary records for one calendar date,
// keyed by its local-midnight epoch milliseconds.
func (s *SQLiteStore) SummariesByDate(ctx context.Context, dateMillis int64) ([]SummaryRecord, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT id, period, date, summary_json, generated_at
		FROM summaries WHERE date = ? ORDER BY generated_at DESC`,
		dateMillis,
	)
	if err != nil {
		return nil, fmt.Errorf("querying summaries for date %d: %w", dateMillis, err)
	}
	defer rows.Close()

	return collectSummaryRecords(rows)
}

// SummariesByDateRange retrieves summary records whose date falls in the
// inclusive [startMillis, endMillis] window, newest date first.
func (s *SQLiteStore) SummariesByDateRange(ctx context.Context, startMillis, endMillis int64) ([]SummaryRecord, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT id, period, date, summary_json, generated_at
		FROM summaries WHERE date BETWEEN ? AND ?
		ORDER BY date DESC, generated_at DESC`,
		startMillis, endMillis,
	)
	if err != nil {
		return nil, fmt.Errorf("querying summaries in [%d, %d]: %w", startMillis, endMillis, err)
	}
	defer rows.Close()

	return collectSummaryRecords(rows)
}

// DeleteSummariesOlderThan removes summaries dated before dateMillis and
// returns how many were deleted.
func (s *SQLiteStore) DeleteSummariesOlderThan(ctx context.Context, dateMillis int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM summaries WHERE date < ?", dateMillis)
	if err != nil {
		return 0, fmt.Errorf("deleting summaries before %d: %w", dateMillis, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted summaries: %w", err)
	}
	return count, nil
}

// DeleteAllSummaries clears the summaries table.
func (s *SQLiteStore) DeleteAllSummaries(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM summaries")
	if err != nil {
		return fmt.Errorf("deleting all summaries: %w", err)
	}
	return nil
}

func collectSummaryRecords(rows *sqlx.Rows) ([]SummaryRecord, error) {
	var records []SummaryRecord
	for rows.Next() {
		rec, err := scanSummaryRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning summary row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanSummaryRecord(row rowScanner) (SummaryRecord, error) {
	var rec SummaryRecord
	err := row.Scan(&rec.ID, &rec.Period, &rec.DateMillis, &rec.Payload, &rec.GeneratedAtMillis)
	if err != nil {
		return SummaryRecord{}, err
	}
	return rec, nil
}
