// Package export writes stored notifications out as JSON or CSV files so
// the user can take their data elsewhere.
package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/AndyChen1024/NotiMind/internal/model"
	"github.com/AndyChen1024/NotiMind/internal/store"
)

// Format selects the export file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat maps a user-supplied format label onto a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatCSV:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown export format %q", s)
	}
}

// record is the exported shape of one notification. Field names match the
// on-disk JSON produced by earlier releases so existing tooling keeps
// working.
type record struct {
	ID         int64             `json:"id"`
	SourceID   string            `json:"packageName"`
	SourceName string            `json:"appName"`
	Title      string            `json:"title"`
	Content    string            `json:"content"`
	Timestamp  int64             `json:"timestamp"`
	Category   string            `json:"category"`
	Removed    bool              `json:"isRemoved"`
	Extras     map[string]string `json:"extras"`
}

var csvHeader = []string{
	"id", "packageName", "appName", "title", "content",
	"timestamp", "category", "isRemoved",
}

// Exporter writes notifications from the store to files under Dir.
type Exporter struct {
	store store.NotificationStore
	dir   string
	now   func() time.Time
}

// NewExporter builds an exporter writing files into dir.
func NewExporter(s store.NotificationStore, dir string) *Exporter {
	return &Exporter{store: s, dir: dir, now: time.Now}
}

// Export writes every notification in [startMillis, endMillis) to a new
// timestamped file in the exporter's directory and returns its path.
func (e *Exporter) Export(ctx context.Context, startMillis, endMillis int64, format Format) (string, error) {
	notifications, err := e.store.QueryNotifications(ctx, store.NotificationFilter{
		StartMillis: &startMillis,
		EndMillis:   &endMillis,
	})
	if err != nil {
		return "", fmt.Errorf("loading notifications for export: %w", err)
	}

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	name := fmt.Sprintf("notifications_%s_%s.%s",
		e.now().Format("20060102_150405"), uuid.NewString()[:8], format)
	path := filepath.Join(e.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	switch format {
	case FormatJSON:
		err = writeJSON(f, notifications)
	case FormatCSV:
		err = writeCSV(f, notifications)
	default:
		err = fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		return "", fmt.Errorf("writing export file: %w", err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing export file: %w", err)
	}
	return path, nil
}

func writeJSON(f *os.File, notifications []model.Notification) error {
	records := make([]record, 0, len(notifications))
	for _, n := range notifications {
		extras := n.Extras
		if extras == nil {
			extras = map[string]string{}
		}
		records = append(records, record{
			ID:         n.ID,
			SourceID:   n.SourceID,
			SourceName: n.SourceName,
			Title:      n.Title,
			Content:    n.Body,
			Timestamp:  n.Timestamp,
			Category:   n.Category,
			Removed:    n.Removed,
			Extras:     extras,
		})
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func writeCSV(f *os.File, notifications []model.Notification) error {
	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, n := range notifications {
		row := []string{
			strconv.FormatInt(n.ID, 10),
			n.SourceID,
			n.SourceName,
			n.Title,
			n.Body,
			strconv.FormatInt(n.Timestamp, 10),
			n.Category,
			strconv.FormatBool(n.Removed),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
