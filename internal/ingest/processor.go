// Package ingest normalizes captured notification events and persists them.
// It sits between the OS-level capture mechanism (out of scope here; the CLI
// reads events as JSON lines) and the notification store.
package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/AndyChen1024/NotiMind/internal/appmeta"
	"github.com/AndyChen1024/NotiMind/internal/classify"
	"github.com/AndyChen1024/NotiMind/internal/model"
	"github.com/AndyChen1024/NotiMind/internal/store"
)

// maxTextLength caps stored title/body text. Captured notifications can
// carry arbitrarily long expanded text; anything longer is truncated with
// an ellipsis.
const maxTextLength = 1000

// Event is one raw captured notification, as delivered by a capture
// frontend.
type Event struct {
	SourceID   string            `json:"source_id"`
	SourceName string            `json:"source_name"`
	Title      string            `json:"title"`
	Body       string            `json:"body"`
	Timestamp  int64             `json:"timestamp"`
	Removed    bool              `json:"removed"`
	Extras     map[string]string `json:"extras,omitempty"`
}

// Processor classifies and stores captured notification events.
type Processor struct {
	store    store.NotificationStore
	resolver appmeta.Resolver
	logger   *slog.Logger
}

// NewProcessor builds an ingestion processor. resolver may be nil; source
// names then fall back to the source id.
func NewProcessor(s store.NotificationStore, resolver appmeta.Resolver, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{store: s, resolver: resolver, logger: logger}
}

// Ingest normalizes one event (sanitized text, a classifier-assigned
// category, a resolved source name) and persists it, returning the
// assigned record id.
func (p *Processor) Ingest(ctx context.Context, ev Event) (int64, error) {
	if ev.SourceID == "" {
		return 0, fmt.Errorf("ingesting notification: empty source id")
	}

	title := sanitizeText(ev.Title)
	body := sanitizeText(ev.Body)

	sourceName := ev.SourceName
	if sourceName == "" && p.resolver != nil {
		sourceName = p.resolver.ResolveName(ev.SourceID)
	}

	n := model.Notification{
		SourceID:   ev.SourceID,
		SourceName: sourceName,
		Title:      title,
		Body:       body,
		Timestamp:  ev.Timestamp,
		Category:   string(classify.Classify(ev.SourceID, title, body)),
		Removed:    ev.Removed,
		Extras:     ev.Extras,
	}

	id, err := p.store.InsertNotification(ctx, n)
	if err != nil {
		return 0, fmt.Errorf("storing notification from %s: %w", ev.SourceID, err)
	}

	p.logger.Debug("ingested notification",
		"id", id, "source", ev.SourceID, "category", n.Category)
	return id, nil
}

// IngestAll processes a batch of events. The capture path is best-effort:
// a failing event is logged and skipped, and the rest of the batch still
// lands. Returns how many events were stored.
func (p *Processor) IngestAll(ctx context.Context, events []Event) int {
	stored := 0
	for _, ev := range events {
		if _, err := p.Ingest(ctx, ev); err != nil {
			p.logger.Warn("dropping notification event",
				"source", ev.SourceID, "error", err)
			continue
		}
		stored++
	}
	return stored
}

func sanitizeText(text string) string {
	runes := []rune(text)
	if len(runes) > maxTextLength {
		return string(runes[:maxTextLength]) + "..."
	}
	return text
}
