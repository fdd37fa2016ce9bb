package ingest_test

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/AndyChen1024/NotiMind/internal/appmeta"
	"github.com/AndyChen1024/NotiMind/internal/ingest"
	"github.com/AndyChen1024/NotiMind/internal/model"
	"github.com/AndyChen1024/NotiMind/tests/testutil"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestIngestClassifiesAndStores(t *testing.T) {
	s := testutil.NewTestStore(t)
	p := ingest.NewProcessor(s, nil, discardLogger())

	id, err := p.Ingest(context.Background(), ingest.Event{
		SourceID:   "com.google.android.gm.mail",
		SourceName: "Gmail",
		Title:      "Weekly report",
		Body:       "Numbers attached",
		Timestamp:  1000,
		Extras:     map[string]string{"channel": "inbox"},
	})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	got, err := s.GetNotificationByID(context.Background(), id)
	if err != nil {
		t.Fatalf("GetNotificationByID: %v", err)
	}
	if got.Category != string(model.CategoryEmail) {
		t.Errorf("Category = %q, want EMAIL", got.Category)
	}
	if got.Extras["channel"] != "inbox" {
		t.Errorf("Extras = %v", got.Extras)
	}
}

func TestIngestTruncatesLongText(t *testing.T) {
	s := testutil.NewTestStore(t)
	p := ingest.NewProcessor(s, nil, discardLogger())

	long := strings.Repeat("x", 1500)
	id, err := p.Ingest(context.Background(), ingest.Event{
		SourceID:  "com.example.app",
		Title:     long,
		Body:      long,
		Timestamp: 1000,
	})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	got, err := s.GetNotificationByID(context.Background(), id)
	if err != nil {
		t.Fatalf("GetNotificationByID: %v", err)
	}
	want := strings.Repeat("x", 1000) + "..."
	if got.Title != want {
		t.Errorf("Title length = %d, want truncated to 1003", len(got.Title))
	}
	if got.Body != want {
		t.Errorf("Body length = %d, want truncated to 1003", len(got.Body))
	}
}

func TestIngestResolvesMissingSourceName(t *testing.T) {
	s := testutil.NewTestStore(t)
	resolver := &appmeta.StaticResolver{
		Names: map[string]string{"com.tencent.mm": "WeChat"},
	}
	p := ingest.NewProcessor(s, resolver, discardLogger())

	id, err := p.Ingest(context.Background(), ingest.Event{
		SourceID:  "com.tencent.mm",
		Title:     "Alice",
		Timestamp: 1000,
	})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	got, err := s.GetNotificationByID(context.Background(), id)
	if err != nil {
		t.Fatalf("GetNotificationByID: %v", err)
	}
	if got.SourceName != "WeChat" {
		t.Errorf("SourceName = %q, want resolved WeChat", got.SourceName)
	}
}

func TestIngestRejectsEmptySourceID(t *testing.T) {
	s := testutil.NewTestStore(t)
	p := ingest.NewProcessor(s, nil, discardLogger())

	if _, err := p.Ingest(context.Background(), ingest.Event{Timestamp: 1}); err == nil {
		t.Error("Ingest accepted an event with no source id")
	}
}

func TestIngestAllContinuesPastFailures(t *testing.T) {
	s := testutil.NewTestStore(t)
	p := ingest.NewProcessor(s, nil, discardLogger())

	events := []ingest.Event{
		{SourceID: "a.app", Timestamp: 1},
		{Timestamp: 2}, // invalid: no source id
		{SourceID: "b.app", Timestamp: 3},
	}
	stored := p.IngestAll(context.Background(), events)
	if stored != 2 {
		t.Errorf("stored = %d, want 2", stored)
	}

	count, err := s.CountNotifications(context.Background())
	if err != nil {
		t.Fatalf("CountNotifications: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}
