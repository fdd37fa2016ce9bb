// Package summary implements the summarization pipeline: building digests
// from normalized notifications, encoding them for storage, generating them
// per date, and serving them back to callers.
package summary

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/AndyChen1024/NotiMind/internal/model"
)

// DecodeError reports a structurally malformed persisted summary record:
// a missing required field or a label outside its closed enumeration.
// Unlike the classifier, the codec never substitutes a default for bad
// input; a record that decodes must mean what it meant when written.
type DecodeError struct {
	Field string
	Cause error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("decoding summary field %q: %v", e.Field, e.Cause)
	}
	return fmt.Sprintf("decoding summary: missing required field %q", e.Field)
}

func (e *DecodeError) Unwrap() error { return e.Cause }

// IsDecodeError reports whether err (or any error in its chain) is a
// DecodeError.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

// SummaryID returns the deterministic identifier for a (date, period)
// summary: {date}_{PERIOD}. Regenerating a summary reuses the same id, so
// persistence upserts instead of duplicating.
func SummaryID(date model.Date, period model.TimePeriod) string {
	return date.String() + "_" + string(period)
}

// summaryDoc is the wire form of a NotificationSummary. Pointer fields let
// the decoder distinguish absent from zero.
type summaryDoc struct {
	ID         *string        `json:"id"`
	Period     *string        `json:"period"`
	Date       *string        `json:"date"`
	TotalCount *int           `json:"totalCount"`
	Categories map[string]int `json:"categories"`
	Highlights []highlightDoc `json:"highlights"`
}

type highlightDoc struct {
	Title      *string `json:"title"`
	Content    *string `json:"content"`
	Category   *string `json:"category"`
	Importance *string `json:"importance"`
}

// Serialize encodes a summary as its durable JSON record.
func Serialize(s *model.NotificationSummary) (string, error) {
	id := s.ID
	period := string(s.Period)
	date := s.Date.String()
	total := s.TotalCount

	doc := summaryDoc{
		ID:         &id,
		Period:     &period,
		Date:       &date,
		TotalCount: &total,
		Categories: make(map[string]int, len(s.Categories)),
		Highlights: make([]highlightDoc, 0, len(s.Highlights)),
	}
	for c, count := range s.Categories {
		doc.Categories[string(c)] = count
	}
	for i := range s.Highlights {
		h := s.Highlights[i]
		title, content := h.Title, h.Content
		category, importance := string(h.Category), h.Importance.String()
		doc.Highlights = append(doc.Highlights, highlightDoc{
			Title:      &title,
			Content:    &content,
			Category:   &category,
			Importance: &importance,
		})
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshaling summary %s: %w", s.ID, err)
	}
	return string(data), nil
}

// Deserialize reconstructs a summary from its JSON record. Every summary
// produced by Serialize round-trips to an equal value. Malformed records
// fail with a DecodeError.
func Deserialize(payload string) (*model.NotificationSummary, error) {
	var doc summaryDoc
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, &DecodeError{Field: "document", Cause: err}
	}

	switch {
	case doc.ID == nil:
		return nil, &DecodeError{Field: "id"}
	case doc.Period == nil:
		return nil, &DecodeError{Field: "period"}
	case doc.Date == nil:
		return nil, &DecodeError{Field: "date"}
	case doc.TotalCount == nil:
		return nil, &DecodeError{Field: "totalCount"}
	case doc.Categories == nil:
		return nil, &DecodeError{Field: "categories"}
	case doc.Highlights == nil:
		return nil, &DecodeError{Field: "highlights"}
	}

	period, err := model.ParseTimePeriod(*doc.Period)
	if err != nil {
		return nil, &DecodeError{Field: "period", Cause: err}
	}
	date, err := model.ParseDate(*doc.Date)
	if err != nil {
		return nil, &DecodeError{Field: "date", Cause: err}
	}

	categories := make(map[model.Category]int, len(doc.Categories))
	for name, count := range doc.Categories {
		c, err := model.ParseCategory(name)
		if err != nil {
			return nil, &DecodeError{Field: "categories", Cause: err}
		}
		categories[c] = count
	}

	highlights := make([]model.SummaryHighlight, 0, len(doc.Highlights))
	for i, h := range doc.Highlights {
		field := fmt.Sprintf("highlights[%d]", i)
		if h.Title == nil || h.Content == nil || h.Category == nil || h.Importance == nil {
			return nil, &DecodeError{Field: field}
		}
		c, err := model.ParseCategory(*h.Category)
		if err != nil {
			return nil, &DecodeError{Field: field, Cause: err}
		}
		imp, err := model.ParseHighlightImportance(*h.Importance)
		if err != nil {
			return nil, &DecodeError{Field: field, Cause: err}
		}
		highlights = append(highlights, model.SummaryHighlight{
			Title:      *h.Title,
			Content:    *h.Content,
			Category:   c,
			Importance: imp,
		})
	}

	return &model.NotificationSummary{
		ID:         *doc.ID,
		Period:     period,
		Date:       date,
		Categories: categories,
		Highlights: highlights,
		TotalCount: *doc.TotalCount,
	}, nil
}
