package summary

import (
	"reflect"
	"testing"
	"time"

	"github.com/AndyChen1024/NotiMind/internal/model"
)

func sampleSummary() *model.NotificationSummary {
	date := model.Date{Year: 2025, Month: time.March, Day: 10}
	return &model.NotificationSummary{
		ID:     SummaryID(date, model.PeriodMorning),
		Period: model.PeriodMorning,
		Date:   date,
		Categories: map[model.Category]int{
			model.CategoryPersonalMessage: 3,
			model.CategoryNews:            2,
		},
		Highlights: []model.SummaryHighlight{
			{Title: "Alice", Content: "lunch?", Category: model.CategoryPersonalMessage, Importance: model.ImportanceHigh},
			{Title: "Breaking", Content: "Markets fall", Category: model.CategoryNews, Importance: model.ImportanceLow},
		},
		TotalCount: 5,
	}
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	original := sampleSummary()

	payload, err := Serialize(original)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	decoded, err := Deserialize(payload)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}

	if !reflect.DeepEqual(original, decoded) {
		t.Errorf("round trip mismatch:\noriginal: %+v\ndecoded:  %+v", original, decoded)
	}
}

func TestRoundTripEmptyCollections(t *testing.T) {
	date := model.Date{Year: 2025, Month: time.January, Day: 1}
	original := &model.NotificationSummary{
		ID:         SummaryID(date, model.PeriodAllDay),
		Period:     model.PeriodAllDay,
		Date:       date,
		Categories: map[model.Category]int{},
		Highlights: []model.SummaryHighlight{},
		TotalCount: 0,
	}

	payload, err := Serialize(original)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	decoded, err := Deserialize(payload)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if !reflect.DeepEqual(original, decoded) {
		t.Errorf("round trip mismatch: %+v vs %+v", original, decoded)
	}
}

func TestDeserializeRejectsMissingFields(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not json", "{{{"},
		{"empty object", "{}"},
		{"missing id", `{"period":"MORNING","date":"2025-03-10","totalCount":1,"categories":{},"highlights":[]}`},
		{"missing period", `{"id":"x","date":"2025-03-10","totalCount":1,"categories":{},"highlights":[]}`},
		{"missing date", `{"id":"x","period":"MORNING","totalCount":1,"categories":{},"highlights":[]}`},
		{"missing totalCount", `{"id":"x","period":"MORNING","date":"2025-03-10","categories":{},"highlights":[]}`},
		{"missing categories", `{"id":"x","period":"MORNING","date":"2025-03-10","totalCount":1,"highlights":[]}`},
		{"missing highlights", `{"id":"x","period":"MORNING","date":"2025-03-10","totalCount":1,"categories":{}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Deserialize(tt.payload)
			if err == nil {
				t.Fatal("Deserialize succeeded, want DecodeError")
			}
			if !IsDecodeError(err) {
				t.Errorf("err = %v, want a DecodeError", err)
			}
		})
	}
}

func TestDeserializeRejectsUnknownLabels(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"bad period", `{"id":"x","period":"BRUNCH","date":"2025-03-10","totalCount":1,"categories":{},"highlights":[]}`},
		{"bad date", `{"id":"x","period":"MORNING","date":"soon","totalCount":1,"categories":{},"highlights":[]}`},
		{"bad category key", `{"id":"x","period":"MORNING","date":"2025-03-10","totalCount":1,"categories":{"SPAM":2},"highlights":[]}`},
		{"bad highlight category", `{"id":"x","period":"MORNING","date":"2025-03-10","totalCount":1,"categories":{},"highlights":[{"title":"t","content":"c","category":"SPAM","importance":"LOW"}]}`},
		{"bad highlight importance", `{"id":"x","period":"MORNING","date":"2025-03-10","totalCount":1,"categories":{},"highlights":[{"title":"t","content":"c","category":"NEWS","importance":"EXTREME"}]}`},
		{"incomplete highlight", `{"id":"x","period":"MORNING","date":"2025-03-10","totalCount":1,"categories":{},"highlights":[{"title":"t"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Deserialize(tt.payload)
			if !IsDecodeError(err) {
				t.Errorf("err = %v, want a DecodeError", err)
			}
		})
	}
}

func TestSummaryID(t *testing.T) {
	date := model.Date{Year: 2025, Month: time.March, Day: 10}
	if got := SummaryID(date, model.PeriodAllDay); got != "2025-03-10_ALL_DAY" {
		t.Errorf("SummaryID = %q, want 2025-03-10_ALL_DAY", got)
	}
	// Deterministic: same inputs, same id.
	if SummaryID(date, model.PeriodNight) != SummaryID(date, model.PeriodNight) {
		t.Error("SummaryID is not deterministic")
	}
}
