package model

import "testing"

func TestParseCategory(t *testing.T) {
	for _, c := range Categories {
		got, err := ParseCategory(string(c))
		if err != nil || got != c {
			t.Errorf("ParseCategory(%q) = %v, %v", c, got, err)
		}
	}
	for _, s := range []string{"", "SPAM", "personal_message"} {
		if _, err := ParseCategory(s); err == nil {
			t.Errorf("ParseCategory(%q) succeeded, want error", s)
		}
	}
}

func TestCategoryOrOther(t *testing.T) {
	if got := CategoryOrOther("EMAIL"); got != CategoryEmail {
		t.Errorf("CategoryOrOther(EMAIL) = %v", got)
	}
	if got := CategoryOrOther(""); got != CategoryOther {
		t.Errorf("CategoryOrOther(empty) = %v, want OTHER", got)
	}
	if got := CategoryOrOther("bogus"); got != CategoryOther {
		t.Errorf("CategoryOrOther(bogus) = %v, want OTHER", got)
	}
}

func TestHighlightImportanceOrdering(t *testing.T) {
	if !(ImportanceLow < ImportanceMedium &&
		ImportanceMedium < ImportanceHigh &&
		ImportanceHigh < ImportanceCritical) {
		t.Error("importance tiers are not ordered LOW < MEDIUM < HIGH < CRITICAL")
	}
}

func TestParseHighlightImportance(t *testing.T) {
	for _, imp := range []HighlightImportance{ImportanceLow, ImportanceMedium, ImportanceHigh, ImportanceCritical} {
		got, err := ParseHighlightImportance(imp.String())
		if err != nil || got != imp {
			t.Errorf("ParseHighlightImportance(%q) = %v, %v", imp.String(), got, err)
		}
	}
	if _, err := ParseHighlightImportance("EXTREME"); err == nil {
		t.Error("ParseHighlightImportance accepted an unknown label")
	}
}
