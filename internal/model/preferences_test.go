package model

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPreferencesMissingFileGivesDefaults(t *testing.T) {
	prefs, err := LoadPreferences(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	if prefs.SummaryStyle != StyleTimeBased {
		t.Errorf("SummaryStyle = %v, want TIME_BASED", prefs.SummaryStyle)
	}
	if prefs.DataRetentionDays != DefaultRetentionDays {
		t.Errorf("DataRetentionDays = %d, want %d", prefs.DataRetentionDays, DefaultRetentionDays)
	}
	if len(prefs.ExcludedCategories) != 0 {
		t.Errorf("ExcludedCategories = %v, want empty", prefs.ExcludedCategories)
	}
}

func TestLoadPreferencesDropsUnknownCategories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.yaml")
	content := `
summary_style: APP_BASED
dark_theme: true
data_retention_days: 7
excluded_categories:
  - PROMOTION
  - NOT_A_CATEGORY
  - SOCIAL_MEDIA
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing preferences file: %v", err)
	}

	prefs, err := LoadPreferences(path)
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	if prefs.SummaryStyle != StyleAppBased {
		t.Errorf("SummaryStyle = %v, want APP_BASED", prefs.SummaryStyle)
	}
	if !prefs.DarkTheme {
		t.Error("DarkTheme = false, want true")
	}
	if prefs.DataRetentionDays != 7 {
		t.Errorf("DataRetentionDays = %d, want 7", prefs.DataRetentionDays)
	}
	want := []Category{CategoryPromotion, CategorySocialMedia}
	if len(prefs.ExcludedCategories) != len(want) {
		t.Fatalf("ExcludedCategories = %v, want %v", prefs.ExcludedCategories, want)
	}
	for i, c := range want {
		if prefs.ExcludedCategories[i] != c {
			t.Errorf("ExcludedCategories[%d] = %v, want %v", i, prefs.ExcludedCategories[i], c)
		}
	}
}

func TestSaveLoadPreferencesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "preferences.yaml")
	in := &UserPreferences{
		SummaryStyle:       StyleAppBased,
		DarkTheme:          true,
		DataRetentionDays:  14,
		ExcludedCategories: []Category{CategoryPromotion},
	}
	if err := SavePreferences(path, in); err != nil {
		t.Fatalf("SavePreferences: %v", err)
	}

	out, err := LoadPreferences(path)
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	if out.SummaryStyle != in.SummaryStyle || out.DarkTheme != in.DarkTheme ||
		out.DataRetentionDays != in.DataRetentionDays {
		t.Errorf("round trip gave %+v, want %+v", out, in)
	}
	if len(out.ExcludedCategories) != 1 || out.ExcludedCategories[0] != CategoryPromotion {
		t.Errorf("ExcludedCategories = %v, want [PROMOTION]", out.ExcludedCategories)
	}
}

func TestExcluded(t *testing.T) {
	prefs := &UserPreferences{ExcludedCategories: []Category{CategoryNews}}
	if !prefs.Excluded(CategoryNews) {
		t.Error("Excluded(NEWS) = false, want true")
	}
	if prefs.Excluded(CategoryEmail) {
		t.Error("Excluded(EMAIL) = true, want false")
	}
}
