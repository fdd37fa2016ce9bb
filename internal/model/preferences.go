package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// SummaryStyle selects how the summary view groups digests.
type SummaryStyle string

const (
	StyleTimeBased SummaryStyle = "TIME_BASED"
	StyleAppBased  SummaryStyle = "APP_BASED"
)

// ParseSummaryStyle maps a stored label to a SummaryStyle, falling back to
// TIME_BASED for unknown labels. A bad preferences file should degrade to
// defaults, not break the app.
func ParseSummaryStyle(s string) SummaryStyle {
	if SummaryStyle(s) == StyleAppBased {
		return StyleAppBased
	}
	return StyleTimeBased
}

// UserPreferences holds the user-tunable settings the pipeline consumes.
// The generation path ignores ExcludedCategories; exclusion is applied only
// when summaries are read back.
type UserPreferences struct {
	// SummaryStyle selects time-based or app-based grouping.
	SummaryStyle SummaryStyle `mapstructure:"summary_style" yaml:"summary_style"`

	// DarkTheme toggles the dark UI theme. The core pipeline never reads it.
	DarkTheme bool `mapstructure:"dark_theme" yaml:"dark_theme"`

	// DataRetentionDays is how long raw notifications are kept before the
	// prune job deletes them.
	DataRetentionDays int `mapstructure:"data_retention_days" yaml:"data_retention_days"`

	// ExcludedCategories are hidden from summary read paths.
	ExcludedCategories []Category `mapstructure:"excluded_categories" yaml:"excluded_categories"`
}

// DefaultRetentionDays is the retention applied when preferences do not
// specify one.
const DefaultRetentionDays = 30

// DefaultPreferences returns the settings used before the user changes
// anything.
func DefaultPreferences() *UserPreferences {
	return &UserPreferences{
		SummaryStyle:      StyleTimeBased,
		DarkTheme:         false,
		DataRetentionDays: DefaultRetentionDays,
	}
}

// Excluded reports whether the given category is hidden by preferences.
func (p *UserPreferences) Excluded(c Category) bool {
	for _, e := range p.ExcludedCategories {
		if e == c {
			return true
		}
	}
	return false
}

// DefaultPreferencesPath returns the default path for the preferences file,
// located at ~/.config/notimind/preferences.yaml.
func DefaultPreferencesPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "preferences.yaml")
	}
	return filepath.Join(home, ".config", "notimind", "preferences.yaml")
}

// LoadPreferences reads the preferences YAML file at path using Viper.
// A missing file yields defaults. Unknown excluded-category names are
// dropped rather than failing the load, matching how the settings store has
// always behaved.
func LoadPreferences(path string) (*UserPreferences, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("summary_style", string(StyleTimeBased))
	v.SetDefault("dark_theme", false)
	v.SetDefault("data_retention_days", DefaultRetentionDays)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return DefaultPreferences(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultPreferences(), nil
		}
		return nil, fmt.Errorf("reading preferences %s: %w", path, err)
	}

	prefs := DefaultPreferences()
	prefs.SummaryStyle = ParseSummaryStyle(v.GetString("summary_style"))
	prefs.DarkTheme = v.GetBool("dark_theme")
	if days := v.GetInt("data_retention_days"); days > 0 {
		prefs.DataRetentionDays = days
	}

	prefs.ExcludedCategories = nil
	for _, name := range v.GetStringSlice("excluded_categories") {
		c, err := ParseCategory(name)
		if err != nil {
			continue
		}
		prefs.ExcludedCategories = append(prefs.ExcludedCategories, c)
	}

	return prefs, nil
}

// SavePreferences writes preferences to a YAML file at path, creating
// parent directories if needed.
func SavePreferences(path string, prefs *UserPreferences) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating preferences directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	excluded := make([]string, 0, len(prefs.ExcludedCategories))
	for _, c := range prefs.ExcludedCategories {
		excluded = append(excluded, string(c))
	}

	v.Set("summary_style", string(prefs.SummaryStyle))
	v.Set("dark_theme", prefs.DarkTheme)
	v.Set("data_retention_days", prefs.DataRetentionDays)
	v.Set("excluded_categories", excluded)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing preferences to %s: %w", path, err)
	}

	return nil
}
