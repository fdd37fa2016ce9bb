package model

import "fmt"

// HighlightImportance ranks how noteworthy a highlight is. Values are
// ordered: ImportanceLow < ImportanceMedium < ImportanceHigh <
// ImportanceCritical.
type HighlightImportance int

const (
	ImportanceLow HighlightImportance = iota
	ImportanceMedium
	ImportanceHigh
	ImportanceCritical
)

var importanceNames = map[HighlightImportance]string{
	ImportanceLow:      "LOW",
	ImportanceMedium:   "MEDIUM",
	ImportanceHigh:     "HIGH",
	ImportanceCritical: "CRITICAL",
}

func (i HighlightImportance) String() string {
	if name, ok := importanceNames[i]; ok {
		return name
	}
	return fmt.Sprintf("HighlightImportance(%d)", int(i))
}

// ParseHighlightImportance maps a stored label back to an importance tier.
func ParseHighlightImportance(s string) (HighlightImportance, error) {
	for imp, name := range importanceNames {
		if name == s {
			return imp, nil
		}
	}
	return 0, fmt.Errorf("unknown highlight importance %q", s)
}
