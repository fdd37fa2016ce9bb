package model

// SummaryHighlight is one noteworthy notification selected into a summary.
// It has no identity of its own; it only exists embedded in a summary.
type SummaryHighlight struct {
	Title      string              `json:"title"`
	Content    string              `json:"content"`
	Category   Category            `json:"category"`
	Importance HighlightImportance `json:"importance"`
}

// NotificationSummary is the generated digest for one (date, period) pair.
type NotificationSummary struct {
	// ID is deterministically derived from date and period
	// ({date}_{PERIOD}), so regenerating overwrites instead of duplicating.
	ID string

	Period TimePeriod
	Date   Date

	// Categories counts notifications per category. Only categories that
	// actually occurred appear; every count is positive.
	Categories map[Category]int

	// Highlights is sorted by descending importance and holds at most ten
	// entries.
	Highlights []SummaryHighlight

	// TotalCount is the number of notifications the summary covers.
	TotalCount int
}

// AppNotificationSummary is a digest scoped to a single source app over a
// time range. It is never persisted; it is recomputed per query.
type AppNotificationSummary struct {
	SourceID   string
	SourceName string

	// Icon is an opaque handle to the app's icon resource; empty when the
	// metadata resolver could not provide one.
	Icon string

	NotificationCount int
	Categories        map[Category]int
	Highlights        []SummaryHighlight
}
