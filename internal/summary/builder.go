package summary

import (
	"sort"

	"github.com/AndyChen1024/NotiMind/internal/appmeta"
	"github.com/AndyChen1024/NotiMind/internal/classify"
	"github.com/AndyChen1024/NotiMind/internal/model"
)

// Highlight selection caps: at most three highlights from any one category
// feed the merge, and the merged list holds at most ten.
const (
	maxHighlightsPerCategory = 3
	maxHighlights            = 10
)

// Build aggregates notifications already filtered to one (date, period)
// window into a summary. Callers pass a non-empty list; empty buckets are
// skipped upstream rather than persisted as zero summaries.
func Build(date model.Date, period model.TimePeriod, notifications []model.Notification) *model.NotificationSummary {
	return &model.NotificationSummary{
		ID:         SummaryID(date, period),
		Period:     period,
		Date:       date,
		Categories: countCategories(notifications),
		Highlights: selectHighlights(notifications),
		TotalCount: len(notifications),
	}
}

// BuildAppSummary aggregates the notifications of a single source over some
// window. Returns nil when the list is empty: "no summary" is an absence,
// not an empty object. The resolver supplies the icon and a name fallback;
// both lookups are best-effort and never fail the summary.
func BuildAppSummary(sourceID string, notifications []model.Notification, resolver appmeta.Resolver) *model.AppNotificationSummary {
	if len(notifications) == 0 {
		return nil
	}

	name := notifications[0].SourceName
	if name == "" && resolver != nil {
		name = resolver.ResolveName(sourceID)
	}
	if name == "" {
		name = sourceID
	}

	var icon string
	if resolver != nil {
		icon, _ = resolver.ResolveIcon(sourceID)
	}

	return &model.AppNotificationSummary{
		SourceID:          sourceID,
		SourceName:        name,
		Icon:              icon,
		NotificationCount: len(notifications),
		Categories:        countCategories(notifications),
		Highlights:        selectHighlights(notifications),
	}
}

func countCategories(notifications []model.Notification) map[model.Category]int {
	counts := make(map[model.Category]int)
	for i := range notifications {
		counts[model.CategoryOrOther(notifications[i].Category)]++
	}
	return counts
}

// selectHighlights picks the most noteworthy notifications: group by
// category, keep the top three of each, then merge and keep the global top
// ten, sorted by descending importance. The per-category cap keeps a noisy
// category from crowding out everything else. Sorts are stable so that
// within a tier, earlier (newer) notifications win.
func selectHighlights(notifications []model.Notification) []model.SummaryHighlight {
	byCategory := make(map[model.Category][]model.SummaryHighlight)
	for i := range notifications {
		n := &notifications[i]
		category := model.CategoryOrOther(n.Category)

		title := n.Title
		if title == "" {
			title = n.SourceName
		}

		byCategory[category] = append(byCategory[category], model.SummaryHighlight{
			Title:      title,
			Content:    n.Body,
			Category:   category,
			Importance: classify.Importance(category, n.Title, n.Body),
		})
	}

	// Walk categories in declaration order so the merged result is
	// deterministic regardless of map iteration.
	merged := make([]model.SummaryHighlight, 0, len(byCategory)*maxHighlightsPerCategory)
	for _, category := range model.Categories {
		highlights, ok := byCategory[category]
		if !ok {
			continue
		}
		sortByImportance(highlights)
		if len(highlights) > maxHighlightsPerCategory {
			highlights = highlights[:maxHighlightsPerCategory]
		}
		merged = append(merged, highlights...)
	}

	sortByImportance(merged)
	if len(merged) > maxHighlights {
		merged = merged[:maxHighlights]
	}
	return merged
}

func sortByImportance(highlights []model.SummaryHighlight) {
	sort.SliceStable(highlights, func(i, j int) bool {
		return highlights[i].Importance > highlights[j].Importance
	})
}
