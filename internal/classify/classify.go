// Package classify assigns categories and importance tiers to captured
// notifications using deterministic keyword rules. Both functions are pure
// and total: any input maps to some value, never an error.
package classify

import (
	"strings"

	"github.com/AndyChen1024/NotiMind/internal/model"
)

// Keyword tables checked against the source identifier. Substring match,
// case-sensitive: source ids are lowercase by convention.
var (
	messagingSources = []string{"message", "sms", "chat", "talk"}
	mailSources      = []string{"mail", "gmail", "outlook", "yahoo"}
	socialSources    = []string{"facebook", "instagram", "twitter", "tiktok", "linkedin", "weibo", "wechat"}
	newsSources      = []string{"news", "nytimes", "bbc", "cnn"}
	systemSources    = []string{"android", "google", "system", "settings"}
)

// Keyword tables checked case-insensitively against title and body.
var (
	promotionWords = []string{"off", "sale", "discount"}
	alertWords     = []string{"alert", "warning", "urgent"}
)

// Classify maps a notification's source identifier and text to a category.
// Rules are evaluated in a fixed priority order and the first match wins:
// a messaging app whose body mentions a sale is still a message, not a
// promotion. Unmatched input yields OTHER.
func Classify(sourceID, title, body string) model.Category {
	switch {
	case containsAny(sourceID, messagingSources):
		if textContains(title, body, "group") {
			return model.CategoryGroupMessage
		}
		return model.CategoryPersonalMessage
	case containsAny(sourceID, mailSources):
		return model.CategoryEmail
	case containsAny(sourceID, socialSources):
		return model.CategorySocialMedia
	case containsAny(sourceID, newsSources):
		return model.CategoryNews
	case textContainsAny(title, body, promotionWords):
		return model.CategoryPromotion
	case containsAny(sourceID, systemSources):
		return model.CategorySystem
	case textContainsAny(title, body, alertWords):
		return model.CategoryAlert
	default:
		return model.CategoryOther
	}
}

// Importance assigns a ranking tier from the category. Title and body are
// accepted for future content-aware ranking but do not affect the current
// policy.
func Importance(category model.Category, title, body string) model.HighlightImportance {
	switch category {
	case model.CategoryAlert:
		return model.ImportanceCritical
	case model.CategoryPersonalMessage, model.CategoryEmail:
		return model.ImportanceHigh
	case model.CategoryGroupMessage, model.CategorySocialMedia:
		return model.ImportanceMedium
	default:
		return model.ImportanceLow
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func textContains(title, body, keyword string) bool {
	return strings.Contains(strings.ToLower(title), keyword) ||
		strings.Contains(strings.ToLower(body), keyword)
}

func textContainsAny(title, body string, keywords []string) bool {
	for _, kw := range keywords {
		if textContains(title, body, kw) {
			return true
		}
	}
	return false
}
