package model

import "fmt"

// Category classifies a notification by the kind of content it carries.
type Category string

const (
	CategoryPersonalMessage Category = "PERSONAL_MESSAGE"
	CategoryGroupMessage    Category = "GROUP_MESSAGE"
	CategoryEmail           Category = "EMAIL"
	CategorySocialMedia     Category = "SOCIAL_MEDIA"
	CategoryNews            Category = "NEWS"
	CategoryPromotion       Category = "PROMOTION"
	CategorySystem          Category = "SYSTEM"
	CategoryAlert           Category = "ALERT"
	CategoryOther           Category = "OTHER"
)

// Categories lists every valid category in declaration order.
var Categories = []Category{
	CategoryPersonalMessage,
	CategoryGroupMessage,
	CategoryEmail,
	CategorySocialMedia,
	CategoryNews,
	CategoryPromotion,
	CategorySystem,
	CategoryAlert,
	CategoryOther,
}

// ParseCategory maps a stored label back to a Category. Unknown labels are
// an error; persisted records must never silently change meaning.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	switch c {
	case CategoryPersonalMessage, CategoryGroupMessage, CategoryEmail,
		CategorySocialMedia, CategoryNews, CategoryPromotion,
		CategorySystem, CategoryAlert, CategoryOther:
		return c, nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// CategoryOrOther maps a stored label to a Category, falling back to OTHER
// for empty or unrecognized labels. Used on the aggregation path, where a
// notification whose category was never assigned still has to be counted.
func CategoryOrOther(s string) Category {
	c, err := ParseCategory(s)
	if err != nil {
		return CategoryOther
	}
	return c
}
