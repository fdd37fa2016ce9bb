package model

// Notification is one captured system notification event, normalized for
// storage. Empty Title or Body means the field was absent on the original
// event.
type Notification struct {
	// ID is assigned by the store on insert; zero before insert.
	ID int64 `json:"id"`

	// SourceID is the stable identifier of the posting app
	// (e.g., an Android package name).
	SourceID string `json:"source_id"`

	// SourceName is the human-readable label of the posting app.
	SourceName string `json:"source_name"`

	// Title is the notification title, if any.
	Title string `json:"title"`

	// Body is the notification body text, if any.
	Body string `json:"body"`

	// Timestamp is the capture time in epoch milliseconds.
	Timestamp int64 `json:"timestamp"`

	// Category is the classifier-assigned category label. May be empty for
	// records ingested before classification ran; aggregation falls back
	// to OTHER.
	Category string `json:"category"`

	// Removed is true when this event records a dismissal rather than a
	// posting.
	Removed bool `json:"removed"`

	// Extras holds free-form metadata from the original event
	// (e.g., channel id).
	Extras map[string]string `json:"extras,omitempty"`
}
