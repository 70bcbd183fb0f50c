package analytics

import "time"

const (
	TopicSlugCreated  = "slug.created"
	TopicSlugResolved = "slug.resolved"
	TopicSlugRenamed  = "slug.renamed"
)

// SlugCreatedEvent is emitted after a short link has been allocated.
type SlugCreatedEvent struct {
	RecordID  string    `json:"recordId"`
	Slug      string    `json:"slug"`
	Original  string    `json:"original"`
	Custom    bool      `json:"custom"`
	OwnerID   string    `json:"ownerId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	ClientIP  string    `json:"clientIp"`
	UserAgent string    `json:"userAgent"`
}

// SlugResolvedEvent is emitted for every successful redirect.
type SlugResolvedEvent struct {
	Slug       string    `json:"slug"`
	ResolvedAt time.Time `json:"resolvedAt"`
	ClientIP   string    `json:"clientIp"`
	UserAgent  string    `json:"userAgent"`
	Referrer   string    `json:"referrer,omitempty"`
}

// SlugRenamedEvent is emitted after an owner moved a record to a new slug.
type SlugRenamedEvent struct {
	RecordID  string    `json:"recordId"`
	OldSlug   string    `json:"oldSlug"`
	NewSlug   string    `json:"newSlug"`
	OwnerID   string    `json:"ownerId"`
	RenamedAt time.Time `json:"renamedAt"`
}
