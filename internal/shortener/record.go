package shortener

import "time"

// Slug is the short public identifier of a record.
type Slug string

// Record is the durable mapping from a slug to its destination.
type Record struct {
	ID        string
	Slug      Slug
	Original  string
	OwnerID   *string // nil for anonymous records
	Visits    int64
	CreatedAt time.Time
}

// OwnedBy reports whether the record belongs to ownerID.
func (r *Record) OwnedBy(ownerID string) bool {
	return r.OwnerID != nil && *r.OwnerID == ownerID
}
