package storage

import (
	"time"
)

// Entry is a resource stored in a key/value backend.
type Entry struct {
	// Data is the resource content
	Data []byte `json:"data"`

	// ContentType describes Data (e.g., "text/plain; charset=utf-8")
	ContentType string `json:"content_type,omitempty"`

	// StoredAt is when the entry was written
	StoredAt time.Time `json:"stored_at"`

	// Expires is when the entry stops being served. Zero means never.
	Expires time.Time `json:"expires,omitzero"`
}

// IsExpired returns true if the entry has an expiry in the past.
func (e *Entry) IsExpired() bool {
	return !e.Expires.IsZero() && time.Now().After(e.Expires)
}

// TTL returns the time until expiration.
// Returns 0 for entries without expiry and for expired entries.
func (e *Entry) TTL() time.Duration {
	if e.Expires.IsZero() {
		return 0
	}
	ttl := time.Until(e.Expires)
	if ttl < 0 {
		return 0
	}
	return ttl
}
