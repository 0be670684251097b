package domain

import "time"

// ShareEntry is a published read-only snapshot of a plan. The snapshot is a
// deep copy taken at publish time — never a live reference — and the entry is
// immutable once created. ExpiresAt is always CreatedAt plus the store's TTL.
type ShareEntry struct {
	Token     string    `json:"token"`
	Plan      Plan      `json:"plan"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the entry's TTL has elapsed at the given instant.
func (e ShareEntry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}
