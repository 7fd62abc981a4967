package domain

import "time"

// BookEntry is an offer record as stored by a node of the overlay, together
// with the bookkeeping the overlay needs to evict it. The bookkeeping is
// transport-only: it never participates in the record's content hash or
// equality.
type BookEntry struct {
	// Hash is the hex content hash of the offer, the storage key.
	Hash  string
	Offer *Offer
	// CurrencyCode is denormalized from the offer for filtered lookups.
	CurrencyCode string
	StoredAt     int64 // unix seconds
	ExpiresAt    int64 // unix seconds
}

// NewBookEntry stamps the absolute expiry of a received offer from its time
// to live. Expiry is recomputed on every store on purpose: a re-gossiped copy
// of the record refreshes its lifetime.
func NewBookEntry(offer *Offer, now time.Time) *BookEntry {
	return &BookEntry{
		Hash:         offer.HashHex(),
		Offer:        offer,
		CurrencyCode: offer.CurrencyCode(),
		StoredAt:     now.Unix(),
		ExpiresAt:    now.Add(offer.TTL()).Unix(),
	}
}

// Refresh re-stamps the expiry as if the entry were stored anew.
func (e *BookEntry) Refresh(now time.Time) {
	e.StoredAt = now.Unix()
	e.ExpiresAt = now.Add(e.Offer.TTL()).Unix()
}

// IsExpired returns whether the entry's time to live elapsed at the given
// instant.
func (e *BookEntry) IsExpired(now time.Time) bool {
	return now.Unix() >= e.ExpiresAt
}
