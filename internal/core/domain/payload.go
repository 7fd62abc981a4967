package domain

import "time"

// StoragePayload is the capability set every payload stored in the overlay
// must provide: a content hash for deduplication and keying, and the owner's
// signature pub key for verifying owner-authenticated operations.
type StoragePayload interface {
	Hash() []byte
	OwnerPubKey() []byte
}

// ExpirablePayload is implemented by payloads that the overlay evicts after a
// time to live. The overlay computes the absolute expiry at the moment of
// storage, so a re-gossiped copy refreshes its lifetime.
type ExpirablePayload interface {
	TTL() time.Duration
}

// RequiresOwnerIsOnline is implemented by payloads whose owner-initiated
// removal must be rejected unless the owner's claimed network address is
// currently reachable. This keeps a stolen or replayed signature from
// removing a still-valid, still-online maker's record.
type RequiresOwnerIsOnline interface {
	OwnerMustBeOnline() bool
	OwnerAddress() NodeAddress
}
