package application

import "errors"

var (
	// ErrOfferNotFound ...
	ErrOfferNotFound = errors.New("offer not found in the local book")
	// ErrOwnerNotReachable is returned when an owner-initiated removal cannot
	// be honored because the claimed owner address does not answer. A stolen
	// or replayed signature must not remove a still-online maker's offer.
	ErrOwnerNotReachable = errors.New(
		"offer owner is not reachable, refusing removal",
	)
	// ErrOwnerKeyMismatch is returned when signing a removal with a key that
	// does not match the offer's owner pub key.
	ErrOwnerKeyMismatch = errors.New(
		"signing key does not match the offer owner pub key",
	)
)
