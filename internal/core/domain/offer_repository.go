package domain

import "context"

// OfferRepository is the abstraction for any kind of database intended to
// persist the node's view of the offer book.
type OfferRepository interface {
	// AddEntry persists a new book entry, keyed by its content hash.
	AddEntry(ctx context.Context, entry *BookEntry) error
	// GetEntry returns the entry with the given hash, or nil if not found.
	GetEntry(ctx context.Context, hash string) (*BookEntry, error)
	// GetAllEntries returns all the entries stored in the repository.
	GetAllEntries(ctx context.Context) ([]*BookEntry, error)
	// GetEntriesForCurrency returns all the entries whose offer trades the
	// given non-primary asset code.
	GetEntriesForCurrency(ctx context.Context, currencyCode string) ([]*BookEntry, error)
	// UpdateEntry allows to commit multiple changes to the same entry in a
	// transactional way.
	UpdateEntry(
		ctx context.Context,
		hash string,
		updateFn func(e *BookEntry) (*BookEntry, error),
	) error
	// DeleteEntry removes the entry with the given hash.
	DeleteEntry(ctx context.Context, hash string) error
	// DeleteExpiredEntries removes every entry whose expiry is at or before
	// the given unix time and returns how many were removed.
	DeleteExpiredEntries(ctx context.Context, now int64) (int, error)
}
