package dbbadger

import (
	"context"

	"github.com/offerbook-network/offerbook-daemon/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type offerRepositoryImpl struct {
	store *badgerhold.Store
}

// NewOfferRepositoryImpl returns a badger implementation of the
// OfferRepository interface.
func NewOfferRepositoryImpl(store *badgerhold.Store) domain.OfferRepository {
	return &offerRepositoryImpl{store}
}

func (r offerRepositoryImpl) AddEntry(
	_ context.Context, entry *domain.BookEntry,
) error {
	if err := r.store.Insert(entry.Hash, *entry); err != nil {
		if err == badgerhold.ErrKeyExists {
			return r.store.Update(entry.Hash, *entry)
		}
		return err
	}
	return nil
}

func (r offerRepositoryImpl) GetEntry(
	_ context.Context, hash string,
) (*domain.BookEntry, error) {
	return r.getEntry(hash)
}

func (r offerRepositoryImpl) GetAllEntries(
	_ context.Context,
) ([]*domain.BookEntry, error) {
	return r.findEntries(nil)
}

func (r offerRepositoryImpl) GetEntriesForCurrency(
	_ context.Context, currencyCode string,
) ([]*domain.BookEntry, error) {
	query := badgerhold.Where("CurrencyCode").Eq(currencyCode)
	return r.findEntries(query)
}

func (r offerRepositoryImpl) UpdateEntry(
	_ context.Context,
	hash string,
	updateFn func(e *domain.BookEntry) (*domain.BookEntry, error),
) error {
	entry, err := r.getEntry(hash)
	if err != nil {
		return err
	}
	if entry == nil {
		return ErrEntryNotFound
	}

	updated, err := updateFn(entry)
	if err != nil {
		return err
	}

	return r.store.Update(hash, *updated)
}

func (r offerRepositoryImpl) DeleteEntry(_ context.Context, hash string) error {
	if err := r.store.Delete(hash, domain.BookEntry{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return ErrEntryNotFound
		}
		return err
	}
	return nil
}

func (r offerRepositoryImpl) DeleteExpiredEntries(
	_ context.Context, now int64,
) (int, error) {
	query := badgerhold.Where("ExpiresAt").Le(now)

	expired, err := r.findEntries(query)
	if err != nil {
		return -1, err
	}
	if len(expired) == 0 {
		return 0, nil
	}

	if err := r.store.DeleteMatching(&domain.BookEntry{}, query); err != nil {
		return -1, err
	}
	return len(expired), nil
}

func (r offerRepositoryImpl) getEntry(hash string) (*domain.BookEntry, error) {
	var entry domain.BookEntry
	if err := r.store.Get(hash, &entry); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r offerRepositoryImpl) findEntries(
	query *badgerhold.Query,
) ([]*domain.BookEntry, error) {
	var list []domain.BookEntry
	if err := r.store.Find(&list, query); err != nil {
		return nil, err
	}

	entries := make([]*domain.BookEntry, 0, len(list))
	for i := range list {
		entries = append(entries, &list[i])
	}
	return entries, nil
}
