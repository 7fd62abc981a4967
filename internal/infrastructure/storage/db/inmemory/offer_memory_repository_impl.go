package inmemory

import (
	"context"
	"sync"

	"github.com/offerbook-network/offerbook-daemon/internal/core/domain"
)

type offerInmemoryStore struct {
	entries map[string]*domain.BookEntry
	locker  *sync.Mutex
}

type offerRepositoryImpl struct {
	store *offerInmemoryStore
}

// NewOfferRepositoryImpl returns a new inmemory OfferRepository implementation.
func NewOfferRepositoryImpl() domain.OfferRepository {
	return &offerRepositoryImpl{
		store: &offerInmemoryStore{
			entries: map[string]*domain.BookEntry{},
			locker:  &sync.Mutex{},
		},
	}
}

func (r offerRepositoryImpl) AddEntry(_ context.Context, entry *domain.BookEntry) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	r.store.entries[entry.Hash] = entry
	return nil
}

func (r offerRepositoryImpl) GetEntry(_ context.Context, hash string) (*domain.BookEntry, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	return r.getEntry(hash), nil
}

func (r offerRepositoryImpl) GetAllEntries(_ context.Context) ([]*domain.BookEntry, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	entries := make([]*domain.BookEntry, 0, len(r.store.entries))
	for _, e := range r.store.entries {
		entries = append(entries, e)
	}
	return entries, nil
}

func (r offerRepositoryImpl) GetEntriesForCurrency(
	_ context.Context, currencyCode string,
) ([]*domain.BookEntry, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	entries := make([]*domain.BookEntry, 0)
	for _, e := range r.store.entries {
		if e.CurrencyCode == currencyCode {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (r offerRepositoryImpl) UpdateEntry(
	_ context.Context,
	hash string,
	updateFn func(e *domain.BookEntry) (*domain.BookEntry, error),
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	entry := r.getEntry(hash)
	if entry == nil {
		return ErrEntryNotFound
	}

	updated, err := updateFn(entry)
	if err != nil {
		return err
	}

	r.store.entries[hash] = updated
	return nil
}

func (r offerRepositoryImpl) DeleteEntry(_ context.Context, hash string) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	if _, ok := r.store.entries[hash]; !ok {
		return ErrEntryNotFound
	}

	delete(r.store.entries, hash)
	return nil
}

func (r offerRepositoryImpl) DeleteExpiredEntries(
	_ context.Context, now int64,
) (int, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	count := 0
	for hash, e := range r.store.entries {
		if now >= e.ExpiresAt {
			delete(r.store.entries, hash)
			count++
		}
	}
	return count, nil
}

func (r offerRepositoryImpl) getEntry(hash string) *domain.BookEntry {
	entry, ok := r.store.entries[hash]
	if !ok {
		return nil
	}
	return entry
}
