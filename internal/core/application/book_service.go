package application

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/offerbook-network/offerbook-daemon/internal/core/domain"
	"github.com/offerbook-network/offerbook-daemon/internal/core/ports"
)

// BookService is the storing-node side of the storage overlay boundary: it
// accepts gossiped offer records into the local book, refreshes re-gossiped
// copies, and honors owner-authenticated removals.
type BookService struct {
	repo   domain.OfferRepository
	prober ports.LivenessProber
}

// NewBookService returns a new BookService backed by the given repository and
// owner-liveness prober.
func NewBookService(
	repo domain.OfferRepository, prober ports.LivenessProber,
) *BookService {
	return &BookService{repo: repo, prober: prober}
}

// Store decodes, validates and stores the wire bytes of a received offer
// record. A copy of an already stored record refreshes its expiry instead of
// duplicating it: equality of content hashes is the sole deduplication
// criterion.
func (s *BookService) Store(
	ctx context.Context, wireBytes []byte,
) (*domain.BookEntry, error) {
	offer, err := domain.DeserializeOffer(wireBytes)
	if err != nil {
		offersRejectedCounter.Inc()
		return nil, err
	}
	if err := offer.Validate(); err != nil {
		offersRejectedCounter.Inc()
		return nil, err
	}

	hash := offer.HashHex()
	now := time.Now()

	existing, err := s.repo.GetEntry(ctx, hash)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		var refreshed *domain.BookEntry
		if err := s.repo.UpdateEntry(
			ctx, hash,
			func(e *domain.BookEntry) (*domain.BookEntry, error) {
				e.Refresh(now)
				refreshed = e
				return e, nil
			},
		); err != nil {
			return nil, err
		}
		offersRefreshedCounter.Inc()
		log.WithField("hash", hash).Debug("refreshed offer record")
		return refreshed, nil
	}

	entry := domain.NewBookEntry(offer, now)
	if err := s.repo.AddEntry(ctx, entry); err != nil {
		return nil, err
	}
	offersStoredCounter.Inc()
	log.WithField("hash", hash).
		WithField("currency", entry.CurrencyCode).
		Debug("stored offer record")
	return entry, nil
}

// Remove evicts the record with the given hash on behalf of its owner. The
// signature must verify against the pub key that published the record, and
// since offer records require their owner to be online, the owner's claimed
// address must currently be reachable.
func (s *BookService) Remove(
	ctx context.Context, hash string, signature []byte,
) error {
	entry, err := s.repo.GetEntry(ctx, hash)
	if err != nil {
		return err
	}
	if entry == nil {
		return ErrOfferNotFound
	}

	offer := entry.Offer
	if err := offer.OwnerPubKeyRing.VerifySignature(
		offer.Hash(), signature,
	); err != nil {
		return err
	}

	if offer.OwnerMustBeOnline() &&
		!s.prober.IsReachable(ctx, offer.OwnerAddress()) {
		return ErrOwnerNotReachable
	}

	if err := s.repo.DeleteEntry(ctx, hash); err != nil {
		return err
	}
	offersRemovedCounter.Inc()
	log.WithField("hash", hash).Debug("removed offer record on owner request")
	return nil
}

// GetEntry returns the stored entry with the given hash. An expired entry
// that the sweeper has not evicted yet is reported as not found.
func (s *BookService) GetEntry(
	ctx context.Context, hash string,
) (*domain.BookEntry, error) {
	entry, err := s.repo.GetEntry(ctx, hash)
	if err != nil {
		return nil, err
	}
	if entry == nil || entry.IsExpired(time.Now()) {
		return nil, ErrOfferNotFound
	}
	return entry, nil
}

// ListEntries returns the node's current view of the offer book, optionally
// filtered by the offer's non-primary asset code.
func (s *BookService) ListEntries(
	ctx context.Context, currencyCode string,
) ([]*domain.BookEntry, error) {
	var entries []*domain.BookEntry
	var err error
	if currencyCode != "" {
		entries, err = s.repo.GetEntriesForCurrency(ctx, currencyCode)
	} else {
		entries, err = s.repo.GetAllEntries(ctx)
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	alive := make([]*domain.BookEntry, 0, len(entries))
	for _, e := range entries {
		if !e.IsExpired(now) {
			alive = append(alive, e)
		}
	}
	return alive, nil
}
