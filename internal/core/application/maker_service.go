package application

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/offerbook-network/offerbook-daemon/internal/core/domain"
	"github.com/offerbook-network/offerbook-daemon/pkg/challenge"
)

// MakerService drives the maker side of an offer's lifecycle: assembling the
// record, attaching the fee payment once it confirms, publishing to the
// overlay and signing removal requests.
type MakerService struct {
	book *BookService
}

// NewMakerService returns a new MakerService publishing through the given
// book service.
func NewMakerService(book *BookService) *MakerService {
	return &MakerService{book: book}
}

// MakeOffer assembles a new offer record from the given fields, assigning its
// id and creation time, and checks the business invariants. The returned
// record is not published yet: the fee payment tx id is still to be attached.
func (s *MakerService) MakeOffer(fields domain.Offer) (*domain.Offer, error) {
	fields.Id = uuid.New().String()
	fields.CreatedAt = time.Now().UnixNano() / int64(time.Millisecond)

	offer, err := domain.NewOffer(fields)
	if err != nil {
		return nil, err
	}
	if err := offer.Validate(); err != nil {
		return nil, err
	}

	log.WithField("id", offer.Id).
		WithField("direction", offer.Direction.String()).
		WithField("currency", offer.CurrencyCode()).
		Debug("assembled offer record")
	return offer, nil
}

// MakePrivateOffer assembles a private offer record, generating the secret
// that gates it. The hash of the secret travels with the record, the secret
// itself is returned to the maker to be shared out of band.
func (s *MakerService) MakePrivateOffer(
	fields domain.Offer,
) (*domain.Offer, string, error) {
	secret, hash := challenge.New()
	fields.IsPrivateOffer = true
	fields.HashOfChallenge = hash

	offer, err := s.MakeOffer(fields)
	if err != nil {
		return nil, "", err
	}
	return offer, secret, nil
}

// AttachFeeTx sets the confirmed fee payment tx id on the maker's local copy.
// The transition happens exactly once.
func (s *MakerService) AttachFeeTx(offer *domain.Offer, txid string) error {
	return offer.SetFeeTxID(txid)
}

// PublishOffer serializes the record and hands it to the storage overlay. It
// fails with the codec's precondition error if the fee payment tx id was
// never attached.
func (s *MakerService) PublishOffer(
	ctx context.Context, offer *domain.Offer,
) (*domain.BookEntry, error) {
	wireBytes, err := offer.Serialize()
	if err != nil {
		return nil, err
	}
	return s.book.Store(ctx, wireBytes)
}

// SignRemoval produces the owner signature over the record's content hash
// that authorizes its removal from the overlay. The signing key must be the
// one whose pub key published the record.
func (s *MakerService) SignRemoval(
	privKey *btcec.PrivateKey, offer *domain.Offer,
) ([]byte, error) {
	pubKey, err := offer.OwnerPubKeyRing.SignaturePublicKey()
	if err != nil {
		return nil, err
	}
	if !privKey.PubKey().IsEqual(pubKey) {
		return nil, ErrOwnerKeyMismatch
	}
	return ecdsa.Sign(privKey, offer.Hash()).Serialize(), nil
}
