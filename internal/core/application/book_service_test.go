package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/stretchr/testify/require"

	"github.com/offerbook-network/offerbook-daemon/internal/core/application"
	"github.com/offerbook-network/offerbook-daemon/internal/core/domain"
	"github.com/offerbook-network/offerbook-daemon/internal/infrastructure/storage/db/inmemory"
)

func TestStoreOfferRecord(t *testing.T) {
	t.Parallel()

	repo := inmemory.NewOfferRepositoryImpl()
	book := application.NewBookService(repo, stubProber{reachable: true})
	ctx := context.Background()

	offer, _ := newSignedTestOffer(t)
	wireBytes, err := offer.Serialize()
	require.NoError(t, err)

	entry, err := book.Store(ctx, wireBytes)
	require.NoError(t, err)
	require.NotNil(t, entry)
	require.Equal(t, offer.HashHex(), entry.Hash)
	require.Equal(t, "USD", entry.CurrencyCode)
	require.Equal(t, entry.StoredAt+int64(domain.OfferTTL.Seconds()), entry.ExpiresAt)

	// A copy of the same record must refresh the one entry, not duplicate it.
	refreshed, err := book.Store(ctx, wireBytes)
	require.NoError(t, err)
	require.NotNil(t, refreshed)
	require.Equal(t, entry.Hash, refreshed.Hash)
	require.True(t, refreshed.ExpiresAt >= entry.ExpiresAt)

	entries, err := book.ListEntries(ctx, "")
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestStoreRejectsInvalidRecords(t *testing.T) {
	t.Parallel()

	repo := inmemory.NewOfferRepositoryImpl()
	book := application.NewBookService(repo, stubProber{reachable: true})
	ctx := context.Background()

	t.Run("garbage bytes", func(t *testing.T) {
		_, err := book.Store(ctx, []byte{0xff, 0xff, 0xff})
		require.Error(t, err)
	})

	t.Run("invalid offer", func(t *testing.T) {
		offer, _ := newSignedTestOffer(t)
		offer.Amount = 0
		wireBytes, err := offer.Serialize()
		require.NoError(t, err)

		_, err = book.Store(ctx, wireBytes)
		require.ErrorIs(t, err, domain.ErrOfferAmountNotPositive)
	})
}

func TestListEntriesByCurrency(t *testing.T) {
	t.Parallel()

	repo := inmemory.NewOfferRepositoryImpl()
	book := application.NewBookService(repo, stubProber{reachable: true})
	ctx := context.Background()

	usdOffer, _ := newSignedTestOffer(t)
	eurOffer, _ := newSignedTestOffer(t)
	eurOffer.CounterCurrencyCode = "EUR"

	for _, offer := range []*domain.Offer{usdOffer, eurOffer} {
		wireBytes, err := offer.Serialize()
		require.NoError(t, err)
		_, err = book.Store(ctx, wireBytes)
		require.NoError(t, err)
	}

	entries, err := book.ListEntries(ctx, "EUR")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, eurOffer.HashHex(), entries[0].Hash)

	entries, err = book.ListEntries(ctx, "")
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestExpiredEntriesAreHidden(t *testing.T) {
	t.Parallel()

	repo := inmemory.NewOfferRepositoryImpl()
	book := application.NewBookService(repo, stubProber{reachable: true})
	ctx := context.Background()

	offer, _ := newSignedTestOffer(t)
	entry := domain.NewBookEntry(offer, time.Now().Add(-10*time.Minute))
	require.NoError(t, repo.AddEntry(ctx, entry))

	_, err := book.GetEntry(ctx, entry.Hash)
	require.ErrorIs(t, err, application.ErrOfferNotFound)

	entries, err := book.ListEntries(ctx, "")
	require.NoError(t, err)
	require.Len(t, entries, 0)
}

func TestRemoveOfferRecord(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	newBookWithOffer := func(t *testing.T, reachable bool) (
		*application.BookService, *domain.Offer, *btcec.PrivateKey,
	) {
		repo := inmemory.NewOfferRepositoryImpl()
		book := application.NewBookService(repo, stubProber{reachable: reachable})

		offer, privKey := newSignedTestOffer(t)
		wireBytes, err := offer.Serialize()
		require.NoError(t, err)
		_, err = book.Store(ctx, wireBytes)
		require.NoError(t, err)

		return book, offer, privKey
	}

	t.Run("owner removal", func(t *testing.T) {
		book, offer, privKey := newBookWithOffer(t, true)

		signature := ecdsa.Sign(privKey, offer.Hash()).Serialize()
		require.NoError(t, book.Remove(ctx, offer.HashHex(), signature))

		_, err := book.GetEntry(ctx, offer.HashHex())
		require.ErrorIs(t, err, application.ErrOfferNotFound)
	})

	t.Run("owner offline", func(t *testing.T) {
		book, offer, privKey := newBookWithOffer(t, false)

		signature := ecdsa.Sign(privKey, offer.Hash()).Serialize()
		err := book.Remove(ctx, offer.HashHex(), signature)
		require.ErrorIs(t, err, application.ErrOwnerNotReachable)

		_, err = book.GetEntry(ctx, offer.HashHex())
		require.NoError(t, err)
	})

	t.Run("foreign signature", func(t *testing.T) {
		book, offer, _ := newBookWithOffer(t, true)

		otherKey, err := btcec.NewPrivateKey()
		require.NoError(t, err)
		signature := ecdsa.Sign(otherKey, offer.Hash()).Serialize()

		err = book.Remove(ctx, offer.HashHex(), signature)
		require.ErrorIs(t, err, domain.ErrInvalidSignature)
	})

	t.Run("unknown hash", func(t *testing.T) {
		book, _, privKey := newBookWithOffer(t, true)

		signature := ecdsa.Sign(privKey, []byte("whatever")).Serialize()
		err := book.Remove(ctx, "deadbeef", signature)
		require.ErrorIs(t, err, application.ErrOfferNotFound)
	})
}

func TestSweeperEvictsExpiredEntries(t *testing.T) {
	t.Parallel()

	repo := inmemory.NewOfferRepositoryImpl()
	ctx := context.Background()

	alive, _ := newSignedTestOffer(t)
	expired, _ := newSignedTestOffer(t)
	expired.CounterCurrencyCode = "EUR"

	require.NoError(t, repo.AddEntry(ctx, domain.NewBookEntry(alive, time.Now())))
	require.NoError(t, repo.AddEntry(
		ctx, domain.NewBookEntry(expired, time.Now().Add(-10*time.Minute)),
	))

	sweeper := application.NewSweeper(repo, time.Hour)
	sweeper.Sweep(ctx)

	entries, err := repo.GetAllEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, alive.HashHex(), entries[0].Hash)
}

func TestSweeperStartStop(t *testing.T) {
	t.Parallel()

	repo := inmemory.NewOfferRepositoryImpl()
	sweeper := application.NewSweeper(repo, 10*time.Millisecond)

	sweeper.Start()
	time.Sleep(30 * time.Millisecond)
	sweeper.Stop()
}

type stubProber struct {
	reachable bool
}

func (p stubProber) IsReachable(_ context.Context, _ domain.NodeAddress) bool {
	return p.reachable
}

// newSignedTestOffer returns a valid offer owned by a freshly generated key,
// together with the key itself.
func newSignedTestOffer(t *testing.T) (*domain.Offer, *btcec.PrivateKey) {
	t.Helper()

	privKey, err := btcec.NewPrivateKey()
	require.NoError(t, err)

	encKey, err := btcec.NewPrivateKey()
	require.NoError(t, err)

	offer, err := domain.NewOffer(domain.Offer{
		Id:        "4c2154f6-13a9-4e9a-bc2e-4e2874d2c0cf",
		CreatedAt: 1724668800000,
		OwnerNodeAddress: domain.NodeAddress{
			HostName: "maker.onion",
			Port:     9999,
		},
		OwnerPubKeyRing: domain.NewPubKeyRing(
			privKey.PubKey().SerializeCompressed(),
			encKey.PubKey().SerializeCompressed(),
		),
		Direction:             domain.DirectionSell,
		Price:                 4000000,
		Amount:                500000,
		MinAmount:             100000,
		BaseCurrencyCode:      "XMR",
		CounterCurrencyCode:   "USD",
		PaymentMethodId:       "SEPA",
		MakerPaymentAccountId: "account-1",
		FeePaymentTxId:        "abc123",
		VersionNr:             "1.0.0",
		BlockHeightAtCreation: 2871000,
		TxFee:                 1000,
		MakerFee:              2000,
		BuyerSecurityDeposit:  50000,
		SellerSecurityDeposit: 50000,
		MaxTradeLimit:         500000,
		MaxTradePeriod:        86400000,
		ProtocolVersion:       1,
	})
	require.NoError(t, err)

	return offer, privKey
}
