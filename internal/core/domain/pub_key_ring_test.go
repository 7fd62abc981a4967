package domain_test

import (
	"crypto/sha256"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/stretchr/testify/require"

	"github.com/offerbook-network/offerbook-daemon/internal/core/domain"
)

func TestPubKeyRingVerifySignature(t *testing.T) {
	t.Parallel()

	privKey, err := btcec.NewPrivateKey()
	require.NoError(t, err)

	ring := domain.NewPubKeyRing(
		privKey.PubKey().SerializeCompressed(), nil,
	)

	hash := sha256.Sum256([]byte("offer content"))
	sig := ecdsa.Sign(privKey, hash[:])

	err = ring.VerifySignature(hash[:], sig.Serialize())
	require.NoError(t, err)
}

func TestFailingPubKeyRingVerifySignature(t *testing.T) {
	t.Parallel()

	privKey, err := btcec.NewPrivateKey()
	require.NoError(t, err)
	otherKey, err := btcec.NewPrivateKey()
	require.NoError(t, err)

	hash := sha256.Sum256([]byte("offer content"))
	sig := ecdsa.Sign(privKey, hash[:])

	tests := []struct {
		name          string
		ring          domain.PubKeyRing
		signature     []byte
		expectedError error
	}{
		{
			name: "signed_by_another_key",
			ring: domain.NewPubKeyRing(
				otherKey.PubKey().SerializeCompressed(), nil,
			),
			signature:     sig.Serialize(),
			expectedError: domain.ErrInvalidSignature,
		},
		{
			name: "garbage_signature",
			ring: domain.NewPubKeyRing(
				privKey.PubKey().SerializeCompressed(), nil,
			),
			signature:     []byte{0x01, 0x02, 0x03},
			expectedError: domain.ErrInvalidSignature,
		},
		{
			name:          "unparsable_pub_key",
			ring:          domain.NewPubKeyRing([]byte{0xaa}, nil),
			signature:     sig.Serialize(),
			expectedError: domain.ErrOfferMissingOwnerPubKey,
		},
	}

	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.ring.VerifySignature(hash[:], tt.signature)
			require.EqualError(t, err, tt.expectedError.Error())
		})
	}
}
