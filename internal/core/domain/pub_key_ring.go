package domain

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

// PubKeyRing holds the maker's public key material. The signature pub key
// binds ownership of published records, the encryption pub key is used for
// end-to-end encryption with a record's recipient.
type PubKeyRing struct {
	SignaturePubKey  []byte
	EncryptionPubKey []byte
}

// NewPubKeyRing returns a key ring from serialized (compressed) public keys.
func NewPubKeyRing(signaturePubKey, encryptionPubKey []byte) PubKeyRing {
	return PubKeyRing{
		SignaturePubKey:  signaturePubKey,
		EncryptionPubKey: encryptionPubKey,
	}
}

// SignaturePublicKey parses the serialized signature pub key.
func (r PubKeyRing) SignaturePublicKey() (*btcec.PublicKey, error) {
	return btcec.ParsePubKey(r.SignaturePubKey)
}

// VerifySignature checks the given DER signature over hash against the
// ring's signature pub key.
func (r PubKeyRing) VerifySignature(hash, signature []byte) error {
	pubKey, err := r.SignaturePublicKey()
	if err != nil {
		return ErrOfferMissingOwnerPubKey
	}
	sig, err := ecdsa.ParseDERSignature(signature)
	if err != nil {
		return ErrInvalidSignature
	}
	if !sig.Verify(hash, pubKey) {
		return ErrInvalidSignature
	}
	return nil
}
