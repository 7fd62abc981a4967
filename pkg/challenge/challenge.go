// Package challenge generates and verifies the pre-shared secrets guarding
// private offers. The maker shares the secret out of band; only its hash
// travels with the record, and a taker proves knowledge of the secret before
// the offer becomes visible to them.
package challenge

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"github.com/thanhpk/randstr"
)

const secretByteLen = 16

// New returns a fresh random secret and its hash.
func New() (secret, hash string) {
	secret = randstr.Hex(secretByteLen)
	return secret, Hash(secret)
}

// Hash returns the hex hash of a secret, the form embedded in a private
// offer record.
func Hash(secret string) string {
	h := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(h[:])
}

// Verify reports whether the secret matches the given hash in constant time.
func Verify(secret, hash string) bool {
	return subtle.ConstantTimeCompare([]byte(Hash(secret)), []byte(hash)) == 1
}
