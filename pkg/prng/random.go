// random.go provides the non-deterministic helpers, backed by the operating
// system CSPRNG. They generate ephemeral material (session nonces, fresh
// channel keys) that must not be reproducible.
//
// If the secure source is unavailable these helpers fail — with an error or,
// in the Must variants, a panic. There is no fallback to a weaker source:
// silently degrading the randomness would void every security property of the
// derived keys.
package prng

import (
	"crypto/rand"
	"io"

	"github.com/ledgerstream/streams-go/internal/constants"
	qerrors "github.com/ledgerstream/streams-go/internal/errors"
)

// Reader is the process-wide secure randomness source.
var Reader = rand.Reader

// RandomBytes returns n bytes from the secure source.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(Reader, b); err != nil {
		return nil, qerrors.NewCryptoError("RandomBytes", qerrors.ErrNoSecureRandom)
	}
	return b, nil
}

// RandomNonce returns a fresh NonceSize-byte nonce from the secure source.
func RandomNonce() ([]byte, error) {
	return RandomBytes(constants.NonceSize)
}

// RandomKey returns a fresh KeySize-byte secret key from the secure source.
func RandomKey() ([]byte, error) {
	return RandomBytes(KeySize)
}

// MustRandomBytes is RandomBytes but panics if the secure source fails.
// Use only where CSPRNG failure should be unrecoverable.
func MustRandomBytes(n int) []byte {
	b, err := RandomBytes(n)
	if err != nil {
		panic("prng: failed to read from CSPRNG: " + err.Error())
	}
	return b
}

// MustRandomNonce is RandomNonce but panics if the secure source fails.
func MustRandomNonce() []byte {
	return MustRandomBytes(constants.NonceSize)
}

// MustRandomKey is RandomKey but panics if the secure source fails.
func MustRandomKey() []byte {
	return MustRandomBytes(KeySize)
}

// Zeroize overwrites sensitive material with zeros. The Go runtime may have
// already copied the data; treat this as hygiene, not a guarantee.
func Zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
