// Package prng implements the sponge-keyed pseudorandom generator that derives
// session keys, nonces, and per-message randomness for channel participants.
//
// A Prng is a fixed secret key plus a permutation choice. Every generation
// call builds a fresh spongos instance, absorbs the key and a caller-supplied
// nonce, commits, and squeezes the requested length:
//
//	p, err := prng.New(secretKey)
//	...
//	sessionKey := p.GenBytes(nonce, 32)
//
// Determinism is the point: identical (key, nonce, length) always yields
// identical output, which is how independent parties who share the secret
// derive the same keys and message randomness. The caller owns nonce
// uniqueness on this path; the counter-mode Rng adapter owns it automatically.
//
// The helpers in random.go draw from the operating system CSPRNG instead and
// are for ephemeral, non-reproducible material only.
package prng

import (
	"github.com/ledgerstream/streams-go/internal/constants"
	qerrors "github.com/ledgerstream/streams-go/internal/errors"
	"github.com/ledgerstream/streams-go/pkg/sponge"
)

// KeySize is the fixed secret-key size in bytes, equal to the permutation
// capacity in bytes.
const KeySize = constants.KeySize

// Prng is a keyed deterministic randomness generator. The secret key is
// immutable after construction; a Prng is safe for concurrent use as long as
// each call supplies its own nonce.
type Prng struct {
	prp       sponge.PRP
	secretKey []byte
}

// New creates a Prng over the default permutation. The secret key must be
// exactly KeySize bytes; any other length fails with ErrInvalidKeyLength.
func New(secretKey []byte) (*Prng, error) {
	return NewWithPRP(sponge.NewShakePRP(), secretKey)
}

// NewWithPRP creates a Prng over the given permutation.
func NewWithPRP(prp sponge.PRP, secretKey []byte) (*Prng, error) {
	if len(secretKey) != KeySize {
		return nil, qerrors.NewCryptoError("Prng.New", qerrors.ErrInvalidKeyLength)
	}
	key := make([]byte, KeySize)
	copy(key, secretKey)
	return &Prng{prp: prp, secretKey: key}, nil
}

// FromSeed derives a Prng from a passphrase-style seed under a domain label.
// The seed and the domain are committed in two independent sponge rounds, so
// the same seed under different domains yields unrelated keys while the same
// (domain, seed) pair is always reproducible.
func FromSeed(domain, seed string) *Prng {
	return FromSeedWithPRP(sponge.NewShakePRP(), domain, seed)
}

// FromSeedWithPRP is FromSeed over the given permutation.
func FromSeedWithPRP(prp sponge.PRP, domain, seed string) *Prng {
	s := sponge.NewWithPRP(prp)
	s.Absorb([]byte(seed))
	s.Commit()
	s.Absorb([]byte(domain))
	s.Commit()
	p, _ := NewWithPRP(prp, s.SqueezeBytes(KeySize)) // squeezed key has the right length
	return p
}

// DbgFromStr derives a Prng from a bare string with no domain separation.
// It exists for deterministic test fixtures only and must never be used for
// production key material.
func DbgFromStr(secret string) *Prng {
	s := sponge.New()
	s.Absorb([]byte(secret))
	s.Commit()
	p, _ := New(s.SqueezeBytes(KeySize))
	return p
}

// Gen fills out with len(out) deterministic pseudorandom bytes for the given
// nonce. Two calls with the same nonce produce the same output; callers must
// supply a distinct nonce per draw to preserve unpredictability.
func (p *Prng) Gen(nonce, out []byte) {
	s := sponge.NewWithPRP(p.prp)
	s.Absorb(p.secretKey)
	s.Absorb(nonce)
	s.Commit()
	s.Squeeze(out)
}

// GenBytes is the allocating form of Gen.
func (p *Prng) GenBytes(nonce []byte, n int) []byte {
	out := make([]byte, n)
	p.Gen(nonce, out)
	return out
}

// Key returns a copy of the secret key.
func (p *Prng) Key() []byte {
	key := make([]byte, KeySize)
	copy(key, p.secretKey)
	return key
}

// PRP returns the permutation this Prng generates through.
func (p *Prng) PRP() sponge.PRP { return p.prp }
