// rng.go adapts the keyed PRNG into a counter-mode randomness source.
package prng

import "io"

// Rng presents a Prng as a standard fill-bytes randomness source: it
// implements io.Reader, so it composes with key-generation routines that
// expect a CSPRNG reader (crypto/ecdh, circl's ed25519, ...).
//
// Each Read generates output for the current nonce and then increments the
// nonce, so the underlying (key, nonce) pair is never reused for the lifetime
// of the instance. An Rng owns its nonce and must not be shared across
// goroutines.
type Rng struct {
	prng  *Prng
	nonce []byte
}

var _ io.Reader = (*Rng)(nil)

// NewRng creates a counter-mode source over prng starting at the given nonce.
// The nonce is copied; the caller's slice is not retained.
func NewRng(prng *Prng, nonce []byte) *Rng {
	n := make([]byte, len(nonce))
	copy(n, nonce)
	return &Rng{prng: prng, nonce: n}
}

// Read fills p with pseudorandom bytes and advances the nonce. It never
// returns an error; generation cannot fail once the Prng is constructed.
func (r *Rng) Read(p []byte) (int, error) {
	r.prng.Gen(r.nonce, p)
	r.inc()
	return len(p), nil
}

// inc increments the nonce little-endian byte-wise with carry. On full
// overflow the nonce grows by one zero byte, so the nonce space never
// exhausts and never repeats.
func (r *Rng) inc() {
	for i := range r.nonce {
		r.nonce[i]++
		if r.nonce[i] != 0 {
			return
		}
	}
	r.nonce = append(r.nonce, 0)
}

// Nonce returns a copy of the current nonce, for diagnostics and tests.
func (r *Rng) Nonce() []byte {
	n := make([]byte, len(r.nonce))
	copy(n, r.nonce)
	return n
}
