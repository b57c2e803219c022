// Package sponge implements the duplex sponge (spongos) state machine the
// channel core derives all deterministic randomness from.
//
// A Spongos instance alternates absorb and squeeze phases separated by an
// explicit commit:
//
//	s := sponge.New()
//	s.Absorb(key)
//	s.Absorb(nonce)
//	s.Commit()
//	out := s.SqueezeBytes(64)
//
// Absorb folds input into the exposed (rate) portion of the state, invoking
// the permutation whenever the rate fills. Commit finalizes the absorbed
// material and switches the instance to squeeze mode. Squeeze extracts output
// from the rate, permuting as it drains, so consecutive squeezes never repeat.
// Absorbing again after a squeeze legally begins the next round.
//
// Squeezing before any commit is a programmer error and fails fast with a
// panic: Go cannot encode the mode transition in the type system, so the
// ordering constraint is enforced with a checked runtime flag instead.
package sponge

import "github.com/ledgerstream/streams-go/internal/constants"

type mode uint8

const (
	modeAbsorb mode = iota
	modeSqueeze
)

// Spongos is a duplex sponge over an opaque permutation.
//
// Instances are cheap and single-purpose: construct one per derivation, use
// it through one or more absorb→commit→squeeze rounds, and discard it. A
// Spongos must not be shared across goroutines.
type Spongos struct {
	prp   PRP
	state []byte
	pos   int
	mode  mode
}

// New creates a zeroed spongos in absorb mode over the default permutation.
func New() *Spongos { return NewWithPRP(NewShakePRP()) }

// NewWithPRP creates a zeroed spongos in absorb mode over the given permutation.
func NewWithPRP(prp PRP) *Spongos {
	return &Spongos{
		prp:   prp,
		state: make([]byte, prp.RateSize()+prp.CapacityBits()/8),
	}
}

// PRP returns the permutation this instance is built on.
func (s *Spongos) PRP() PRP { return s.prp }

// Absorb folds data into the state. Callable any number of times before a
// commit; calling it after a squeeze starts the next absorb round.
func (s *Spongos) Absorb(data []byte) {
	if s.mode == modeSqueeze {
		// Next round: hide the squeezed rate before accepting new input.
		s.prp.Permute(s.state)
		s.pos = 0
		s.mode = modeAbsorb
	}
	rate := s.prp.RateSize()
	for _, b := range data {
		s.state[s.pos] ^= b
		s.pos++
		if s.pos == rate {
			s.prp.Permute(s.state)
			s.pos = 0
		}
	}
}

// Commit finalizes the absorbed material into the permutation state and
// switches the instance to squeeze mode. Committing twice without an
// intervening absorb or squeeze is a programmer error.
func (s *Spongos) Commit() {
	if s.mode != modeAbsorb {
		panic("sponge: commit while in squeeze mode")
	}
	rate := s.prp.RateSize()
	// Multi-rate padding marks the end of the absorbed input.
	s.state[s.pos] ^= 0x01
	s.state[rate-1] ^= 0x80
	s.prp.Permute(s.state)
	s.pos = 0
	s.mode = modeSqueeze
}

// Squeeze fills out with pseudorandom bytes derived from the committed state.
// Each call advances the internal state, so consecutive squeezes produce
// distinct output. Panics if called before Commit.
func (s *Spongos) Squeeze(out []byte) {
	if s.mode != modeSqueeze {
		panic("sponge: squeeze before commit")
	}
	rate := s.prp.RateSize()
	for i := range out {
		if s.pos == rate {
			s.prp.Permute(s.state)
			s.pos = 0
		}
		out[i] = s.state[s.pos]
		s.pos++
	}
}

// SqueezeBytes is the allocating form of Squeeze.
func (s *Spongos) SqueezeBytes(n int) []byte {
	out := make([]byte, n)
	s.Squeeze(out)
	return out
}

// StateSize returns the full state width in bytes for the default geometry.
func StateSize() int { return constants.StateSize }
