// prp.go defines the opaque permutation boundary of the sponge construction.
//
// The spongos state machine is generic over a pseudorandom permutation (PRP)
// supplied through the PRP interface. Swapping the permutation changes every
// derived stream but none of the surrounding logic, so alternative primitives
// can be dropped in without touching the PRNG or sequencing code.
//
// Two transforms are provided:
//
//   - SHAKE-256 (FIPS 202), the default, via golang.org/x/crypto/sha3
//   - KangarooTwelve via github.com/cloudflare/circl/xof/k12
//
// Both realize the permutation contract as a fixed-width transform over the
// full state: the state is absorbed into a fresh XOF instance and the state
// width is read back. Each transform carries its own separation label so the
// two can never be confused for one another on identical states.
package sponge

import (
	"fmt"

	"github.com/cloudflare/circl/xof/k12"
	"golang.org/x/crypto/sha3"

	"github.com/ledgerstream/streams-go/internal/constants"
)

// PRP is the opaque fixed-width permutation the sponge is built on.
//
// Permute transforms the full state in place; len(state) must equal
// RateSize() + CapacityBits()/8. Implementations must be deterministic and
// safe for concurrent use (each call operates only on its argument).
type PRP interface {
	// Name identifies the permutation for diagnostics.
	Name() string

	// RateSize is the number of state bytes exposed per round.
	RateSize() int

	// CapacityBits is the hidden portion of the state in bits.
	CapacityBits() int

	// Permute applies the permutation to the full state in place.
	Permute(state []byte)
}

// transform separation labels, one per primitive
const (
	shakeLabel = "ledgerstream-prp-shake256"
	k12Label   = "ledgerstream-prp-k12"
)

type shakePRP struct{}

// NewShakePRP returns the default permutation, backed by SHAKE-256.
func NewShakePRP() PRP { return shakePRP{} }

func (shakePRP) Name() string      { return "shake256" }
func (shakePRP) RateSize() int     { return constants.RateSize }
func (shakePRP) CapacityBits() int { return constants.CapacityBits }

func (p shakePRP) Permute(state []byte) {
	checkStateWidth(p, state)
	h := sha3.NewShake256()
	h.Write([]byte(shakeLabel))
	h.Write(state)
	h.Read(state)
}

type k12PRP struct{}

// NewK12PRP returns an alternate permutation backed by KangarooTwelve.
// Streams derived under it are unrelated to SHAKE-256 streams.
func NewK12PRP() PRP { return k12PRP{} }

func (k12PRP) Name() string      { return "k12" }
func (k12PRP) RateSize() int     { return constants.RateSize }
func (k12PRP) CapacityBits() int { return constants.CapacityBits }

func (p k12PRP) Permute(state []byte) {
	checkStateWidth(p, state)
	h := k12.NewDraft10([]byte(k12Label))
	h.Write(state)
	h.Read(state)
}

func checkStateWidth(p PRP, state []byte) {
	want := p.RateSize() + p.CapacityBits()/8
	if len(state) != want {
		panic(fmt.Sprintf("sponge: %s permute on %d-byte state, want %d", p.Name(), len(state), want))
	}
}
