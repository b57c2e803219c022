// Package ledgerstream implements the cryptographic core of a message-channel
// protocol built on an append-only, content-addressed ledger transport.
//
// Two subsystems carry the security properties of the protocol: a
// sponge-based keyed pseudorandom generator that derives session keys,
// nonces, and per-message randomness deterministically from a shared secret,
// and a message addressing/sequencing model that derives collision-resistant
// message identifiers and tracks per-publisher cursors across multiple
// participants.
//
// # Quick Start
//
// Derive a channel key and deterministic randomness:
//
//	import "github.com/ledgerstream/streams-go/pkg/prng"
//
//	p := prng.FromSeed("my-app-channel", seedPhrase)
//	sessionKey := p.GenBytes(nonce, 32)
//
// Track publishers and compute next message addresses:
//
//	import "github.com/ledgerstream/streams-go/pkg/channel"
//
//	state := channel.NewState(appinst, false)
//	state.Register(pub, channel.Cursor{SeqNo: 0})
//	cur, _ := state.AdvanceNext(pub)     // claims the next msgid atomically
//	table := state.NextMessageIDs()      // snapshot, one cursor per publisher
//
// # Package Structure
//
//   - pkg/sponge: duplex sponge (spongos) state machine over a swappable permutation
//   - pkg/prng: keyed deterministic PRNG, counter-mode source, secure-random helpers
//   - pkg/channel: addresses, message links, cursors, message bodies, payload extraction
//   - pkg/transport: the put/get ledger capability and an in-memory implementation
//   - pkg/metrics: structured logging and tracing (OpenTelemetry adapter included)
//   - internal/constants: sponge geometry, address sizes, domain separators
//   - internal/errors: sentinel errors and error wrappers
//
// # Security Properties
//
//   - Determinism: identical (key, nonce, length) always yields identical output
//   - Unpredictability: output is indistinguishable from random without the key
//   - Domain separation: one seed yields unrelated keys under different labels
//   - Nonce discipline: the counter-mode source never reuses a (key, nonce) pair
//   - Sequencing safety: cursor advancement is serialized per publisher, so
//     concurrent publishes can never claim the same message identifier
//
// # Testing
//
//	go test ./...                                   # All tests
//	go test -fuzz=FuzzExtractPayloads ./pkg/channel # Fuzz payload extraction
//	go test -fuzz=FuzzAbsorbSqueeze ./pkg/sponge    # Fuzz the sponge
package ledgerstream
