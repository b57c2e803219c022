// Package constants defines the fixed geometry and domain-separation labels for
// the ledgerstream channel core.
//
// The sponge geometry mirrors a Keccak-f[1600]-shaped permutation with a 256-bit
// capacity: the secret-key size of the keyed PRNG equals the capacity in bytes,
// which is what ties key length to the security level of the construction.
package constants

// Protocol identification
const (
	// ProtocolVersion is the current version of the channel protocol.
	ProtocolVersion uint16 = 0x0001

	// ProtocolName is used for domain separation in key derivation.
	ProtocolName = "LS-STREAMS-v1"
)

// Sponge permutation geometry
const (
	// CapacityBits is the capacity of the sponge permutation in bits.
	// The capacity bounds the security level of every derived key.
	CapacityBits = 256

	// StateSize is the full permutation state width in bytes (rate + capacity).
	StateSize = 200

	// RateSize is the number of state bytes exposed per absorb/squeeze round.
	RateSize = StateSize - CapacityBits/8
)

// Keyed PRNG parameters
const (
	// KeySize is the fixed secret-key size of the keyed PRNG in bytes.
	// It equals the permutation capacity in bytes; any other length is rejected.
	KeySize = CapacityBits / 8

	// NonceSize is the size of a freshly generated PRNG nonce in bytes.
	// Callers may supply nonces of any length; this is the default for the
	// random-nonce helper and the counter-mode source.
	NonceSize = 16
)

// Channel addressing geometry
const (
	// AppInstSize is the size of a channel instance address in bytes.
	AppInstSize = 40

	// MsgIDSize is the size of a per-message identifier in bytes.
	MsgIDSize = 12
)

// Domain separators for sponge-based derivations
const (
	// DomainSeparatorMsgID is absorbed ahead of (appinst, publisher, seqno)
	// when deriving the next message identifier in a linear sequence.
	DomainSeparatorMsgID = "LS-STREAMS-v1-MsgId"

	// DomainSeparatorChannelKey derives a channel master key from a user seed.
	DomainSeparatorChannelKey = "LS-STREAMS-v1-ChannelKey"

	// DomainSeparatorPacketSig is absorbed ahead of the packet digest that a
	// signed packet's signature covers.
	DomainSeparatorPacketSig = "LS-STREAMS-v1-PacketSig"
)
