// message.go models decoded message bodies and payload extraction.
//
// A retrieved and authenticated transport payload decodes into an
// UnwrappedMessage whose body is exactly one content variant. Application
// payloads travel in two streams: a publicly readable one and a masked
// (encrypted) one. Tagged and signed packets carry both; sequencing and
// control records carry none, and extraction maps them to an explicit empty
// pair rather than an error.
package channel

import (
	"encoding/binary"

	"github.com/cloudflare/circl/sign/ed25519"

	"github.com/ledgerstream/streams-go/internal/constants"
	"github.com/ledgerstream/streams-go/pkg/sponge"
)

// MessageContent is the decoded body of one channel message.
type MessageContent interface {
	isMessageContent()
}

// Announce establishes the channel; it is the first message under an appinst.
type Announce struct {
	Author PublisherID
}

// Subscribe registers a new participant with the channel author.
type Subscribe struct {
	Subscriber PublisherID
}

// Keyload distributes session key material to a set of subscribers.
type Keyload struct {
	Nonce []byte
}

// Sequence is the plain sequencing record published on a branching channel's
// sequencing chain. It points at the real message it sequences.
type Sequence struct {
	Publisher PublisherID
	SeqNo     uint64
	MsgLink   Address
}

// TaggedPacket is an unsigned application packet: both payload streams,
// authenticated by the channel MAC but carrying no signer identity.
type TaggedPacket struct {
	Public []byte
	Masked []byte
}

// SignedPacket is an application packet bound to a signer. The signature is
// verified on the decode path; the signer key rides along for the caller but
// is not part of the payload pair.
type SignedPacket struct {
	Signer ed25519.PublicKey
	Public []byte
	Masked []byte
	Sig    []byte
}

func (Announce) isMessageContent()     {}
func (Subscribe) isMessageContent()    {}
func (Keyload) isMessageContent()      {}
func (Sequence) isMessageContent()     {}
func (TaggedPacket) isMessageContent() {}
func (SignedPacket) isMessageContent() {}

// UnwrappedMessage is the decoded result of retrieving and authenticating one
// transport payload. It is constructed by the decode path, consumed once by
// payload extraction, then discardable.
type UnwrappedMessage struct {
	Link    Address
	Content MessageContent
}

// PacketPayloads is the (public, masked) payload pair extracted from a packet
// body. A zero value is the deliberate "no payload" sentinel for bodies that
// carry no application data.
type PacketPayloads struct {
	Public []byte
	Masked []byte
}

// ExtractPayloads classifies the message body and returns its payload pair.
// It is total: sequencing and control records, unrecognized bodies, and nil
// messages all yield the empty pair, never an error.
func ExtractPayloads(m *UnwrappedMessage) PacketPayloads {
	if m == nil {
		return PacketPayloads{}
	}
	switch c := m.Content.(type) {
	case TaggedPacket:
		return PacketPayloads{Public: c.Public, Masked: c.Masked}
	case SignedPacket:
		return PacketPayloads{Public: c.Public, Masked: c.Masked}
	default:
		return PacketPayloads{}
	}
}

// SignPacket builds a SignedPacket over the payload pair, binding the
// signature to the address the packet will be published under so a packet
// cannot be replayed at another location.
func SignPacket(priv ed25519.PrivateKey, link Address, public, masked []byte) SignedPacket {
	digest := packetDigest(link, public, masked)
	return SignedPacket{
		Signer: priv.Public().(ed25519.PublicKey),
		Public: public,
		Masked: masked,
		Sig:    ed25519.Sign(priv, digest),
	}
}

// Verify checks the packet signature against the address it was retrieved
// from. A packet moved to a different address fails verification.
func (p SignedPacket) Verify(link Address) bool {
	if len(p.Signer) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(p.Signer, packetDigest(link, p.Public, p.Masked), p.Sig)
}

// packetDigest commits the address and both payload streams, length-prefixed
// so stream boundaries are unambiguous, into a fixed-size digest.
func packetDigest(link Address, public, masked []byte) []byte {
	var lenBuf [4]byte

	s := sponge.New()
	s.Absorb([]byte(constants.DomainSeparatorPacketSig))
	s.Absorb(link.AppInst[:])
	s.Absorb(link.MsgID[:])
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(public)))
	s.Absorb(lenBuf[:])
	s.Absorb(public)
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(masked)))
	s.Absorb(lenBuf[:])
	s.Absorb(masked)
	s.Commit()

	return s.SqueezeBytes(32)
}
