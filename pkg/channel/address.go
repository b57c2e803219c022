// Package channel implements the message addressing, sequencing, and payload
// model of the ledgerstream protocol.
//
// Every message lives on the transport under an Address: the pair of the
// channel instance identifier (appinst), fixed at channel creation, and a
// per-message identifier (msgid). Publishers advance through their own
// message sequences, tracked per public key by a cursor table, and message
// bodies decode into content variants from which the two payload streams
// (public and masked) are extracted.
package channel

import (
	"encoding/hex"

	"github.com/ledgerstream/streams-go/internal/constants"
	qerrors "github.com/ledgerstream/streams-go/internal/errors"
)

// AppInst identifies one channel instance. Established at channel creation
// and immutable thereafter.
type AppInst [constants.AppInstSize]byte

// MsgID identifies one message within a channel.
type MsgID [constants.MsgIDSize]byte

// Address is the transport key under which a message is stored: the pair
// (appinst, msgid). It is a comparable value type; equality and map hashing
// are structural over the pair.
type Address struct {
	AppInst AppInst
	MsgID   MsgID
}

// AppInstFromBytes converts a byte slice into an AppInst, failing with
// ErrInvalidAddress on any length mismatch.
func AppInstFromBytes(b []byte) (AppInst, error) {
	var a AppInst
	if len(b) != constants.AppInstSize {
		return a, qerrors.NewProtocolError("address", qerrors.ErrInvalidAddress)
	}
	copy(a[:], b)
	return a, nil
}

// MsgIDFromBytes converts a byte slice into a MsgID, failing with
// ErrInvalidAddress on any length mismatch.
func MsgIDFromBytes(b []byte) (MsgID, error) {
	var m MsgID
	if len(b) != constants.MsgIDSize {
		return m, qerrors.NewProtocolError("address", qerrors.ErrInvalidAddress)
	}
	copy(m[:], b)
	return m, nil
}

// String renders the appinst for diagnostics and logging. The cryptographic
// logic never consumes this encoding.
func (a AppInst) String() string { return hex.EncodeToString(a[:]) }

// String renders the msgid for diagnostics and logging.
func (m MsgID) String() string { return hex.EncodeToString(m[:]) }

// String renders the address as "appinst:msgid" for diagnostics and logging.
func (a Address) String() string {
	return a.AppInst.String() + ":" + a.MsgID.String()
}

// MessageLinks pairs the primary address of a published message with the
// optional address of its sequencing message. The sequencing address is set
// only in branching mode, where sequencing metadata is published as a
// separate linked message; in single-branch mode the primary address doubles
// as the sequencing anchor.
type MessageLinks struct {
	Msg Address
	Seq *Address
}

// NewMessageLinks creates links with only the primary address set.
func NewMessageLinks(msg Address) MessageLinks {
	return MessageLinks{Msg: msg}
}

// WithSeq returns a copy of the links with the sequencing address set.
func (l MessageLinks) WithSeq(seq Address) MessageLinks {
	l.Seq = &seq
	return l
}

// SequencingLink resolves which address anchors the next message in the
// sequence. In single-branch mode the primary address is the anchor, even
// when a distinct sequencing address happens to be set. In branching mode the
// sequencing address is required; its absence is a caller error reported as
// ErrMissingSequencingLink, never silently defaulted to the primary link.
func (l MessageLinks) SequencingLink(branching bool) (Address, error) {
	if !branching {
		return l.Msg, nil
	}
	if l.Seq == nil {
		return Address{}, qerrors.NewProtocolError("sequencing", qerrors.ErrMissingSequencingLink)
	}
	return *l.Seq, nil
}
