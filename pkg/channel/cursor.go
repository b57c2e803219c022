// cursor.go tracks per-publisher positions within a channel.
//
// Every known participant — one per key-exchange public key — has a Cursor:
// the address of the next message expected from that publisher plus its
// sequence number. Cursor advancement is serialized per publisher (one lock
// per entry), so two concurrent publishes by the same key can never both
// claim the same sequence number, while unrelated publishers never contend.
package channel

import (
	"encoding/binary"
	"encoding/hex"
	"sync"

	"github.com/cloudflare/circl/sign/ed25519"

	"github.com/ledgerstream/streams-go/internal/constants"
	qerrors "github.com/ledgerstream/streams-go/internal/errors"
	"github.com/ledgerstream/streams-go/pkg/sponge"
)

// PublisherID is a comparable value form of a publisher's ed25519 public key,
// suitable as a map key.
type PublisherID [ed25519.PublicKeySize]byte

// PublisherIDFromKey converts an ed25519 public key into a PublisherID.
func PublisherIDFromKey(pk ed25519.PublicKey) PublisherID {
	var id PublisherID
	copy(id[:], pk)
	return id
}

// Key returns the public key form of the identifier.
func (id PublisherID) Key() ed25519.PublicKey {
	return ed25519.PublicKey(id[:])
}

// String renders a short prefix of the key for diagnostics.
func (id PublisherID) String() string {
	return hex.EncodeToString(id[:8])
}

// Cursor records a publisher's position in its own message sequence: the
// address of the next expected message and its sequence number.
type Cursor struct {
	Link  Address
	SeqNo uint64
}

// State is the per-channel cursor table. It grows as participants are
// discovered (subscription) and never shrinks within a session; entries are
// updated in place as their publishers emit or deliver messages.
type State struct {
	appinst   AppInst
	branching bool

	mu      sync.RWMutex // guards the map shape, not the entries
	entries map[PublisherID]*cursorEntry
}

type cursorEntry struct {
	mu  sync.Mutex
	cur Cursor
}

// NewState creates an empty cursor table for the channel instance.
// The branching flag selects the channel's sequencing mode and is fixed for
// the lifetime of the state.
func NewState(appinst AppInst, branching bool) *State {
	return &State{
		appinst:   appinst,
		branching: branching,
		entries:   make(map[PublisherID]*cursorEntry),
	}
}

// AppInst returns the channel instance this state tracks.
func (s *State) AppInst() AppInst { return s.appinst }

// Branching reports the channel's sequencing mode.
func (s *State) Branching() bool { return s.branching }

// Register records a newly discovered publisher at the given cursor.
// Registering a known publisher resets its cursor.
func (s *State) Register(id PublisherID, cur Cursor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[id]; ok {
		e.mu.Lock()
		e.cur = cur
		e.mu.Unlock()
		return
	}
	s.entries[id] = &cursorEntry{cur: cur}
}

// Cursor returns the publisher's current cursor.
func (s *State) Cursor(id PublisherID) (Cursor, bool) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return Cursor{}, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cur, true
}

// Advance moves the publisher to the next sequence number with the given
// link, as one atomic unit per publisher key, and returns the new cursor.
// Called after each successful publish or receive for that publisher.
func (s *State) Advance(id PublisherID, newLink Address) (Cursor, error) {
	e, err := s.entry(id)
	if err != nil {
		return Cursor{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cur.SeqNo++
	e.cur.Link = newLink
	return e.cur, nil
}

// AdvanceNext derives the publisher's next message address from its sequence
// and advances the cursor to it, atomically. This is the linear publish path:
// serializing the derive-and-advance under the entry lock is what keeps two
// concurrent publishes from claiming the same msgid. In branching mode the
// next address is not derivable from the cursor alone, so AdvanceNext applies
// only to single-branch channels and reports ErrMissingSequencingLink
// otherwise.
func (s *State) AdvanceNext(id PublisherID) (Cursor, error) {
	if s.branching {
		return Cursor{}, qerrors.NewProtocolError("cursor", qerrors.ErrMissingSequencingLink)
	}
	e, err := s.entry(id)
	if err != nil {
		return Cursor{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cur.SeqNo++
	e.cur.Link = Address{
		AppInst: s.appinst,
		MsgID:   DeriveMsgID(s.appinst, id, e.cur.SeqNo),
	}
	return e.cur, nil
}

// NextMessageIDs returns a snapshot of every known publisher's cursor. The
// result is rebuilt on each call and holds value copies only: cursors that
// advance afterwards do not show through, so callers must re-request the
// table after any publish or receive that could move a cursor.
func (s *State) NextMessageIDs() map[PublisherID]Cursor {
	s.mu.RLock()
	ids := make([]PublisherID, 0, len(s.entries))
	entries := make([]*cursorEntry, 0, len(s.entries))
	for id, e := range s.entries {
		ids = append(ids, id)
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	out := make(map[PublisherID]Cursor, len(ids))
	for i, e := range entries {
		e.mu.Lock()
		out[ids[i]] = e.cur
		e.mu.Unlock()
	}
	return out
}

func (s *State) entry(id PublisherID) (*cursorEntry, error) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return nil, qerrors.NewProtocolError("cursor", qerrors.ErrUnknownPublisher)
	}
	return e, nil
}

// DeriveMsgID deterministically derives the message identifier for the given
// publisher and sequence number within a channel. All parties who share the
// channel state derive the same identifier, which is how receivers locate a
// publisher's next message without coordination.
func DeriveMsgID(appinst AppInst, id PublisherID, seqNo uint64) MsgID {
	var seq [8]byte
	binary.LittleEndian.PutUint64(seq[:], seqNo)

	sp := sponge.New()
	sp.Absorb([]byte(constants.DomainSeparatorMsgID))
	sp.Absorb(appinst[:])
	sp.Absorb(id[:])
	sp.Absorb(seq[:])
	sp.Commit()

	var msgid MsgID
	sp.Squeeze(msgid[:])
	return msgid
}
