// Package transport defines the capability the channel core consumes to move
// message bytes: a put/get store keyed by Address. Real deployments back this
// with an append-only, content-addressed ledger client; Bucket is the
// in-memory implementation used for tests, demos, and offline pipelines.
package transport

import (
	"bytes"
	"sync"

	qerrors "github.com/ledgerstream/streams-go/internal/errors"
	"github.com/ledgerstream/streams-go/pkg/channel"
)

// Transport stores and retrieves raw message bytes keyed by address.
// Implementations must be safe for concurrent use.
type Transport interface {
	// Put stores msg under addr. The ledger is append-only: storing
	// different bytes under an occupied address fails with
	// ErrAddressCollision, while re-putting identical bytes is idempotent.
	Put(addr channel.Address, msg []byte) error

	// Get retrieves the message stored under addr, or ErrMessageNotFound.
	Get(addr channel.Address) ([]byte, error)
}

// Bucket is an in-memory Transport.
type Bucket struct {
	mu   sync.RWMutex
	msgs map[channel.Address][]byte
}

var _ Transport = (*Bucket)(nil)

// NewBucket creates an empty in-memory transport.
func NewBucket() *Bucket {
	return &Bucket{msgs: make(map[channel.Address][]byte)}
}

// Put stores a copy of msg under addr.
func (b *Bucket) Put(addr channel.Address, msg []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if existing, ok := b.msgs[addr]; ok {
		if bytes.Equal(existing, msg) {
			return nil
		}
		return qerrors.NewProtocolError("transport", qerrors.ErrAddressCollision)
	}
	stored := make([]byte, len(msg))
	copy(stored, msg)
	b.msgs[addr] = stored
	return nil
}

// Get returns a copy of the message stored under addr.
func (b *Bucket) Get(addr channel.Address) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	msg, ok := b.msgs[addr]
	if !ok {
		return nil, qerrors.NewProtocolError("transport", qerrors.ErrMessageNotFound)
	}
	out := make([]byte, len(msg))
	copy(out, msg)
	return out, nil
}

// Len returns the number of stored messages.
func (b *Bucket) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.msgs)
}
