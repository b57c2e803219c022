// Package errors defines custom error types for the ledgerstream channel core.
// These errors provide detailed information for debugging while maintaining
// security by not leaking key or payload material in error messages.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the keyed PRNG
var (
	// ErrInvalidKeyLength indicates a PRNG secret key does not match the
	// fixed key size (the permutation capacity in bytes)
	ErrInvalidKeyLength = errors.New("prng: invalid secret key length")

	// ErrNoSecureRandom indicates the process-wide secure randomness source
	// is unavailable; there is no fallback to a weaker source
	ErrNoSecureRandom = errors.New("prng: secure random source unavailable")
)

// Sentinel errors for channel addressing and sequencing
var (
	// ErrMissingSequencingLink indicates branching mode was requested but no
	// distinct sequencing address was set on the message links
	ErrMissingSequencingLink = errors.New("channel: missing sequencing link")

	// ErrUnknownPublisher indicates a cursor operation referenced a publisher
	// that was never registered with the channel state
	ErrUnknownPublisher = errors.New("channel: unknown publisher")

	// ErrInvalidAddress indicates an address component has the wrong length
	ErrInvalidAddress = errors.New("channel: invalid address component length")
)

// Sentinel errors for transport operations
var (
	// ErrMessageNotFound indicates no message is stored under the address
	ErrMessageNotFound = errors.New("transport: message not found")

	// ErrAddressCollision indicates a put would overwrite a different message
	// already stored under the address; the ledger is append-only
	ErrAddressCollision = errors.New("transport: address already occupied")
)

// CryptoError wraps a cryptographic error with additional context
type CryptoError struct {
	Op  string // Operation that failed
	Err error  // Underlying error
}

func (e *CryptoError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CryptoError) Unwrap() error {
	return e.Err
}

// NewCryptoError creates a new CryptoError
func NewCryptoError(op string, err error) *CryptoError {
	return &CryptoError{Op: op, Err: err}
}

// ProtocolError wraps a channel protocol error with additional context
type ProtocolError struct {
	Phase string // Protocol phase (e.g., "sequencing", "transport")
	Err   error  // Underlying error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("channel %s: %v", e.Phase, e.Err)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// NewProtocolError creates a new ProtocolError
func NewProtocolError(phase string, err error) *ProtocolError {
	return &ProtocolError{Phase: phase, Err: err}
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around errors.As.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
