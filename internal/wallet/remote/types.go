// Package remote describes the threshold signing service that holds the child
// identities' private key shares. The service never exposes a private key: it
// returns compressed public keys per key slot and raw 64-byte (r, s)
// signatures over 32-byte digests.
package remote

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrPublicKeyNotFound is returned by GetPublicKey when no key exists yet for the slot.
	ErrPublicKeyNotFound = errors.New("public key not found")
	// ErrSignerUnavailable marks every other signer failure (network, remote errors, bad payloads).
	ErrSignerUnavailable = errors.New("remote signer unavailable")
)

// Signer is the remote threshold signer. All calls are scoped to the owner identity
// the caller authenticated as.
type Signer interface {
	// GetPublicKey returns the 33-byte compressed key of slot or ErrPublicKeyNotFound.
	GetPublicKey(ctx context.Context, owner string, slot uint32) ([]byte, error)

	// CreatePublicKey provisions the key for slot and returns it.
	CreatePublicKey(ctx context.Context, owner string, slot uint32) ([]byte, error)

	// Sign returns the raw 64-byte r||s signature of digest under slot's key.
	Sign(ctx context.Context, owner string, digest []byte, slot uint32) ([]byte, error)
}

// SignerError wraps a failed remote call. It matches ErrSignerUnavailable with errors.Is
// and keeps the underlying cause reachable through Unwrap.
type SignerError struct {
	Op  string
	Err error
}

func (e *SignerError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrSignerUnavailable.Error(), e.Op, e.Err)
}

func (e *SignerError) Unwrap() error {
	return e.Err
}

func (e *SignerError) Is(target error) bool {
	return target == ErrSignerUnavailable //nolint:errorlint,err113 // sentinel identity check
}

// Unavailable wraps err as a SignerError unless it already is one.
func Unavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	var signerErr *SignerError
	if errors.As(err, &signerErr) {
		return err
	}
	return &SignerError{Op: op, Err: err}
}
