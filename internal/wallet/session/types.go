package session

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github/chapool/child-wallet/internal/wallet/signer"
)

var (
	// ErrSessionEnded is returned for work whose session was logged out while it ran.
	ErrSessionEnded = errors.New("session ended")
	ErrNoSession    = errors.New("no active session")
	ErrEmptyOwner   = errors.New("owner identity is required")
)

// Session binds an owner to the signing identity of one slot.
type Session struct {
	Owner      string
	Slot       uint32
	Identity   *signer.Identity
	Generation uint64
	StartedAt  time.Time
}

type Manager interface {
	// Login opens a session for owner, resolving its key material once.
	// slot 0 selects keycache.DefaultSlot, slots above keycache.MaxSlot are rejected
	// with keycache.ErrInvalidSlot. Logging in with another slot ends the previous session.
	Login(ctx context.Context, owner string, slot uint32) (*Session, error)

	// Logout ends the owner's session and drops its cached key material.
	Logout(ctx context.Context, owner string) error

	// Get returns the owner's session or ErrNoSession.
	Get(owner string) (*Session, error)

	// Check returns ErrSessionEnded once s is no longer the owner's current session.
	Check(s *Session) error
}
