package keycache

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// DefaultSlot is the key slot used when a session does not name one.
const DefaultSlot uint32 = 1

// MaxSlot is the highest key slot. Slots are non-hardened BIP-32 child indices.
const MaxSlot uint32 = 1<<31 - 1

const (
	SourceMemory = "memory"
	SourceStore  = "store"
	SourceRemote = "remote"
)

var (
	// ErrRecordNotFound is returned by Store.Load when nothing was persisted for the owner.
	ErrRecordNotFound = errors.New("key record not found")
	// ErrEmptyOwner is returned when resolving without an owner identity.
	ErrEmptyOwner = errors.New("owner identity is empty")
	// ErrInvalidSlot is returned for slots above MaxSlot.
	ErrInvalidSlot = errors.New("key slot out of range")
)

// PublicKeyRecord is the resolved key material of one owner identity and key slot.
// Records are immutable once created.
type PublicKeyRecord struct {
	OwnerIdentity string
	Slot          uint32
	PublicKey     [33]byte
	Address       common.Address
	ResolvedAt    time.Time
}

// Service resolves and caches public key records.
type Service interface {
	// Resolve returns the record of (owner, slot), asking the remote signer only on a cache miss.
	Resolve(ctx context.Context, owner string, slot uint32) (*PublicKeyRecord, error)

	// Invalidate drops every in-memory record of owner. Persisted records stay.
	Invalidate(owner string)
}

// Store persists one opaque blob per owner identity.
type Store interface {
	// Load returns the owner's blob or ErrRecordNotFound.
	Load(ctx context.Context, owner string) ([]byte, error)

	// Save replaces the owner's blob.
	Save(ctx context.Context, owner string, blob []byte) error

	// Delete removes the owner's blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, owner string) error
}

// Observer receives resolution events, e.g. for metrics. May be nil.
type Observer interface {
	ObserveKeyResolution(source string)
}
