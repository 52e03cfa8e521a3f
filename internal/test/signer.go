package test

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/crypto"
	"github/chapool/child-wallet/internal/wallet/remote"
)

const (
	OpGetPublicKey    = "get_public_key"
	OpCreatePublicKey = "create_public_key"
	OpSign            = "sign"
)

// SignerCall is one journaled call against a FakeSigner.
type SignerCall struct {
	Op     string
	Owner  string
	Slot   uint32
	Digest []byte
}

type fakeSlot struct {
	owner string
	slot  uint32
}

// FakeSigner is an in-memory remote.Signer with known private keys. It returns
// raw r||s signatures exactly like the threshold service and journals every call.
type FakeSigner struct {
	mu          sync.Mutex
	keys        map[fakeSlot]*ecdsa.PrivateKey
	provisioned map[fakeSlot]bool
	calls       []SignerCall

	// GetErr, CreateErr and SignErr are returned by the matching call when set.
	GetErr    error
	CreateErr error
	SignErr   error

	// HighS makes Sign return the high-s twin of each signature.
	HighS bool
	// WrongKey makes GetPublicKey answer with a key that did not produce the signatures.
	WrongKey bool

	// OnGet and OnSign run before the call is answered, e.g. to block or count.
	OnGet  func(ctx context.Context)
	OnSign func(ctx context.Context)
}

var _ remote.Signer = (*FakeSigner)(nil)

func NewFakeSigner() *FakeSigner {
	return &FakeSigner{
		keys:        make(map[fakeSlot]*ecdsa.PrivateKey),
		provisioned: make(map[fakeSlot]bool),
	}
}

// Provision creates and provisions a fresh key for (owner, slot) and returns it.
func (f *FakeSigner) Provision(owner string, slot uint32) *ecdsa.PrivateKey {
	key, err := crypto.GenerateKey()
	if err != nil {
		panic(fmt.Sprintf("failed to generate key: %v", err))
	}
	f.SetKey(owner, slot, key)
	return key
}

// SetKey provisions key for (owner, slot).
func (f *FakeSigner) SetKey(owner string, slot uint32, key *ecdsa.PrivateKey) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := fakeSlot{owner: owner, slot: slot}
	f.keys[s] = key
	f.provisioned[s] = true
}

// PrivateKey returns the key of (owner, slot) or nil.
func (f *FakeSigner) PrivateKey(owner string, slot uint32) *ecdsa.PrivateKey {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.keys[fakeSlot{owner: owner, slot: slot}]
}

// Calls returns a copy of the call journal.
func (f *FakeSigner) Calls() []SignerCall {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]SignerCall, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallCount returns how often op was called.
func (f *FakeSigner) CallCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0
	for _, c := range f.calls {
		if c.Op == op {
			count++
		}
	}
	return count
}

func (f *FakeSigner) record(call SignerCall) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, call)
}

func (f *FakeSigner) GetPublicKey(ctx context.Context, owner string, slot uint32) ([]byte, error) {
	f.record(SignerCall{Op: OpGetPublicKey, Owner: owner, Slot: slot})
	if f.OnGet != nil {
		f.OnGet(ctx)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.GetErr != nil {
		return nil, f.GetErr
	}

	f.mu.Lock()
	s := fakeSlot{owner: owner, slot: slot}
	key, ok := f.keys[s]
	provisioned := f.provisioned[s]
	wrongKey := f.WrongKey
	f.mu.Unlock()

	if !ok || !provisioned {
		return nil, remote.ErrPublicKeyNotFound
	}

	if wrongKey {
		other, err := crypto.GenerateKey()
		if err != nil {
			return nil, err
		}
		return crypto.CompressPubkey(&other.PublicKey), nil
	}

	return crypto.CompressPubkey(&key.PublicKey), nil
}

func (f *FakeSigner) CreatePublicKey(_ context.Context, owner string, slot uint32) ([]byte, error) {
	f.record(SignerCall{Op: OpCreatePublicKey, Owner: owner, Slot: slot})
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	s := fakeSlot{owner: owner, slot: slot}
	key, ok := f.keys[s]
	if !ok {
		var err error
		key, err = crypto.GenerateKey()
		if err != nil {
			return nil, err
		}
		f.keys[s] = key
	}
	f.provisioned[s] = true

	return crypto.CompressPubkey(&key.PublicKey), nil
}

func (f *FakeSigner) Sign(ctx context.Context, owner string, digest []byte, slot uint32) ([]byte, error) {
	f.record(SignerCall{Op: OpSign, Owner: owner, Slot: slot, Digest: append([]byte(nil), digest...)})
	if f.OnSign != nil {
		f.OnSign(ctx)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.SignErr != nil {
		return nil, f.SignErr
	}

	f.mu.Lock()
	key, ok := f.keys[fakeSlot{owner: owner, slot: slot}]
	highS := f.HighS
	f.mu.Unlock()

	if !ok {
		return nil, remote.ErrPublicKeyNotFound
	}

	sig, err := crypto.Sign(digest, key)
	if err != nil {
		return nil, err
	}
	raw := sig[:64]

	if highS {
		s := new(big.Int).SetBytes(raw[32:])
		s.Sub(crypto.S256().Params().N, s)
		s.FillBytes(raw[32:])
	}

	return raw, nil
}
