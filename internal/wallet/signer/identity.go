package signer

import (
	"context"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github/chapool/child-wallet/internal/util"
	"github/chapool/child-wallet/internal/wallet/keycache"
	"github/chapool/child-wallet/internal/wallet/recovery"
	"github/chapool/child-wallet/internal/wallet/remote"
)

// Identity is an Ethereum account whose private key lives in the remote signer.
// Signing calls on one identity run one at a time.
type Identity struct {
	owner string
	slot  uint32

	keys     keycache.Service
	remote   remote.Signer
	observer Observer

	// sem is held from digest computation until the recovery bit is known
	sem chan struct{}
}

func newIdentity(owner string, slot uint32, keys keycache.Service, signer remote.Signer, observer Observer) *Identity {
	return &Identity{
		owner:    owner,
		slot:     slot,
		keys:     keys,
		remote:   signer,
		observer: observer,
		sem:      make(chan struct{}, 1),
	}
}

func (i *Identity) Owner() string {
	return i.owner
}

func (i *Identity) Slot() uint32 {
	return i.slot
}

// Address resolves the identity's address.
func (i *Identity) Address(ctx context.Context) (common.Address, error) {
	rec, err := i.keys.Resolve(ctx, i.owner, i.slot)
	if err != nil {
		return common.Address{}, err
	}

	return rec.Address, nil
}

// SignMessage signs msg with the personal message preamble
// ("\x19Ethereum Signed Message:\n" + len(msg) + msg).
func (i *Identity) SignMessage(ctx context.Context, msg []byte) (*EthSignature, error) {
	if err := i.lock(ctx); err != nil {
		return nil, err
	}
	defer i.unlock()

	sig, err := i.signDigest(ctx, accounts.TextHash(msg))
	i.observe(KindMessage, err)
	if err != nil {
		return nil, err
	}

	return sig, nil
}

// SignTransaction signs tx and returns the serialized signed transaction.
func (i *Identity) SignTransaction(ctx context.Context, tx *types.Transaction, serialize Serializer) ([]byte, error) {
	if err := i.lock(ctx); err != nil {
		return nil, err
	}
	defer i.unlock()

	signed, err := i.signTransaction(ctx, tx, serialize)
	i.observe(KindTransaction, err)
	if err != nil {
		return nil, err
	}

	return signed, nil
}

func (i *Identity) signTransaction(ctx context.Context, tx *types.Transaction, serialize Serializer) ([]byte, error) {
	payload, err := serialize(tx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build signing payload")
	}

	sig, err := i.signDigest(ctx, crypto.Keccak256(payload))
	if err != nil {
		return nil, err
	}

	signed, err := serialize(tx, sig)
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize signed transaction")
	}

	return signed, nil
}

// SignTypedData is not supported.
func (i *Identity) SignTypedData(_ context.Context, _ any) (*EthSignature, error) {
	return nil, ErrNotImplemented
}

func (i *Identity) signDigest(ctx context.Context, digest []byte) (*EthSignature, error) {
	rec, err := i.keys.Resolve(ctx, i.owner, i.slot)
	if err != nil {
		return nil, err
	}

	raw, err := i.remote.Sign(ctx, i.owner, digest, i.slot)
	if err != nil {
		return nil, remote.Unavailable("sign", err)
	}
	if len(raw) != recovery.RawSignatureLength {
		return nil, remote.Unavailable("sign", errors.Errorf("signature must be %d bytes, got %d", recovery.RawSignatureLength, len(raw)))
	}

	raw, normalized := recovery.NormalizeLowS(raw)
	if normalized {
		util.LogFromContext(ctx).Debug().
			Str("component", "signer").
			Uint32("slot", i.slot).
			Msg("Normalized high-s signature")
	}

	bit, err := recovery.ResolveRecoveryBit(raw, digest, rec.PublicKey[:])
	if err != nil {
		return nil, err
	}

	sig := &EthSignature{V: 27 + bit}
	copy(sig.R[:], raw[:32])
	copy(sig.S[:], raw[32:])

	return sig, nil
}

func (i *Identity) lock(ctx context.Context) error {
	select {
	case i.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "waiting for signing identity")
	}
}

func (i *Identity) unlock() {
	<-i.sem
}

func (i *Identity) observe(kind string, err error) {
	if i.observer == nil {
		return
	}
	if err != nil {
		i.observer.ObserveSignature(kind, ResultError)
		return
	}
	i.observer.ObserveSignature(kind, ResultOK)
}
