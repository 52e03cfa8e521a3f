// Package devsigner is a local stand-in for the threshold signer. It derives one
// secp256k1 key per owner identity and key slot from a BIP-39 mnemonic and
// answers exactly like the remote service: compressed public keys and raw
// 64-byte signatures, never a recovery id.
package devsigner

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github/chapool/child-wallet/internal/util"
	"github/chapool/child-wallet/internal/wallet/remote"
)

const digestLength = 32

type slotKey struct {
	owner string
	slot  uint32
}

// Signer implements remote.Signer with locally derived keys.
type Signer struct {
	seed *seedHolder

	mu          sync.RWMutex
	provisioned map[slotKey]struct{}
}

var _ remote.Signer = (*Signer)(nil)

// New creates a development signer from mnemonic and the optional BIP-39 passphrase.
func New(mnemonic string, passphrase string) (*Signer, error) {
	seed, err := newSeedHolder(mnemonic, passphrase)
	if err != nil {
		return nil, err
	}

	return &Signer{
		seed:        seed,
		provisioned: make(map[slotKey]struct{}),
	}, nil
}

// GetPublicKey returns the slot's key once CreatePublicKey provisioned it.
func (s *Signer) GetPublicKey(_ context.Context, owner string, slot uint32) ([]byte, error) {
	s.mu.RLock()
	_, ok := s.provisioned[slotKey{owner: owner, slot: slot}]
	s.mu.RUnlock()

	if !ok {
		return nil, remote.ErrPublicKeyNotFound
	}

	return s.publicKey(OwnerPath(owner, slot))
}

// CreatePublicKey provisions the slot. Provisioning is idempotent.
func (s *Signer) CreatePublicKey(ctx context.Context, owner string, slot uint32) ([]byte, error) {
	publicKey, err := s.publicKey(OwnerPath(owner, slot))
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.provisioned[slotKey{owner: owner, slot: slot}] = struct{}{}
	s.mu.Unlock()

	util.LogFromContext(ctx).Debug().
		Str("component", "devsigner").
		Uint32("slot", slot).
		Msg("Provisioned development key")

	return publicKey, nil
}

// Sign signs digest with the slot's key and strips the recovery id. Keys are
// derived on demand, so a slot provisioned before a restart still signs.
func (s *Signer) Sign(_ context.Context, owner string, digest []byte, slot uint32) ([]byte, error) {
	if len(digest) != digestLength {
		return nil, errors.Errorf("digest must be %d bytes, got %d", digestLength, len(digest))
	}

	privateKey, err := s.privateKey(OwnerPath(owner, slot))
	if err != nil {
		return nil, err
	}
	defer func() {
		for i := range privateKey {
			privateKey[i] = 0
		}
	}()

	ecdsaPrivateKey, err := crypto.ToECDSA(privateKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert private key to ECDSA")
	}

	sig, err := crypto.Sign(digest, ecdsaPrivateKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign digest")
	}

	return sig[:64], nil
}

// VerifyExpectedAddress reports whether the verification key's address equals expected.
// It guards against starting with a mistyped mnemonic or passphrase.
func (s *Signer) VerifyExpectedAddress(ctx context.Context, expected common.Address) (bool, error) {
	log := util.LogFromContext(ctx).With().Str("component", "devsigner_verification").Logger()

	publicKey, err := s.publicKey(VerificationPath)
	if err != nil {
		log.Error().Err(err).Msg("Failed to derive verification key")
		return false, err
	}

	pub, err := crypto.DecompressPubkey(publicKey)
	if err != nil {
		return false, errors.Wrap(err, "failed to decompress verification key")
	}

	derived := crypto.PubkeyToAddress(*pub)
	if derived != expected {
		log.Warn().
			Str("derived", derived.Hex()).
			Str("expected", expected.Hex()).
			Msg("Verification failed: addresses do not match")
		return false, nil
	}

	log.Info().Msg("Verification successful")
	return true, nil
}

// Close clears the seed from memory.
func (s *Signer) Close() {
	s.seed.clear()
}

func (s *Signer) publicKey(path string) ([]byte, error) {
	privateKey, err := s.privateKey(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		for i := range privateKey {
			privateKey[i] = 0
		}
	}()

	ecdsaPrivateKey, err := crypto.ToECDSA(privateKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert private key to ECDSA")
	}

	return crypto.CompressPubkey(&ecdsaPrivateKey.PublicKey), nil
}

func (s *Signer) privateKey(path string) ([]byte, error) {
	seed := s.seed.get()
	if seed == nil {
		return nil, remote.Unavailable("derive_key", errors.New("seed not initialized"))
	}

	return deriveKey(seed, path)
}
