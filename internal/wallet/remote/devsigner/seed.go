package devsigner

import (
	"crypto/sha512"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/pbkdf2"
)

// ErrInvalidMnemonic is returned when the configured mnemonic fails the BIP-39 checksum.
var ErrInvalidMnemonic = errors.New("invalid mnemonic")

// seedHolder keeps the BIP-39 seed in memory with thread-safe access
type seedHolder struct {
	mu   sync.RWMutex
	seed []byte
}

func newSeedHolder(mnemonic string, passphrase string) (*seedHolder, error) {
	mnemonic = strings.Join(strings.Fields(mnemonic), " ")
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}

	// BIP39: seed = PBKDF2(mnemonic, "mnemonic" + passphrase, 2048, 64, SHA512)
	const (
		pbkdf2Iterations = 2048
		pbkdf2KeyLength  = 64
	)

	return &seedHolder{
		seed: pbkdf2.Key(
			[]byte(mnemonic),
			[]byte("mnemonic"+passphrase),
			pbkdf2Iterations,
			pbkdf2KeyLength,
			sha512.New,
		),
	}, nil
}

// get returns a copy of the seed, nil once cleared
func (h *seedHolder) get() []byte {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.seed == nil {
		return nil
	}

	seedCopy := make([]byte, len(h.seed))
	copy(seedCopy, h.seed)
	return seedCopy
}

func (h *seedHolder) clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i := range h.seed {
		h.seed[i] = 0
	}
	h.seed = nil
}

// NewMnemonic generates a fresh 24-word mnemonic for local development.
func NewMnemonic() (string, error) {
	const entropyBits = 256

	entropy, err := bip39.NewEntropy(entropyBits)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate entropy")
	}

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", errors.Wrap(err, "failed to build mnemonic")
	}

	return mnemonic, nil
}
