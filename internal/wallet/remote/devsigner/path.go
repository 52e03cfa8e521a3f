package devsigner

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip32"
)

const (
	// VerificationPath is the key whose address is compared against the configured expected address.
	VerificationPath = "m/44'/60'/0'/0/0"

	maxAccountIndex = bip32.FirstHardenedChild - 1
)

// OwnerPath returns the derivation path of an owner's key slot: m/44'/60'/{account}'/0/{slot}.
// Slots above keycache.MaxSlot do not form a valid path.
// The account is taken from the Keccak-256 of the owner identity and never 0, which is
// reserved for the verification key.
func OwnerPath(owner string, slot uint32) string {
	h := crypto.Keccak256([]byte(owner))
	account := binary.BigEndian.Uint32(h[:4])%maxAccountIndex + 1

	return fmt.Sprintf("m/44'/60'/%d'/0/%d", account, slot)
}

// deriveKey derives the 32-byte private key at path.
// WARNING: Caller must clear the private key after use
func deriveKey(seed []byte, path string) ([]byte, error) {
	masterKey, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create master key")
	}

	indices, err := parsePath(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse derivation path")
	}

	key := masterKey
	for _, index := range indices {
		key, err = key.NewChildKey(index)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to derive child key at index %d", index)
		}
	}

	return key.Key, nil
}

// parsePath parses a BIP-32 path string into child indices.
// Example: "m/44'/60'/0'/0/0" -> [2147483692, 2147483708, 2147483648, 0, 0]
func parsePath(path string) ([]uint32, error) {
	parts := strings.Split(path, "/")
	if len(parts) < 2 || parts[0] != "m" {
		return nil, fmt.Errorf("invalid derivation path: %s", path)
	}

	indices := make([]uint32, 0, len(parts)-1)
	for _, part := range parts[1:] {
		hardened := strings.HasSuffix(part, "'")
		part = strings.TrimSuffix(part, "'")

		index, err := strconv.ParseUint(part, 10, 32)
		if err != nil || uint32(index) >= bip32.FirstHardenedChild {
			return nil, fmt.Errorf("invalid path segment: %s", part)
		}

		if hardened {
			index += uint64(bip32.FirstHardenedChild)
		}
		indices = append(indices, uint32(index))
	}

	return indices, nil
}
