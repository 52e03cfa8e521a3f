package address

import (
	"encoding/hex"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// DeriveAddress derives the EVM address of a compressed secp256k1 public key.
// The point is decompressed, the 0x04 prefix dropped and the low 20 bytes of
// Keccak-256 over the remaining 64 bytes form the address.
func DeriveAddress(compressed []byte) (common.Address, error) {
	if len(compressed) != CompressedPublicKeyLength {
		return common.Address{}, errors.Wrapf(ErrMalformedPublicKey, "expected %d bytes, got %d", CompressedPublicKeyLength, len(compressed))
	}

	publicKey, err := crypto.DecompressPubkey(compressed)
	if err != nil {
		return common.Address{}, errors.Wrapf(ErrMalformedPublicKey, "failed to decompress: %v", err)
	}

	uncompressed := crypto.FromECDSAPub(publicKey)
	hash := crypto.Keccak256(uncompressed[1:])

	return common.BytesToAddress(hash[len(hash)-Length:]), nil
}

// ChecksumHex renders addr in EIP-55 mixed case.
func ChecksumHex(addr common.Address) string {
	return addr.Hex()
}

// IsHexAddress reports whether s is a 0x-prefixed 40 hex character address.
// Checksum casing is not enforced on input.
func IsHexAddress(s string) bool {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return false
	}
	return common.IsHexAddress(s)
}

// ParseAddress parses a 0x-prefixed hex address.
func ParseAddress(s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if !IsHexAddress(s) {
		return common.Address{}, errors.Wrapf(ErrInvalidAddress, "%q is not a 20-byte hex address", s)
	}
	return common.HexToAddress(s), nil
}

// PublicKeyToHex returns the un-prefixed lowercase hex form of a public key, as persisted.
func PublicKeyToHex(publicKey []byte) string {
	return hex.EncodeToString(publicKey)
}

// PublicKeyFromHex decodes a persisted public key, accepting an optional 0x prefix.
func PublicKeyFromHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	publicKey, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedPublicKey, "invalid hex: %v", err)
	}
	if len(publicKey) != CompressedPublicKeyLength {
		return nil, errors.Wrapf(ErrMalformedPublicKey, "expected %d bytes, got %d", CompressedPublicKeyLength, len(publicKey))
	}
	return publicKey, nil
}
