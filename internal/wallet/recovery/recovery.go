// Package recovery reconstructs the ECDSA recovery bit of signatures produced
// by a signer that only returns (r, s).
package recovery

import (
	"bytes"
	"math/big"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

const (
	RawSignatureLength        = 64
	DigestLength              = 32
	CompressedPublicKeyLength = 33
)

var ErrRecoveryFailed = errors.New("signature does not recover the expected public key")

var (
	secp256k1N     = crypto.S256().Params().N
	secp256k1HalfN = new(big.Int).Rsh(secp256k1N, 1)
)

// ResolveRecoveryBit returns the recovery bit (0 or 1) under which sig over
// digest recovers expectedPublicKey. Both candidates are tried in order;
// ErrRecoveryFailed is returned when neither matches.
func ResolveRecoveryBit(sig, digest, expectedPublicKey []byte) (uint8, error) {
	if len(sig) != RawSignatureLength {
		return 0, errors.Wrapf(ErrRecoveryFailed, "signature must be %d bytes, got %d", RawSignatureLength, len(sig))
	}
	if len(digest) != DigestLength {
		return 0, errors.Wrapf(ErrRecoveryFailed, "digest must be %d bytes, got %d", DigestLength, len(digest))
	}
	if len(expectedPublicKey) != CompressedPublicKeyLength {
		return 0, errors.Wrapf(ErrRecoveryFailed, "public key must be %d bytes, got %d", CompressedPublicKeyLength, len(expectedPublicKey))
	}

	candidate := make([]byte, RawSignatureLength+1)
	copy(candidate, sig)

	for bit := uint8(0); bit <= 1; bit++ {
		candidate[RawSignatureLength] = bit

		recovered, err := crypto.SigToPub(digest, candidate)
		if err != nil {
			continue
		}

		if bytes.Equal(crypto.CompressPubkey(recovered), expectedPublicKey) {
			return bit, nil
		}
	}

	return 0, ErrRecoveryFailed
}

// NormalizeLowS returns a copy of sig with s replaced by n-s when s is in the
// upper half of the curve order. Ethereum rejects high-s transaction signatures.
// The recovery bit of the returned signature must be resolved again.
func NormalizeLowS(sig []byte) ([]byte, bool) {
	out := make([]byte, len(sig))
	copy(out, sig)
	if len(sig) != RawSignatureLength {
		return out, false
	}

	s := new(big.Int).SetBytes(sig[32:])
	if s.Cmp(secp256k1HalfN) <= 0 {
		return out, false
	}

	s.Sub(secp256k1N, s)
	s.FillBytes(out[32:])
	return out, true
}
