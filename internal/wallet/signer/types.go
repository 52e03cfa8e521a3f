package signer

import (
	"encoding/hex"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
)

const (
	KindMessage     = "message"
	KindTransaction = "transaction"

	ResultOK    = "ok"
	ResultError = "error"
)

var (
	// ErrNotImplemented is returned by SignTypedData.
	ErrNotImplemented = errors.New("typed data signing is not implemented")
	// ErrUnsupportedTransaction is returned by EthereumSerializer for transaction types it cannot encode.
	ErrUnsupportedTransaction = errors.New("unsupported transaction type")
	// ErrChainIDMismatch is returned when a typed transaction names another chain than the serializer.
	ErrChainIDMismatch = errors.New("transaction chain id does not match")
	// ErrMissingChainID is returned by a serializer built without a chain id.
	ErrMissingChainID = errors.New("serializer needs a chain id")
)

// EthSignature is a recoverable Ethereum signature. V is 27 or 28.
type EthSignature struct {
	R [32]byte
	S [32]byte
	V uint8
}

// Bytes returns the 65-byte r||s||v encoding.
func (s *EthSignature) Bytes() []byte {
	out := make([]byte, 0, 65)
	out = append(out, s.R[:]...)
	out = append(out, s.S[:]...)
	return append(out, s.V)
}

// Hex returns the 0x-prefixed hex of Bytes.
func (s *EthSignature) Hex() string {
	return "0x" + hex.EncodeToString(s.Bytes())
}

// Serializer encodes tx for the ledger. Called with a nil signature it returns
// the unsigned signing payload whose Keccak-256 is the digest to sign. Called
// with a signature it returns the signed transaction encoding.
type Serializer func(tx *types.Transaction, sig *EthSignature) ([]byte, error)

// Service hands out signing identities.
type Service interface {
	// Identity returns the identity bound to (owner, slot). Repeated calls return the same identity.
	Identity(owner string, slot uint32) *Identity

	// Forget drops the owner's identities and cached key material.
	Forget(owner string)
}

// Observer receives signing outcomes, e.g. for metrics. May be nil.
type Observer interface {
	ObserveSignature(kind string, result string)
}
