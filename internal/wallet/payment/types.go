// Package payment encodes and validates ERC-20 transfer requests carried in QR
// payloads of the form ethereum:{token}/transfer?address={receiver}&uint256={amount}.
package payment

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

var (
	ErrMalformedPayload  = errors.New("malformed payment payload")
	ErrMissingField      = errors.New("missing payment field")
	ErrInvalidAddress    = errors.New("invalid address")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrUnauthorizedToken = errors.New("token is not allowed on this chain")
)

const (
	FieldToken    = "token"
	FieldReceiver = "address"
	FieldAmount   = "uint256"
)

// FieldError names the payload field a validation error is about.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Field)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// TransferIntent is a validated "send amount of token to receiver" request.
type TransferIntent struct {
	Token    common.Address
	Receiver common.Address
	// RawAmount is the amount exactly as it appeared in the payload.
	RawAmount string
	Amount    *big.Int
	// ChainID is set when the payload pinned a chain with token@chainId, zero otherwise.
	ChainID uint64
}
