package transfer

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	"github/chapool/child-wallet/internal/wallet/chain"
	"github/chapool/child-wallet/internal/wallet/payment"
	"github/chapool/child-wallet/internal/wallet/session"
)

const (
	ResultOK        = "ok"
	ResultError     = "error"
	ResultReverted  = "reverted"
	ResultDiscarded = "discarded"
)

var (
	// ErrTransferReverted is returned when the transfer was mined with a failed status.
	ErrTransferReverted = errors.New("transfer reverted")
	// ErrChainMismatch is returned when the payload pins another chain than requested.
	ErrChainMismatch = errors.New("payment payload is for another chain")
)

// Plan is a validated, unsigned transfer ready to execute.
type Plan struct {
	ChainID uint64
	Intent  *payment.TransferIntent
	Token   *chain.Token
	From    common.Address
	Tx      *types.Transaction
}

type Result struct {
	ChainID     uint64
	Hash        common.Hash
	From        common.Address
	Nonce       uint64
	BlockNumber uint64
	GasUsed     uint64
}

type Balances struct {
	ChainID       uint64
	Address       common.Address
	Native        *big.Int
	NativeSymbol  string
	Token         *big.Int
	TokenAddress  common.Address
	TokenSymbol   string
	TokenDecimals uint8
}

type Service interface {
	// Prepare parses payload against the chain's allowed token and builds the
	// EIP-1559 transaction for the session's identity. chainID 0 selects the default chain.
	Prepare(ctx context.Context, s *session.Session, chainID uint64, payload string) (*Plan, error)

	// Execute signs, broadcasts and waits for the receipt of plan. The nonce is
	// assigned again at broadcast time, so concurrent or stale plans of one sender
	// never share a nonce. Work of a session that ended meanwhile is discarded
	// with session.ErrSessionEnded.
	Execute(ctx context.Context, s *session.Session, plan *Plan) (*Result, error)

	// Transfer is Prepare followed by Execute.
	Transfer(ctx context.Context, s *session.Session, chainID uint64, payload string) (*Result, error)

	// Balances reads the native and token balance of the session's address once.
	Balances(ctx context.Context, s *session.Session, chainID uint64) (*Balances, error)
}

type Observer interface {
	ObserveTransfer(result string)
}
