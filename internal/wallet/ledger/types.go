package ledger

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
)

var (
	ErrNoRPCURLs          = errors.New("at least one RPC URL is required")
	ErrAllNodesDown       = errors.New("all RPC clients are unavailable")
	ErrChainMismatch      = errors.New("RPC node serves another chain")
	ErrTransactionFailed  = errors.New("transaction reverted")
	ErrBaseFeeUnavailable = errors.New("latest block has no base fee")
)

// Client is the ledger the wallet reads from and broadcasts to.
type Client interface {
	ChainID(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, account common.Address) (*big.Int, error)
	// TokenBalance reads balanceOf(account) of an ERC-20 token.
	TokenBalance(ctx context.Context, token common.Address, account common.Address) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	LatestBaseFee(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	// SendRawTransaction broadcasts a signed, serialized transaction and returns its hash.
	SendRawTransaction(ctx context.Context, raw []byte) (common.Hash, error)
	// WaitForReceipt polls until the transaction is mined or ctx is done.
	WaitForReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error)
}

// Provider hands out the ledger client of a chain.
type Provider interface {
	Client(ctx context.Context, chainID uint64) (Client, error)
}
