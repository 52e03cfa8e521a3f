package chain

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

const (
	AnvilChainID   uint64 = 31337
	SepoliaChainID uint64 = 11155111
)

var (
	ErrChainNotFound      = errors.New("chain not found")
	ErrTokenNotConfigured = errors.New("no token configured for chain")
)

// Token is the single ERC-20 token transfers are allowed for on a chain.
type Token struct {
	Address  common.Address
	Symbol   string
	Decimals uint8
}

// Chain describes one supported network.
type Chain struct {
	ChainID      uint64
	Name         string
	RPCURLs      []string
	NativeSymbol string
	IsActive     bool
	Token        *Token
}

// Service is the registry of supported chains.
type Service interface {
	// GetChain returns the chain with chainID or ErrChainNotFound.
	GetChain(chainID uint64) (*Chain, error)

	// ListChains returns all chains ordered by chain id.
	ListChains() []*Chain

	// GetActiveChains returns the active chains ordered by chain id.
	GetActiveChains() []*Chain

	// AllowedToken returns the allow-listed token of chainID or ErrTokenNotConfigured.
	AllowedToken(chainID uint64) (*Token, error)

	// DefaultChainID is the chain used when a request does not name one.
	DefaultChainID() uint64
}
