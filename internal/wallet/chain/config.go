package chain

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github/chapool/child-wallet/internal/config"
	"github/chapool/child-wallet/internal/util"
	"github/chapool/child-wallet/internal/wallet/address"
)

// fileConfig is the TOML layout of a chains file:
//
//	[[chains]]
//	chain_id = 31337
//	name = "anvil"
//	rpc_url = "http://localhost:8545,http://localhost:8546"
//
//	[chains.token]
//	address = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
//	symbol = "JPYC"
//	decimals = 18
type fileConfig struct {
	Chains []fileChain `toml:"chains"`
}

type fileChain struct {
	ChainID      uint64     `toml:"chain_id"`
	Name         string     `toml:"name"`
	RPCURL       string     `toml:"rpc_url"`
	NativeSymbol string     `toml:"native_symbol"`
	Disabled     bool       `toml:"disabled"`
	Token        *fileToken `toml:"token"`
}

type fileToken struct {
	Address  string `toml:"address"`
	Symbol   string `toml:"symbol"`
	Decimals *uint8 `toml:"decimals"`
}

const defaultTokenDecimals = 18

// DefaultChains returns the built-in chain table: a local anvil node and sepolia.
// Neither has a token until one is configured.
func DefaultChains() []*Chain {
	return []*Chain{
		{
			ChainID:      AnvilChainID,
			Name:         "anvil",
			RPCURLs:      []string{"http://localhost:8545"},
			NativeSymbol: "ETH",
			IsActive:     true,
		},
		{
			ChainID:      SepoliaChainID,
			Name:         "sepolia",
			RPCURLs:      []string{"https://ethereum-sepolia-rpc.publicnode.com"},
			NativeSymbol: "ETH",
			IsActive:     true,
		},
	}
}

// LoadFile reads a TOML chains file.
func LoadFile(path string) ([]*Chain, error) {
	var cfg fileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to decode chains file %s", path)
	}

	chains := make([]*Chain, 0, len(cfg.Chains))
	for _, fc := range cfg.Chains {
		c := &Chain{
			ChainID:      fc.ChainID,
			Name:         fc.Name,
			RPCURLs:      ParseRPCURLs(fc.RPCURL),
			NativeSymbol: fc.NativeSymbol,
			IsActive:     !fc.Disabled,
		}
		if c.NativeSymbol == "" {
			c.NativeSymbol = "ETH"
		}

		if fc.Token != nil && fc.Token.Address != "" {
			token, err := parseToken(fc.Token.Address, fc.Token.Symbol, fc.Token.Decimals)
			if err != nil {
				return nil, errors.Wrapf(err, "chain %d", fc.ChainID)
			}
			c.Token = token
		}

		chains = append(chains, c)
	}

	return chains, nil
}

// NewServiceFromConfig builds the registry from the chains file (or the built-in
// table) and applies the token override of the default chain.
//
//nolint:ireturn
func NewServiceFromConfig(cfg config.Chains) (Service, error) {
	chains := DefaultChains()
	if cfg.File != "" {
		loaded, err := LoadFile(cfg.File)
		if err != nil {
			return nil, err
		}
		chains = loaded
	}

	if cfg.TokenAddress != "" {
		decimals := cfg.TokenDecimals
		token, err := parseToken(cfg.TokenAddress, cfg.TokenSymbol, &decimals)
		if err != nil {
			return nil, errors.Wrap(err, "invalid CHAINS_TOKEN_ADDRESS")
		}
		for _, c := range chains {
			if c.ChainID == cfg.DefaultChainID {
				c.Token = token
			}
		}
	}

	return NewService(chains, cfg.DefaultChainID)
}

func parseToken(rawAddress string, symbol string, decimals *uint8) (*Token, error) {
	addr, err := address.ParseAddress(rawAddress)
	if err != nil {
		return nil, err
	}

	token := &Token{Address: addr, Symbol: symbol, Decimals: defaultTokenDecimals}
	if decimals != nil {
		token.Decimals = *decimals
	}
	if token.Symbol == "" {
		token.Symbol = "TOKEN"
	}
	return token, nil
}

// ParseRPCURLs splits a comma separated RPC URL list.
func ParseRPCURLs(rpcURL string) []string {
	if rpcURL == "" {
		return nil
	}
	return util.NonEmpty(strings.Split(rpcURL, ","))
}
