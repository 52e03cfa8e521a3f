package chain_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/child-wallet/internal/config"
	"github/chapool/child-wallet/internal/wallet/address"
	"github/chapool/child-wallet/internal/wallet/chain"
)

const chainsTOML = `
[[chains]]
chain_id = 31337
name = "anvil"
rpc_url = "http://localhost:8545, http://localhost:8546,"

[chains.token]
address = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
symbol = "JPYC"
decimals = 18

[[chains]]
chain_id = 11155111
name = "sepolia"
rpc_url = "https://rpc.sepolia.example"
disabled = true

[[chains]]
chain_id = 137
name = "polygon"
native_symbol = "POL"
rpc_url = "https://polygon.example"

[chains.token]
address = "0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512"
decimals = 6
`

func writeChainsFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "chains.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	chains, err := chain.LoadFile(writeChainsFile(t, chainsTOML))
	require.NoError(t, err)
	require.Len(t, chains, 3)

	anvil := chains[0]
	assert.Equal(t, chain.AnvilChainID, anvil.ChainID)
	assert.Equal(t, []string{"http://localhost:8545", "http://localhost:8546"}, anvil.RPCURLs)
	assert.Equal(t, "ETH", anvil.NativeSymbol)
	assert.True(t, anvil.IsActive)
	require.NotNil(t, anvil.Token)
	assert.Equal(t, common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"), anvil.Token.Address)
	assert.Equal(t, "JPYC", anvil.Token.Symbol)
	assert.Equal(t, uint8(18), anvil.Token.Decimals)

	assert.False(t, chains[1].IsActive)
	assert.Nil(t, chains[1].Token)

	assert.Equal(t, "POL", chains[2].NativeSymbol)
	assert.Equal(t, uint8(6), chains[2].Token.Decimals)
	assert.Equal(t, "TOKEN", chains[2].Token.Symbol)
}

func TestLoadFileInvalid(t *testing.T) {
	_, err := chain.LoadFile(writeChainsFile(t, "[[chains]\nbroken"))
	require.Error(t, err)

	_, err = chain.LoadFile(writeChainsFile(t, "[[chains]]\nchain_id = 1\n[chains.token]\naddress = \"0x1234\"\n"))
	require.ErrorIs(t, err, address.ErrInvalidAddress)

	_, err = chain.LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestService(t *testing.T) {
	chains, err := chain.LoadFile(writeChainsFile(t, chainsTOML))
	require.NoError(t, err)

	svc, err := chain.NewService(chains, chain.AnvilChainID)
	require.NoError(t, err)
	assert.Equal(t, chain.AnvilChainID, svc.DefaultChainID())

	c, err := svc.GetChain(137)
	require.NoError(t, err)
	assert.Equal(t, "polygon", c.Name)

	_, err = svc.GetChain(1)
	require.ErrorIs(t, err, chain.ErrChainNotFound)

	listed := svc.ListChains()
	require.Len(t, listed, 3)
	assert.Equal(t, uint64(137), listed[0].ChainID)
	assert.Equal(t, chain.SepoliaChainID, listed[2].ChainID)

	assert.Len(t, svc.GetActiveChains(), 2)

	token, err := svc.AllowedToken(chain.AnvilChainID)
	require.NoError(t, err)
	assert.Equal(t, "JPYC", token.Symbol)

	_, err = svc.AllowedToken(chain.SepoliaChainID)
	require.ErrorIs(t, err, chain.ErrTokenNotConfigured)

	_, err = svc.AllowedToken(1)
	require.ErrorIs(t, err, chain.ErrChainNotFound)
}

func TestNewServiceValidation(t *testing.T) {
	_, err := chain.NewService(chain.DefaultChains(), 1)
	require.ErrorIs(t, err, chain.ErrChainNotFound)

	_, err = chain.NewService([]*chain.Chain{{ChainID: 1}, {ChainID: 1}}, 1)
	require.Error(t, err)

	_, err = chain.NewService([]*chain.Chain{{Name: "nameless"}}, 0)
	require.Error(t, err)
}

func TestNewServiceFromConfig(t *testing.T) {
	svc, err := chain.NewServiceFromConfig(config.Chains{
		DefaultChainID: chain.SepoliaChainID,
		TokenAddress:   "0x5FbDB2315678afecb367f032d93F642f64180aa3",
		TokenSymbol:    "JPYC",
		TokenDecimals:  18,
	})
	require.NoError(t, err)

	token, err := svc.AllowedToken(chain.SepoliaChainID)
	require.NoError(t, err)
	assert.Equal(t, "JPYC", token.Symbol)

	_, err = svc.AllowedToken(chain.AnvilChainID)
	require.ErrorIs(t, err, chain.ErrTokenNotConfigured)

	_, err = chain.NewServiceFromConfig(config.Chains{DefaultChainID: chain.AnvilChainID, TokenAddress: "nope"})
	require.Error(t, err)
}

func TestParseRPCURLs(t *testing.T) {
	assert.Nil(t, chain.ParseRPCURLs(""))
	assert.Equal(t, []string{"a", "b"}, chain.ParseRPCURLs(" a ,, b "))
}
