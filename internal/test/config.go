package test

import (
	"time"

	"github.com/rs/zerolog"
	"github/chapool/child-wallet/internal/config"
	"github/chapool/child-wallet/internal/wallet/chain"
)

const (
	// TestMnemonic is the well known anvil/hardhat development mnemonic.
	TestMnemonic = "test test test test test test test test test test test junk"
	// TestMnemonicAddress is the account m/44'/60'/0'/0/0 of TestMnemonic.
	TestMnemonicAddress = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	// TestTokenAddress is the first contract anvil deploys from TestMnemonicAddress.
	TestTokenAddress = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
	// TestOwner is the owner identity used by the server tests.
	TestOwner = "2vxsx-fae-test-owner"
)

// DefaultTestConfig returns a server config running entirely in memory:
// development signer, memory key store and the built-in anvil chain.
func DefaultTestConfig() config.Server {
	return config.Server{
		Echo: config.EchoServer{
			ListenAddress: ":0",
		},
		Logger: config.LoggerServer{
			Level:        zerolog.DebugLevel,
			RequestLevel: zerolog.DebugLevel,
		},
		Signer: config.Signer{
			Mode:               config.SignerModeDev,
			Timeout:            5 * time.Second,
			DevMnemonic:        TestMnemonic,
			DevExpectedAddress: TestMnemonicAddress,
		},
		KeyStore: config.KeyStore{
			Backend: config.KeyStoreMemory,
		},
		Chains: config.Chains{
			DefaultChainID: chain.AnvilChainID,
			TokenAddress:   TestTokenAddress,
			TokenSymbol:    "JPYC",
			TokenDecimals:  18,
		},
		Ledger: config.Ledger{
			ReceiptPollInterval: 10 * time.Millisecond,
			ReceiptTimeout:      5 * time.Second,
		},
	}
}
