package config_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/child-wallet/internal/config"
)

func TestPrintServiceEnv(t *testing.T) {
	config := config.DefaultServiceConfigFromEnv()
	_, err := json.MarshalIndent(config, "", "  ")

	if err != nil {
		t.Fatal(err)
	}
}

func TestDefaultServiceConfigFromEnvOverrides(t *testing.T) {
	t.Setenv("ENV_FILE", "does-not-exist.env")
	t.Setenv("SIGNER_MODE", "DEV")
	t.Setenv("SIGNER_BASE_URL", "http://signer.local/")
	t.Setenv("SIGNER_TIMEOUT", "5s")
	t.Setenv("KEYSTORE_BACKEND", "memory")
	t.Setenv("CHAINS_DEFAULT_CHAIN_ID", "11155111")
	t.Setenv("SERVER_LOGGER_LEVEL", "debug")

	cfg := config.DefaultServiceConfigFromEnv()
	require.Equal(t, config.SignerModeDev, cfg.Signer.Mode)
	assert.Equal(t, "http://signer.local", cfg.Signer.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Signer.Timeout)
	assert.Equal(t, config.KeyStoreMemory, cfg.KeyStore.Backend)
	assert.Equal(t, uint64(11155111), cfg.Chains.DefaultChainID)
	assert.Equal(t, zerolog.DebugLevel, cfg.Logger.Level)
}
