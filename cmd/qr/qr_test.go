package qr_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/child-wallet/cmd/qr"
)

const (
	testToken    = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
	testReceiver = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	t.Setenv("ENV_FILE", "/nonexistent/.env")
	t.Setenv("CHAINS_DEFAULT_CHAIN_ID", "31337")
	t.Setenv("CHAINS_TOKEN_ADDRESS", testToken)
	t.Setenv("CHAINS_TOKEN_SYMBOL", "JPYC")
	t.Setenv("CHAINS_TOKEN_DECIMALS", "18")

	var out bytes.Buffer
	cmd := qr.New()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestEncode(t *testing.T) {
	out, err := run(t, "encode", "--receiver", testReceiver, "--amount", "1.25")
	require.NoError(t, err)
	assert.Equal(t, "ethereum:"+testToken+"/transfer?address="+testReceiver+"&uint256=1250000000000000000\n", out)
}

func TestEncodeInvalidAmount(t *testing.T) {
	_, err := run(t, "encode", "--receiver", testReceiver, "--amount", "0")
	require.Error(t, err)
}

func TestDecode(t *testing.T) {
	out, err := run(t, "decode", "ethereum:"+testToken+"/transfer?address="+testReceiver+"&uint256=1250000000000000000")
	require.NoError(t, err)
	assert.Contains(t, out, "receiver: "+testReceiver)
	assert.Contains(t, out, "amount:   1.25 JPYC (1250000000000000000)")
}

func TestDecodeOtherToken(t *testing.T) {
	_, err := run(t, "decode", "ethereum:0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512/transfer?address="+testReceiver+"&uint256=1")
	require.Error(t, err)
}
