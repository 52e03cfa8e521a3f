package payment_test

import (
	"math/big"
	"net/url"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/child-wallet/internal/wallet/payment"
)

func TestBuildQRImageURL(t *testing.T) {
	payload := payment.BuildTransferURI(tokenA, receiver, "1000")
	qrURL := payment.BuildQRImageURL(payload)

	assert.Equal(t,
		"https://api.qrserver.com/v1/create-qr-code/?size=240x240&data="+
			"ethereum%3A0x5FbDB2315678afecb367f032d93F642f64180aa3%2Ftransfer%3Faddress%3D0x70997970C51812dc3A010C7d01b50e0d17dc79C8%26uint256%3D1000",
		qrURL)

	parsed, err := url.Parse(qrURL)
	require.NoError(t, err)
	assert.Equal(t, payload, parsed.Query().Get("data"))
}

func TestBuildQRImageURLKeepsComponentSafeRunes(t *testing.T) {
	qrURL := payment.BuildQRImageURL("a b!~*'()")
	assert.Equal(t, "https://api.qrserver.com/v1/create-qr-code/?size=240x240&data=a%20b!~*'()", qrURL)
}

func TestTransferCalldata(t *testing.T) {
	intent, err := payment.ParseTransferIntent(payment.BuildTransferURI(tokenA, receiver, "1000"), tokenA)
	require.NoError(t, err)

	data, err := payment.TransferCalldata(intent)
	require.NoError(t, err)
	assert.Equal(t, common.FromHex("a9059cbb"), data[:4])
	assert.Equal(t, common.LeftPadBytes(receiver.Bytes(), 32), data[4:36])
	assert.Equal(t, 0, new(big.Int).SetBytes(data[36:]).Cmp(big.NewInt(1000)))
}
