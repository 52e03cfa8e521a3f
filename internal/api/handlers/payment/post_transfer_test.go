package payment_test

import (
	"context"
	"math/big"
	"net/http"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/child-wallet/internal/api"
	"github/chapool/child-wallet/internal/test"
	"github/chapool/child-wallet/internal/types"
	"github/chapool/child-wallet/internal/wallet/chain"
	"github/chapool/child-wallet/internal/wallet/erc20"
)

func TestPostTransfer(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		session := test.Login(t, s, test.TestOwner)
		fake := test.LedgerOf(t, s)
		fake.SetNonce(common.HexToAddress(session.Address), 4)

		res := test.PerformRequest(t, s, "POST", "/api/v1/payment/transfer", test.GenericPayload{
			"payload": transferURI(test.TestTokenAddress, testReceiver, "2000000000000000000"),
		}, test.OwnerHeaders(test.TestOwner))
		require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())

		var resp types.TransferResponse
		test.ParseResponseAndValidate(t, res, &resp)

		assert.Equal(t, chain.AnvilChainID, resp.ChainID)
		assert.Equal(t, session.Address, resp.From)
		assert.Equal(t, uint64(4), resp.Nonce)
		assert.Equal(t, uint64(1), resp.BlockNumber)

		sent := fake.Sent()
		require.Len(t, sent, 1)
		tx := sent[0]
		assert.Equal(t, resp.TxHash, tx.Hash().Hex())
		assert.Equal(t, uint8(ethtypes.DynamicFeeTxType), tx.Type())
		assert.Equal(t, test.TestTokenAddress, tx.To().Hex())
		assert.Equal(t, "0", tx.Value().String())

		calldata, err := erc20.TransferCalldata(common.HexToAddress(testReceiver), big.NewInt(2_000_000_000_000_000_000))
		require.NoError(t, err)
		assert.Equal(t, calldata, tx.Data())

		sender, err := ethtypes.Sender(ethtypes.LatestSignerForChainID(tx.ChainId()), tx)
		require.NoError(t, err)
		assert.Equal(t, session.Address, sender.Hex())
	})
}

func TestPostTransferMissingOwner(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/payment/transfer", test.GenericPayload{
			"payload": transferURI(test.TestTokenAddress, testReceiver, "1"),
		}, nil)
		require.Equal(t, http.StatusUnauthorized, res.Result().StatusCode)
		assert.Empty(t, test.LedgerOf(t, s).Sent())
	})
}

func TestPostTransferNoSession(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/payment/transfer", test.GenericPayload{
			"payload": transferURI(test.TestTokenAddress, testReceiver, "1"),
		}, test.OwnerHeaders(test.TestOwner))
		require.Equal(t, http.StatusUnauthorized, res.Result().StatusCode)
		assert.Empty(t, test.LedgerOf(t, s).Sent())
	})
}

func TestPostTransferUnauthorizedToken(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		test.Login(t, s, test.TestOwner)

		res := test.PerformRequest(t, s, "POST", "/api/v1/payment/transfer", test.GenericPayload{
			"payload": transferURI("0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512", testReceiver, "1"),
		}, test.OwnerHeaders(test.TestOwner))
		require.Equal(t, http.StatusForbidden, res.Result().StatusCode)
		assert.Empty(t, test.LedgerOf(t, s).Sent())
	})
}

func TestPostTransferReverted(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		test.Login(t, s, test.TestOwner)
		test.LedgerOf(t, s).ReceiptStatus = ethtypes.ReceiptStatusFailed

		res := test.PerformRequest(t, s, "POST", "/api/v1/payment/transfer", test.GenericPayload{
			"payload": transferURI(test.TestTokenAddress, testReceiver, "1"),
		}, test.OwnerHeaders(test.TestOwner))
		require.Equal(t, http.StatusUnprocessableEntity, res.Result().StatusCode)

		var resp types.PublicHTTPError
		test.ParseResponseAndValidate(t, res, &resp)
		assert.Equal(t, types.PublicHTTPErrorTypeTransferReverted, resp.Type)
	})
}

func TestPostTransferLogoutWhileBroadcasting(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		test.Login(t, s, test.TestOwner)

		fake := test.LedgerOf(t, s)
		fake.OnSend = func(ctx context.Context, _ *ethtypes.Transaction) {
			require.NoError(t, s.Sessions.Logout(ctx, test.TestOwner))
		}

		res := test.PerformRequest(t, s, "POST", "/api/v1/payment/transfer", test.GenericPayload{
			"payload": transferURI(test.TestTokenAddress, testReceiver, "1"),
		}, test.OwnerHeaders(test.TestOwner))
		require.Equal(t, http.StatusConflict, res.Result().StatusCode)

		var resp types.PublicHTTPError
		test.ParseResponseAndValidate(t, res, &resp)
		assert.Equal(t, types.PublicHTTPErrorTypeSessionEnded, resp.Type)
	})
}
