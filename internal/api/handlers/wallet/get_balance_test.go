package wallet_test

import (
	"math/big"
	"net/http"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/child-wallet/internal/api"
	"github/chapool/child-wallet/internal/test"
	"github/chapool/child-wallet/internal/types"
	"github/chapool/child-wallet/internal/wallet/chain"
)

func TestGetBalance(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		session := test.Login(t, s, test.TestOwner)
		account := common.HexToAddress(session.Address)

		fake := test.LedgerOf(t, s)
		fake.SetBalance(account, big.NewInt(1_500_000_000_000_000_000))
		fake.SetTokenBalance(common.HexToAddress(test.TestTokenAddress), account, new(big.Int).Mul(big.NewInt(250), big.NewInt(1e18)))

		res := test.PerformRequest(t, s, "GET", "/api/v1/wallet/balance", nil, test.OwnerHeaders(test.TestOwner))
		require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())

		var resp types.GetWalletBalanceResponse
		test.ParseResponseAndValidate(t, res, &resp)

		assert.Equal(t, chain.AnvilChainID, resp.ChainID)
		assert.Equal(t, session.Address, resp.Address)
		assert.Equal(t, "1500000000000000000", resp.Native.Raw)
		assert.Equal(t, "1.5", resp.Native.Formatted)
		assert.Equal(t, "ETH", resp.Native.Symbol)

		require.NotNil(t, resp.Token)
		assert.Equal(t, "250000000000000000000", resp.Token.Raw)
		assert.Equal(t, "250", resp.Token.Formatted)
		assert.Equal(t, "JPYC", resp.Token.Symbol)
		assert.Equal(t, test.TestTokenAddress, resp.Token.Address)
	})
}

func TestGetBalanceUnknownChain(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		test.Login(t, s, test.TestOwner)

		res := test.PerformRequest(t, s, "GET", "/api/v1/wallet/balance?chain_id=1", nil, test.OwnerHeaders(test.TestOwner))
		require.Equal(t, http.StatusNotFound, res.Result().StatusCode)

		var resp types.PublicHTTPError
		test.ParseResponseAndValidate(t, res, &resp)
		assert.Equal(t, types.PublicHTTPErrorTypeChainNotFound, resp.Type)
	})
}

func TestGetBalanceInvalidChainID(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		test.Login(t, s, test.TestOwner)

		res := test.PerformRequest(t, s, "GET", "/api/v1/wallet/balance?chain_id=anvil", nil, test.OwnerHeaders(test.TestOwner))
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)
	})
}
