package wallet

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/child-wallet/internal/api"
	"github/chapool/child-wallet/internal/types"
	"github/chapool/child-wallet/internal/util"
	"github/chapool/child-wallet/internal/wallet/address"
	"github/chapool/child-wallet/internal/wallet/payment"
)

const nativeDecimals = 18

func GetBalanceRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.GET("/balance", getBalanceHandler(s))
}

// One-shot read of the native and token balance, chain_id defaults to the default chain.
func getBalanceHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var params types.GetWalletBalanceParams
		if err := util.BindAndValidateQueryParams(c, &params); err != nil {
			return err
		}

		sess, err := currentSession(c, s)
		if err != nil {
			return err
		}

		balances, err := s.Transfers.Balances(ctx, sess, params.ChainID)
		if err != nil {
			util.LogFromContext(ctx).Debug().Err(err).Uint64("chain_id", params.ChainID).Msg("Failed to read balances")
			return err
		}

		resp := &types.GetWalletBalanceResponse{
			ChainID: balances.ChainID,
			Address: address.ChecksumHex(balances.Address),
			Native: types.Amount{
				Raw:       balances.Native.String(),
				Formatted: payment.FormatUnits(balances.Native, nativeDecimals),
				Symbol:    balances.NativeSymbol,
				Decimals:  nativeDecimals,
			},
		}
		if balances.Token != nil {
			resp.Token = &types.TokenAmount{
				Amount: types.Amount{
					Raw:       balances.Token.String(),
					Formatted: payment.FormatUnits(balances.Token, balances.TokenDecimals),
					Symbol:    balances.TokenSymbol,
					Decimals:  balances.TokenDecimals,
				},
				Address: address.ChecksumHex(balances.TokenAddress),
			}
		}

		return util.ValidateAndReturn(c, http.StatusOK, resp)
	}
}
