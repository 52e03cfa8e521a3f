package payment

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/child-wallet/internal/api"
	"github/chapool/child-wallet/internal/api/middleware"
	"github/chapool/child-wallet/internal/auth"
	"github/chapool/child-wallet/internal/types"
	"github/chapool/child-wallet/internal/util"
	"github/chapool/child-wallet/internal/wallet/address"
)

func PostTransferRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Payment.POST("/transfer", postTransferHandler(s), middleware.RequireOwner())
}

// Signs and broadcasts the transfer of a scanned payload and waits for its receipt.
func postTransferHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body types.PostPaymentPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		sess, err := s.Sessions.Get(auth.OwnerFromContext(ctx))
		if err != nil {
			return err
		}

		result, err := s.Transfers.Transfer(ctx, sess, body.ChainID, body.Payload)
		if err != nil {
			util.LogFromContext(ctx).Warn().Err(err).Msg("Transfer failed")
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, &types.TransferResponse{
			ChainID:     result.ChainID,
			TxHash:      result.Hash.Hex(),
			From:        address.ChecksumHex(result.From),
			Nonce:       result.Nonce,
			BlockNumber: result.BlockNumber,
			GasUsed:     result.GasUsed,
		})
	}
}
