package payment

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github/chapool/child-wallet/internal/api"
	"github/chapool/child-wallet/internal/types"
	"github/chapool/child-wallet/internal/util"
	"github/chapool/child-wallet/internal/wallet/address"
	"github/chapool/child-wallet/internal/wallet/payment"
	"github/chapool/child-wallet/internal/wallet/transfer"
)

func PostParseRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Payment.POST("/parse", postParseHandler(s))
}

// Validates a scanned payload against the chain's allowed token without sending anything.
func postParseHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		var body types.PostPaymentPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		chainID := chainOrDefault(s, body.ChainID)
		token, err := s.Chains.AllowedToken(chainID)
		if err != nil {
			return err
		}

		intent, err := payment.ParseTransferIntent(body.Payload, token.Address)
		if err != nil {
			util.LogFromEchoContext(c).Debug().Err(err).Msg("Rejected payment payload")
			return err
		}
		if intent.ChainID != 0 && intent.ChainID != chainID {
			return errors.Wrapf(transfer.ErrChainMismatch, "payload chain %d, requested %d", intent.ChainID, chainID)
		}

		return util.ValidateAndReturn(c, http.StatusOK, &types.PaymentIntentResponse{
			ChainID:  chainID,
			Token:    address.ChecksumHex(intent.Token),
			Receiver: address.ChecksumHex(intent.Receiver),
			Amount: types.Amount{
				Raw:       intent.RawAmount,
				Formatted: payment.FormatUnits(intent.Amount, token.Decimals),
				Symbol:    token.Symbol,
				Decimals:  token.Decimals,
			},
		})
	}
}
