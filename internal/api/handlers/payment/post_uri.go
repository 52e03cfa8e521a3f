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
)

func PostURIRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Payment.POST("/uri", postURIHandler(s))
}

// Builds the QR payload requesting amount of the chain's token for receiver.
func postURIHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		var body types.PostPaymentURIPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		chainID := chainOrDefault(s, body.ChainID)
		token, err := s.Chains.AllowedToken(chainID)
		if err != nil {
			return err
		}

		receiver, err := address.ParseAddress(body.Receiver)
		if err != nil {
			return err
		}

		raw, err := payment.ParseUnits(body.Amount, token.Decimals)
		if err != nil {
			return &payment.FieldError{Field: payment.FieldAmount, Err: err}
		}
		if raw.Sign() <= 0 {
			return &payment.FieldError{Field: payment.FieldAmount, Err: errors.Wrap(payment.ErrInvalidAmount, "amount must be positive")}
		}

		uri := payment.BuildTransferURI(token.Address, receiver, raw.String())

		return util.ValidateAndReturn(c, http.StatusOK, &types.PaymentURIResponse{
			ChainID:    chainID,
			URI:        uri,
			QRImageURL: payment.BuildQRImageURL(uri),
			RawAmount:  raw.String(),
		})
	}
}

func chainOrDefault(s *api.Server, chainID uint64) uint64 {
	if chainID == 0 {
		return s.Chains.DefaultChainID()
	}
	return chainID
}
