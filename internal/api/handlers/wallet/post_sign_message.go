package wallet

import (
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/labstack/echo/v4"
	"github/chapool/child-wallet/internal/api"
	"github/chapool/child-wallet/internal/api/httperrors"
	"github/chapool/child-wallet/internal/types"
	"github/chapool/child-wallet/internal/util"
	"github/chapool/child-wallet/internal/wallet/address"
)

func PostSignMessageRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.POST("/sign-message", postSignMessageHandler(s))
}

// Signs an EIP-191 personal message with the session's identity.
func postSignMessageHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body types.PostSignMessagePayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		msg := []byte(body.Message)
		if strings.ToLower(body.Encoding) == types.MessageEncodingHex {
			decoded, err := hexutil.Decode(body.Message)
			if err != nil {
				return httperrors.NewHTTPValidationError(
					http.StatusBadRequest,
					types.PublicHTTPErrorTypeGeneric,
					"Invalid message format",
					[]*types.HTTPValidationErrorDetail{
						{Key: "message", In: "body", Error: "must be 0x prefixed hex"},
					},
				)
			}
			msg = decoded
		}

		sess, err := currentSession(c, s)
		if err != nil {
			return err
		}

		sig, err := sess.Identity.SignMessage(ctx, msg)
		if err != nil {
			util.LogFromContext(ctx).Error().Err(err).Msg("Failed to sign message")
			return err
		}

		if err := s.Sessions.Check(sess); err != nil {
			return err
		}

		addr, err := sess.Identity.Address(ctx)
		if err != nil {
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, &types.SignatureResponse{
			Address:   address.ChecksumHex(addr),
			Signature: sig.Hex(),
			R:         hexutil.Encode(sig.R[:]),
			S:         hexutil.Encode(sig.S[:]),
			V:         sig.V,
		})
	}
}
