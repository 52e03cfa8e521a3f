package wallet

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/labstack/echo/v4"
	"github/chapool/child-wallet/internal/api"
	"github/chapool/child-wallet/internal/types"
	"github/chapool/child-wallet/internal/util"
	"github/chapool/child-wallet/internal/wallet/address"
)

func GetAddressRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.GET("/address", getAddressHandler(s))
}

func getAddressHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		sess, err := currentSession(c, s)
		if err != nil {
			return err
		}

		rec, err := s.Keys.Resolve(ctx, sess.Owner, sess.Slot)
		if err != nil {
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, &types.GetWalletAddressResponse{
			Owner:     sess.Owner,
			Slot:      sess.Slot,
			Address:   address.ChecksumHex(rec.Address),
			PublicKey: hexutil.Encode(rec.PublicKey[:]),
		})
	}
}
