package wallet

import (
	"github.com/labstack/echo/v4"
	"github/chapool/child-wallet/internal/api"
	"github/chapool/child-wallet/internal/types"
	"github/chapool/child-wallet/internal/util"
)

func PostSignTypedDataRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.POST("/sign-typed-data", postSignTypedDataHandler(s))
}

// Typed data signing is not supported yet, the identity answers 501.
func postSignTypedDataHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		var body types.PostSignTypedDataPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		sess, err := currentSession(c, s)
		if err != nil {
			return err
		}

		_, err = sess.Identity.SignTypedData(c.Request().Context(), body.TypedData)
		return err
	}
}
