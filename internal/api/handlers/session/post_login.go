package session

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/child-wallet/internal/api"
	"github/chapool/child-wallet/internal/auth"
	"github/chapool/child-wallet/internal/types"
	"github/chapool/child-wallet/internal/util"
	"github/chapool/child-wallet/internal/wallet/address"
)

func PostLoginRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Session.POST("/login", postLoginHandler(s))
}

// Opens the owner's session and resolves its address. Logging in again with
// the same slot returns the running session.
func postLoginHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		owner := auth.OwnerFromContext(ctx)

		var body types.PostLoginPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		sess, err := s.Sessions.Login(ctx, owner, body.Slot)
		if err != nil {
			util.LogFromContext(ctx).Debug().Err(err).Msg("Failed to log in")
			return err
		}

		addr, err := sess.Identity.Address(ctx)
		if err != nil {
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, &types.LoginResponse{
			Owner:     sess.Owner,
			Slot:      sess.Slot,
			Address:   address.ChecksumHex(addr),
			StartedAt: sess.StartedAt,
		})
	}
}
