package session

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/child-wallet/internal/api"
	"github/chapool/child-wallet/internal/auth"
)

func PostLogoutRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Session.POST("/logout", postLogoutHandler(s))
}

func postLogoutHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		if err := s.Sessions.Logout(ctx, auth.OwnerFromContext(ctx)); err != nil {
			return err
		}

		return c.NoContent(http.StatusNoContent)
	}
}
