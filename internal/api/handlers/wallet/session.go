package wallet

import (
	"github.com/labstack/echo/v4"
	"github/chapool/child-wallet/internal/api"
	"github/chapool/child-wallet/internal/auth"
	"github/chapool/child-wallet/internal/wallet/session"
)

func currentSession(c echo.Context, s *api.Server) (*session.Session, error) {
	return s.Sessions.Get(auth.OwnerFromContext(c.Request().Context()))
}
