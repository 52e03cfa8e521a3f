package handlers

import (
	"github.com/labstack/echo/v4"
	"github/chapool/child-wallet/internal/api"
	"github/chapool/child-wallet/internal/api/handlers/common"
	"github/chapool/child-wallet/internal/api/handlers/payment"
	"github/chapool/child-wallet/internal/api/handlers/session"
	"github/chapool/child-wallet/internal/api/handlers/wallet"
)

// AttachAllRoutes registers every handler on the server's router groups.
func AttachAllRoutes(s *api.Server) {
	s.Router.Routes = append(s.Router.Routes, []*echo.Route{
		common.GetReadyRoute(s),
		common.GetChainsRoute(s),
		payment.PostParseRoute(s),
		payment.PostTransferRoute(s),
		payment.PostURIRoute(s),
		session.PostLoginRoute(s),
		session.PostLogoutRoute(s),
		wallet.GetAddressRoute(s),
		wallet.GetBalanceRoute(s),
		wallet.PostSignMessageRoute(s),
		wallet.PostSignTypedDataRoute(s),
	}...)
}
