package common

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/child-wallet/internal/api"
	"github/chapool/child-wallet/internal/types"
	"github/chapool/child-wallet/internal/util"
	"github/chapool/child-wallet/internal/wallet/address"
)

func GetChainsRoute(s *api.Server) *echo.Route {
	return s.Router.Root.GET("/api/v1/chains", getChainsHandler(s))
}

func getChainsHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		chains := s.Chains.GetActiveChains()

		resp := &types.GetChainsResponse{
			DefaultChainID: s.Chains.DefaultChainID(),
			Chains:         make([]*types.Chain, 0, len(chains)),
		}
		for _, ch := range chains {
			item := &types.Chain{
				ChainID:      ch.ChainID,
				Name:         ch.Name,
				NativeSymbol: ch.NativeSymbol,
			}
			if ch.Token != nil {
				item.Token = &types.Token{
					Address:  address.ChecksumHex(ch.Token.Address),
					Symbol:   ch.Token.Symbol,
					Decimals: ch.Token.Decimals,
				}
			}
			resp.Chains = append(resp.Chains, item)
		}

		return util.ValidateAndReturn(c, http.StatusOK, resp)
	}
}
