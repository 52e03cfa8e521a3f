package common

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/child-wallet/internal/api"
)

// statusNotReady is the non-standard "web server is down" code load balancers treat as unhealthy.
const statusNotReady = 521

func GetReadyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/ready", getReadyHandler(s))
}

// Returns "Ready." once every server component is initialized and the database answers.
func getReadyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !s.Ready() {
			return c.String(statusNotReady, "Not ready.")
		}

		return c.String(http.StatusOK, "Ready.")
	}
}
