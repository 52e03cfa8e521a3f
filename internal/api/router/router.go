package router

import (
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github/chapool/child-wallet/internal/api"
	"github/chapool/child-wallet/internal/api/handlers"
	"github/chapool/child-wallet/internal/api/middleware"
)

func Init(s *api.Server) {
	s.Echo = echo.New()

	s.Echo.Debug = s.Config.Echo.Debug
	s.Echo.HideBanner = true
	s.Echo.HidePort = true
	s.Echo.HTTPErrorHandler = HTTPErrorHandler

	s.Echo.Pre(echoMiddleware.RemoveTrailingSlash())

	s.Echo.Use(echoMiddleware.Recover())
	s.Echo.Use(middleware.RequestID())
	s.Echo.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Level: s.Config.Logger.RequestLevel,
	}))
	s.Echo.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  s.Metrics.Namespace,
		Registerer: s.Metrics.Registry,
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Path(), "/-/")
		},
	}))

	s.Router = &api.Router{
		Routes: nil, // will be populated by handlers.AttachAllRoutes(s)

		// Unsecured base group available at /**
		Root: s.Echo.Group(""),

		// Management endpoints, available at /-/**
		Management: s.Echo.Group("/-"),

		// Owner scoped endpoints, available at /api/v1/session/** and /api/v1/wallet/**
		APIV1Session: s.Echo.Group("/api/v1/session", middleware.RequireOwner()),
		APIV1Wallet:  s.Echo.Group("/api/v1/wallet", middleware.RequireOwner()),

		// Payment payload endpoints, transfer adds the owner middleware itself
		APIV1Payment: s.Echo.Group("/api/v1/payment"),
	}

	s.Router.Routes = append(s.Router.Routes,
		s.Router.Management.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
			Gatherer: s.Metrics.Registry,
		})),
	)

	// ---
	// Finally attach our handlers
	handlers.AttachAllRoutes(s)
}
