package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github/chapool/child-wallet/internal/util"
)

type LoggerConfig struct {
	Level zerolog.Level
}

// LoggerWithConfig attaches a request scoped logger to the request context and
// logs every finished request at the configured level.
func LoggerWithConfig(config LoggerConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			start := time.Now()

			l := log.With().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Logger()
			if id, err := util.RequestIDFromContext(req.Context()); err == nil {
				l = l.With().Str("id", id).Logger()
			}

			c.SetRequest(req.WithContext(util.WithLogger(req.Context(), l)))

			err := next(c)
			if err != nil {
				// the error handler sets the final status
				c.Error(err)
			}

			res := c.Response()
			l.WithLevel(config.Level).
				Int("status", res.Status).
				Int64("bytes_out", res.Size).
				Dur("duration", time.Since(start)).
				Msg("http_request")

			return nil
		}
	}
}
