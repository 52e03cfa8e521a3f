package util

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contextKey string

const (
	CTXKeyLogger    contextKey = "logger"
	CTXKeyRequestID contextKey = "request_id"
)

// LogFromContext returns a request-specific zerolog instance using the provided context.
// The returned logger will have the request ID as well as some other value predefined.
// If no logger is associated with the context provided, the global zerolog instance
// will be returned instead - this function will _always_ return a valid (enabled) logger.
// Should you ever need to force a disabled logger for a context, use `util.DisableLogger(ctx, true)`
// and pass the context returned to other code/`LogFromContext`.
func LogFromContext(ctx context.Context) *zerolog.Logger {
	l := log.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		if ShouldDisableLogger(ctx) {
			return l
		}
		l = &log.Logger
	}
	return l
}

// LogFromEchoContext returns a request-specific zerolog instance using the echo.Context of the request.
func LogFromEchoContext(c echo.Context) *zerolog.Logger {
	return LogFromContext(c.Request().Context())
}

// WithLogger attaches l to ctx so LogFromContext returns it.
func WithLogger(ctx context.Context, l zerolog.Logger) context.Context {
	return l.WithContext(ctx)
}

type disableLoggerKey struct{}

// DisableLogger toggles the logger returned by LogFromContext for ctx.
func DisableLogger(ctx context.Context, shouldDisable bool) context.Context {
	return context.WithValue(ctx, disableLoggerKey{}, shouldDisable)
}

func ShouldDisableLogger(ctx context.Context) bool {
	s, ok := ctx.Value(disableLoggerKey{}).(bool)
	if !ok {
		return false
	}

	return s
}

// RequestIDFromContext returns the request ID stored by the request ID middleware.
func RequestIDFromContext(ctx context.Context) (string, error) {
	val := ctx.Value(CTXKeyRequestID)
	if val == nil {
		return "", ErrNotFoundInContext
	}

	id, ok := val.(string)
	if !ok {
		return "", ErrNotFoundInContext
	}

	return id, nil
}
