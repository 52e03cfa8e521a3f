package middleware

import (
	"github.com/labstack/echo/v4"
	"github/chapool/child-wallet/internal/api/httperrors"
	"github/chapool/child-wallet/internal/auth"
	"github/chapool/child-wallet/internal/util"
)

// RequireOwner rejects requests without an owner identity header and stores
// the owner in the request context.
func RequireOwner() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			owner := auth.NormalizeOwner(c.Request().Header.Get(auth.HeaderOwnerIdentity))
			if owner == "" {
				return httperrors.ErrMissingOwner
			}

			ctx := auth.WithOwner(c.Request().Context(), owner)
			l := util.LogFromContext(ctx).With().Str("owner", owner).Logger()
			c.SetRequest(c.Request().WithContext(util.WithLogger(ctx, l)))

			return next(c)
		}
	}
}
