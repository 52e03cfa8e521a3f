package util

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/child-wallet/internal/api/httperrors"
	"github/chapool/child-wallet/internal/types"
)

// BindAndValidateBody binds the request body to v and runs its validation.
func BindAndValidateBody(c echo.Context, v types.Validatable) error {
	binder := &echo.DefaultBinder{}
	if err := binder.BindBody(c, v); err != nil {
		LogFromEchoContext(c).Debug().Err(err).Msg("Failed to bind request body")
		return httperrors.NewHTTPErrorWithDetail(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, "Bad Request", "request body could not be parsed")
	}

	return validate(c, v, "Bad Request")
}

// BindAndValidateQueryParams binds the query parameters to v and runs its validation.
func BindAndValidateQueryParams(c echo.Context, v types.Validatable) error {
	binder := &echo.DefaultBinder{}
	if err := binder.BindQueryParams(c, v); err != nil {
		LogFromEchoContext(c).Debug().Err(err).Msg("Failed to bind query params")
		return httperrors.NewHTTPErrorWithDetail(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, "Bad Request", "query parameters could not be parsed")
	}

	return validate(c, v, "Bad Request")
}

// ValidateAndReturn validates the response payload before sending it as JSON.
// An invalid response is a server bug and answered with 500.
func ValidateAndReturn(c echo.Context, code int, v types.Validatable) error {
	if errs := v.Validate(); len(errs) > 0 {
		LogFromEchoContext(c).Error().Int("validation_errors", len(errs)).Msg("Response payload failed validation")
		return httperrors.NewHTTPValidationError(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, "Internal Server Error", errs)
	}

	return c.JSON(code, v)
}

func validate(c echo.Context, v types.Validatable, title string) error {
	errs := v.Validate()
	if len(errs) == 0 {
		return nil
	}

	LogFromEchoContext(c).Debug().Int("validation_errors", len(errs)).Msg("Request payload failed validation")
	return httperrors.NewHTTPValidationError(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, title, errs)
}
