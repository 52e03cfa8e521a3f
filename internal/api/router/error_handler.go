package router

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github/chapool/child-wallet/internal/api/httperrors"
	"github/chapool/child-wallet/internal/types"
	"github/chapool/child-wallet/internal/util"
)

// HTTPErrorHandler renders every error returned by a handler as a public error body.
// Wallet errors are mapped by DomainHTTPError, everything unknown becomes a 500.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code, body := render(err)

	log := util.LogFromEchoContext(c)
	if code >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", code).Msg("Request failed")
	} else {
		log.Debug().Err(err).Int("status", code).Msg("Request rejected")
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, body)
	}
	if err != nil {
		log.Warn().Err(err).Msg("Failed to send error response")
	}
}

func render(err error) (int, any) {
	var validationErr *httperrors.HTTPValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Code, validationErr.PublicHTTPValidationError
	}

	var httpErr *httperrors.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, httpErr.PublicHTTPError
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		title := http.StatusText(echoErr.Code)
		if msg, ok := echoErr.Message.(string); ok && msg != "" {
			title = msg
		} else if echoErr.Message != nil {
			title = fmt.Sprint(echoErr.Message)
		}

		return echoErr.Code, types.PublicHTTPError{
			Code:  echoErr.Code,
			Title: title,
			Type:  types.PublicHTTPErrorTypeGeneric,
		}
	}

	if domainErr := DomainHTTPError(err); domainErr != nil {
		return domainErr.Code, domainErr.PublicHTTPError
	}

	return http.StatusInternalServerError, types.PublicHTTPError{
		Code:  http.StatusInternalServerError,
		Title: http.StatusText(http.StatusInternalServerError),
		Type:  types.PublicHTTPErrorTypeGeneric,
	}
}
