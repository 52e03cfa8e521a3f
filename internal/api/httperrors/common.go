package httperrors

import (
	"net/http"

	"github/chapool/child-wallet/internal/types"
)

var (
	ErrMissingOwner = NewHTTPError(http.StatusUnauthorized, types.PublicHTTPErrorTypeMissingOwner, "Owner identity header is missing.")
	ErrBadRequest   = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, "Bad Request")
)
