package httperrors

import (
	"fmt"

	"github/chapool/child-wallet/internal/types"
)

// HTTPError is an error carrying the public error response it renders to.
type HTTPError struct {
	types.PublicHTTPError
	Internal       error          `json:"-"`
	AdditionalData map[string]any `json:"-"`
}

type HTTPValidationError struct {
	types.PublicHTTPValidationError
	Internal       error          `json:"-"`
	AdditionalData map[string]any `json:"-"`
}

func NewHTTPError(code int, errorType types.PublicHTTPErrorType, title string) *HTTPError {
	return &HTTPError{
		PublicHTTPError: types.PublicHTTPError{
			Code:  code,
			Title: title,
			Type:  errorType,
		},
	}
}

func NewHTTPErrorWithDetail(code int, errorType types.PublicHTTPErrorType, title string, detail string) *HTTPError {
	err := NewHTTPError(code, errorType, title)
	err.Detail = detail
	return err
}

func (e *HTTPError) Error() string {
	var errorString string
	if len(e.Detail) > 0 {
		errorString = fmt.Sprintf("HTTPError %d (%s): %s - %s", e.Code, e.Type, e.Title, e.Detail)
	} else {
		errorString = fmt.Sprintf("HTTPError %d (%s): %s", e.Code, e.Type, e.Title)
	}

	if e.Internal != nil {
		errorString = fmt.Sprintf("%s, %v", errorString, e.Internal)
	}

	return errorString
}

func (e *HTTPError) Unwrap() error {
	return e.Internal
}

func NewHTTPValidationError(code int, errorType types.PublicHTTPErrorType, title string, validationErrors []*types.HTTPValidationErrorDetail) *HTTPValidationError {
	return &HTTPValidationError{
		PublicHTTPValidationError: types.PublicHTTPValidationError{
			PublicHTTPError: types.PublicHTTPError{
				Code:  code,
				Title: title,
				Type:  errorType,
			},
			ValidationErrors: validationErrors,
		},
	}
}

func (e *HTTPValidationError) Error() string {
	var errorString string
	if len(e.Detail) > 0 {
		errorString = fmt.Sprintf("HTTPValidationError %d (%s): %s - %s", e.Code, e.Type, e.Title, e.Detail)
	} else {
		errorString = fmt.Sprintf("HTTPValidationError %d (%s): %s", e.Code, e.Type, e.Title)
	}

	errorString = fmt.Sprintf("%s - Validation: ", errorString)
	for i, ve := range e.ValidationErrors {
		if i > 0 {
			errorString = fmt.Sprintf("%s, ", errorString)
		}
		errorString = fmt.Sprintf("%s%s (in %s): %s", errorString, ve.Key, ve.In, ve.Error)
	}

	if e.Internal != nil {
		errorString = fmt.Sprintf("%s, %v", errorString, e.Internal)
	}

	return errorString
}

func (e *HTTPValidationError) Unwrap() error {
	return e.Internal
}
