package types

// PublicHTTPErrorType is the machine readable "type" of an error response.
type PublicHTTPErrorType string

const (
	PublicHTTPErrorTypeGeneric            PublicHTTPErrorType = "generic"
	PublicHTTPErrorTypeMissingOwner       PublicHTTPErrorType = "MISSING_OWNER"
	PublicHTTPErrorTypeNoSession          PublicHTTPErrorType = "NO_SESSION"
	PublicHTTPErrorTypeSessionEnded       PublicHTTPErrorType = "SESSION_ENDED"
	PublicHTTPErrorTypeSignerUnavailable  PublicHTTPErrorType = "SIGNER_UNAVAILABLE"
	PublicHTTPErrorTypeRecoveryFailed     PublicHTTPErrorType = "RECOVERY_FAILED"
	PublicHTTPErrorTypeNotImplemented     PublicHTTPErrorType = "NOT_IMPLEMENTED"
	PublicHTTPErrorTypeMalformedPayload   PublicHTTPErrorType = "MALFORMED_PAYLOAD"
	PublicHTTPErrorTypeMissingField       PublicHTTPErrorType = "MISSING_FIELD"
	PublicHTTPErrorTypeInvalidAddress     PublicHTTPErrorType = "INVALID_ADDRESS"
	PublicHTTPErrorTypeInvalidAmount      PublicHTTPErrorType = "INVALID_AMOUNT"
	PublicHTTPErrorTypeUnauthorizedToken  PublicHTTPErrorType = "UNAUTHORIZED_TOKEN"
	PublicHTTPErrorTypeChainNotFound      PublicHTTPErrorType = "CHAIN_NOT_FOUND"
	PublicHTTPErrorTypeTokenNotConfigured PublicHTTPErrorType = "TOKEN_NOT_CONFIGURED"
	PublicHTTPErrorTypeChainMismatch      PublicHTTPErrorType = "CHAIN_MISMATCH"
	PublicHTTPErrorTypeTransferReverted   PublicHTTPErrorType = "TRANSFER_REVERTED"
	PublicHTTPErrorTypeLedgerUnavailable  PublicHTTPErrorType = "LEDGER_UNAVAILABLE"
	PublicHTTPErrorTypeInvalidSlot        PublicHTTPErrorType = "INVALID_SLOT"
)

// PublicHTTPError is the body of every error response.
type PublicHTTPError struct {
	Code   int                 `json:"status"`
	Detail string              `json:"detail,omitempty"`
	Title  string              `json:"title"`
	Type   PublicHTTPErrorType `json:"type"`
}

type HTTPValidationErrorDetail struct {
	Key   string `json:"key"`
	In    string `json:"in"`
	Error string `json:"error"`
}

type PublicHTTPValidationError struct {
	PublicHTTPError
	ValidationErrors []*HTTPValidationErrorDetail `json:"validationErrors"`
}

// Validatable is implemented by request and response bodies that check their own fields.
type Validatable interface {
	Validate() []*HTTPValidationErrorDetail
}

func bodyError(key string, msg string) *HTTPValidationErrorDetail {
	return &HTTPValidationErrorDetail{Key: key, In: "body", Error: msg}
}
