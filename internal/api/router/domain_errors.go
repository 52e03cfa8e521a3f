package router

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"github/chapool/child-wallet/internal/api/httperrors"
	"github/chapool/child-wallet/internal/types"
	"github/chapool/child-wallet/internal/wallet/address"
	"github/chapool/child-wallet/internal/wallet/chain"
	"github/chapool/child-wallet/internal/wallet/keycache"
	"github/chapool/child-wallet/internal/wallet/ledger"
	"github/chapool/child-wallet/internal/wallet/payment"
	"github/chapool/child-wallet/internal/wallet/recovery"
	"github/chapool/child-wallet/internal/wallet/remote"
	"github/chapool/child-wallet/internal/wallet/session"
	"github/chapool/child-wallet/internal/wallet/signer"
	"github/chapool/child-wallet/internal/wallet/transfer"
)

type domainError struct {
	target    error
	code      int
	errorType types.PublicHTTPErrorType
	title     string
}

// ordered: more specific sentinels first
var domainErrors = []domainError{
	{session.ErrEmptyOwner, http.StatusBadRequest, types.PublicHTTPErrorTypeMissingOwner, "Owner identity is empty."},
	{keycache.ErrInvalidSlot, http.StatusBadRequest, types.PublicHTTPErrorTypeInvalidSlot, "The key slot is out of range."},
	{session.ErrNoSession, http.StatusUnauthorized, types.PublicHTTPErrorTypeNoSession, "No active session for this owner."},
	{session.ErrSessionEnded, http.StatusConflict, types.PublicHTTPErrorTypeSessionEnded, "The session ended while the request was running."},
	{signer.ErrNotImplemented, http.StatusNotImplemented, types.PublicHTTPErrorTypeNotImplemented, "Typed data signing is not implemented."},
	{recovery.ErrRecoveryFailed, http.StatusBadGateway, types.PublicHTTPErrorTypeRecoveryFailed, "The signature does not recover to the identity's key."},
	{address.ErrMalformedPublicKey, http.StatusBadGateway, types.PublicHTTPErrorTypeSignerUnavailable, "The signer returned a malformed public key."},
	{remote.ErrSignerUnavailable, http.StatusServiceUnavailable, types.PublicHTTPErrorTypeSignerUnavailable, "The remote signer is unavailable."},
	{payment.ErrMalformedPayload, http.StatusBadRequest, types.PublicHTTPErrorTypeMalformedPayload, "The payment payload is malformed."},
	{payment.ErrMissingField, http.StatusBadRequest, types.PublicHTTPErrorTypeMissingField, "The payment payload misses a field."},
	{address.ErrInvalidAddress, http.StatusBadRequest, types.PublicHTTPErrorTypeInvalidAddress, "The address is invalid."},
	{payment.ErrInvalidAddress, http.StatusBadRequest, types.PublicHTTPErrorTypeInvalidAddress, "The payment payload contains an invalid address."},
	{payment.ErrInvalidAmount, http.StatusBadRequest, types.PublicHTTPErrorTypeInvalidAmount, "The payment payload contains an invalid amount."},
	{payment.ErrUnauthorizedToken, http.StatusForbidden, types.PublicHTTPErrorTypeUnauthorizedToken, "The token is not allowed on this chain."},
	{chain.ErrChainNotFound, http.StatusNotFound, types.PublicHTTPErrorTypeChainNotFound, "The chain is not supported."},
	{chain.ErrTokenNotConfigured, http.StatusUnprocessableEntity, types.PublicHTTPErrorTypeTokenNotConfigured, "No token is configured for this chain."},
	{transfer.ErrChainMismatch, http.StatusBadRequest, types.PublicHTTPErrorTypeChainMismatch, "The payment payload is for another chain."},
	{transfer.ErrTransferReverted, http.StatusUnprocessableEntity, types.PublicHTTPErrorTypeTransferReverted, "The transfer reverted."},
	{ledger.ErrAllNodesDown, http.StatusServiceUnavailable, types.PublicHTTPErrorTypeLedgerUnavailable, "The ledger is unavailable."},
	{ledger.ErrChainMismatch, http.StatusServiceUnavailable, types.PublicHTTPErrorTypeLedgerUnavailable, "The ledger serves another chain."},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, types.PublicHTTPErrorTypeGeneric, "The request timed out."},
}

// DomainHTTPError maps a wallet error to its public HTTP error. It returns nil for
// errors without a mapping.
func DomainHTTPError(err error) *httperrors.HTTPError {
	for _, d := range domainErrors {
		if !errors.Is(err, d.target) {
			continue
		}

		httpErr := httperrors.NewHTTPError(d.code, d.errorType, d.title)
		httpErr.Internal = err

		var fieldErr *payment.FieldError
		if errors.As(err, &fieldErr) {
			httpErr.Detail = fieldErr.Field
		}

		return httpErr
	}

	return nil
}
