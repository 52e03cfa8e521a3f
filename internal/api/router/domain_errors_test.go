package router_test

import (
	"net/http"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/child-wallet/internal/api/router"
	"github/chapool/child-wallet/internal/types"
	"github/chapool/child-wallet/internal/wallet/payment"
	"github/chapool/child-wallet/internal/wallet/recovery"
	"github/chapool/child-wallet/internal/wallet/remote"
	"github/chapool/child-wallet/internal/wallet/session"
	"github/chapool/child-wallet/internal/wallet/signer"
)

func TestDomainHTTPError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		code      int
		errorType types.PublicHTTPErrorType
	}{
		{"unauthorized token", errors.Wrap(payment.ErrUnauthorizedToken, "token 0x01"), http.StatusForbidden, types.PublicHTTPErrorTypeUnauthorizedToken},
		{"recovery", recovery.ErrRecoveryFailed, http.StatusBadGateway, types.PublicHTTPErrorTypeRecoveryFailed},
		{"signer", remote.Unavailable("sign", errors.New("boom")), http.StatusServiceUnavailable, types.PublicHTTPErrorTypeSignerUnavailable},
		{"typed data", signer.ErrNotImplemented, http.StatusNotImplemented, types.PublicHTTPErrorTypeNotImplemented},
		{"session ended", errors.Wrap(session.ErrSessionEnded, "transfer"), http.StatusConflict, types.PublicHTTPErrorTypeSessionEnded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := router.DomainHTTPError(tt.err)
			require.NotNil(t, httpErr)
			assert.Equal(t, tt.code, httpErr.Code)
			assert.Equal(t, tt.errorType, httpErr.Type)
			require.ErrorIs(t, httpErr, tt.err)
		})
	}

	assert.Nil(t, router.DomainHTTPError(errors.New("unknown")))
}

func TestDomainHTTPErrorFieldDetail(t *testing.T) {
	_, err := payment.ParseTransferIntent("ethereum:0x5FbDB2315678afecb367f032d93F642f64180aa3/transfer?address=0x70997970C51812dc3A010C7d01b50e0d17dc79C8", common.Address{})
	require.Error(t, err)

	httpErr := router.DomainHTTPError(err)
	require.NotNil(t, httpErr)
	assert.Equal(t, types.PublicHTTPErrorTypeMissingField, httpErr.Type)
	assert.Equal(t, payment.FieldAmount, httpErr.Detail)
}
