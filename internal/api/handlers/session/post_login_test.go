package session_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/child-wallet/internal/api"
	"github/chapool/child-wallet/internal/test"
	"github/chapool/child-wallet/internal/types"
	"github/chapool/child-wallet/internal/wallet/keycache"
)

func login(t *testing.T, s *api.Server, owner string, slot uint32) types.LoginResponse {
	t.Helper()

	res := test.PerformRequest(t, s, "POST", "/api/v1/session/login", test.GenericPayload{"slot": slot}, test.OwnerHeaders(owner))
	require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())

	var resp types.LoginResponse
	test.ParseResponseAndValidate(t, res, &resp)
	return resp
}

func TestPostLogin(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		resp := login(t, s, test.TestOwner, 0)

		assert.Equal(t, test.TestOwner, resp.Owner)
		assert.Equal(t, keycache.DefaultSlot, resp.Slot)
		assert.Regexp(t, "^0x[0-9a-fA-F]{40}$", resp.Address)
		assert.False(t, resp.StartedAt.IsZero())

		again := login(t, s, test.TestOwner, 0)
		assert.Equal(t, resp.Address, again.Address)
		assert.Equal(t, resp.StartedAt, again.StartedAt)
	})
}

func TestPostLoginWithoutBody(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/session/login", nil, test.OwnerHeaders(test.TestOwner))
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
	})
}

func TestPostLoginOwnersDiffer(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		first := login(t, s, "owner-a", 0)
		second := login(t, s, "owner-b", 0)
		otherSlot := login(t, s, "owner-a", 7)

		assert.NotEqual(t, first.Address, second.Address)
		assert.NotEqual(t, first.Address, otherSlot.Address)
		assert.Equal(t, uint32(7), otherSlot.Slot)
	})
}

func TestPostLoginMissingOwner(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/session/login", test.GenericPayload{}, nil)
		require.Equal(t, http.StatusUnauthorized, res.Result().StatusCode)

		var resp types.PublicHTTPError
		test.ParseResponseAndValidate(t, res, &resp)
		assert.Equal(t, types.PublicHTTPErrorTypeMissingOwner, resp.Type)
	})
}

func TestPostLoginMalformedBody(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/session/login", test.GenericPayload{"slot": "first"}, test.OwnerHeaders(test.TestOwner))
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)
	})
}

func TestPostLoginSlotOutOfRange(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/session/login", test.GenericPayload{"slot": uint64(keycache.MaxSlot) + 1}, test.OwnerHeaders(test.TestOwner))
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

		var resp types.PublicHTTPError
		test.ParseResponseAndValidate(t, res, &resp)
		assert.Equal(t, types.PublicHTTPErrorTypeInvalidSlot, resp.Type)

		highest := login(t, s, test.TestOwner, keycache.MaxSlot)
		assert.Equal(t, keycache.MaxSlot, highest.Slot)
	})
}

func TestPostLogout(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		login(t, s, test.TestOwner, 0)

		res := test.PerformRequest(t, s, "POST", "/api/v1/session/logout", nil, test.OwnerHeaders(test.TestOwner))
		require.Equal(t, http.StatusNoContent, res.Result().StatusCode)

		res = test.PerformRequest(t, s, "GET", "/api/v1/wallet/address", nil, test.OwnerHeaders(test.TestOwner))
		require.Equal(t, http.StatusUnauthorized, res.Result().StatusCode)

		var resp types.PublicHTTPError
		test.ParseResponseAndValidate(t, res, &resp)
		assert.Equal(t, types.PublicHTTPErrorTypeNoSession, resp.Type)

		res = test.PerformRequest(t, s, "POST", "/api/v1/session/logout", nil, test.OwnerHeaders(test.TestOwner))
		require.Equal(t, http.StatusUnauthorized, res.Result().StatusCode)
	})
}
