package test

import (
	"net/http"
	"testing"

	"github/chapool/child-wallet/internal/api"
	"github/chapool/child-wallet/internal/types"
)

// Login opens a session of owner on the default slot through the API.
func Login(t *testing.T, s *api.Server, owner string) types.LoginResponse {
	t.Helper()

	res := PerformRequest(t, s, "POST", "/api/v1/session/login", GenericPayload{}, OwnerHeaders(owner))
	if res.Result().StatusCode != http.StatusOK {
		t.Fatalf("failed to log in %s: %d %s", owner, res.Result().StatusCode, res.Body.String())
	}

	var resp types.LoginResponse
	ParseResponseAndValidate(t, res, &resp)
	return resp
}
