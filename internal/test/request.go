package test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github/chapool/child-wallet/internal/api"
	"github/chapool/child-wallet/internal/auth"
)

type GenericPayload map[string]any

func (g GenericPayload) Reader(t *testing.T) *bytes.Reader {
	t.Helper()

	b, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("failed to serialize payload: %v", err)
	}

	return bytes.NewReader(b)
}

// PerformRequest sends a request against the server's echo instance. body is
// serialized to JSON unless it is nil.
func PerformRequest(t *testing.T, s *api.Server, method string, path string, body GenericPayload, headers http.Header) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		reader = body.Reader(t)
	}

	req := httptest.NewRequest(method, path, reader)
	if headers != nil {
		req.Header = headers
	}
	if body != nil && req.Header.Get(echo.HeaderContentType) == "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	res := httptest.NewRecorder()
	s.Echo.ServeHTTP(res, req)

	return res
}

// OwnerHeaders returns request headers naming owner.
func OwnerHeaders(owner string) http.Header {
	h := http.Header{}
	h.Set(auth.HeaderOwnerIdentity, owner)
	return h
}

// ParseResponseAndValidate decodes the JSON response body into v.
func ParseResponseAndValidate(t *testing.T, res *httptest.ResponseRecorder, v any) {
	t.Helper()

	if err := json.NewDecoder(res.Result().Body).Decode(v); err != nil {
		t.Fatalf("failed to parse response body %q: %v", res.Body.String(), err)
	}
}
