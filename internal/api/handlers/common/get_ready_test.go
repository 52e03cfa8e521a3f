package common_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github/chapool/child-wallet/internal/api"
	"github/chapool/child-wallet/internal/test"
)

func TestGetReadyReadiness(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/-/ready", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
		require.Equal(t, "Ready.", res.Body.String())
	})
}

func TestGetReadyReadinessBroken(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		// forcefully remove an initialized component to check if ready state works
		s.Keys = nil

		res := test.PerformRequest(t, s, "GET", "/-/ready", nil, nil)
		require.Equal(t, 521, res.Result().StatusCode)
		require.Equal(t, "Not ready.", res.Body.String())
	})
}

func TestGetReadyWithoutDatabase(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		require.Nil(t, s.DB)

		res := test.PerformRequest(t, s, "GET", "/-/ready", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
	})
}

func TestGetMetrics(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/api/v1/chains", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		res = test.PerformRequest(t, s, "GET", "/-/metrics", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
		require.Contains(t, res.Body.String(), "requests_total")
		require.Contains(t, res.Body.String(), "go_goroutines")
	})
}
