package test

import (
	"context"
	"database/sql"
	"testing"

	"github/chapool/child-wallet/internal/api"
	"github/chapool/child-wallet/internal/api/router"
	"github/chapool/child-wallet/internal/config"
	"github/chapool/child-wallet/internal/wallet/transfer"
)

// WithTestServer runs closure with a fully initialized in-memory server whose
// ledger is a FakeLedger of the default chain, see LedgerOf.
func WithTestServer(t *testing.T, closure func(s *api.Server)) {
	t.Helper()

	WithTestServerConfigurable(t, DefaultTestConfig(), closure)
}

// WithTestServerConfigurable is WithTestServer with a custom config.
func WithTestServerConfigurable(t *testing.T, cfg config.Server, closure func(s *api.Server)) {
	t.Helper()

	execClosureNewTestServer(context.Background(), t, cfg, nil, closure)
}

// WithTestServerDB runs closure with a server backed by the postgres key store.
// The test is skipped without TEST_DATABASE_URL.
func WithTestServerDB(t *testing.T, closure func(s *api.Server)) {
	t.Helper()

	WithTestDatabase(t, func(db *sql.DB) {
		cfg := DefaultTestConfig()
		cfg.KeyStore.Backend = config.KeyStorePostgres

		execClosureNewTestServer(context.Background(), t, cfg, db, closure)
	})
}

// LedgerOf returns the FakeLedger installed by WithTestServer.
func LedgerOf(t *testing.T, s *api.Server) *FakeLedger {
	t.Helper()

	l, ok := s.Ledgers.(*FakeLedger)
	if !ok {
		t.Fatalf("server ledger is %T, not *test.FakeLedger", s.Ledgers)
	}
	return l
}

func execClosureNewTestServer(ctx context.Context, t *testing.T, cfg config.Server, db *sql.DB, closure func(s *api.Server)) {
	t.Helper()

	s, err := api.InitNewServerWithDB(cfg, db, t)
	if err != nil {
		t.Fatalf("failed to init server: %v", err)
	}

	fakeLedger := NewFakeLedger(s.Chains.DefaultChainID())
	s.Ledgers = fakeLedger
	s.Transfers = transfer.NewService(s.Chains, fakeLedger, s.Sessions, cfg.Ledger, s.Metrics)

	router.Init(s)

	closure(s)

	// the database belongs to the caller
	s.DB = nil
	if errs := s.Shutdown(ctx); len(errs) > 0 {
		t.Fatalf("failed to shutdown server: %v", errs)
	}
}
