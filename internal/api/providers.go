package api

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/dropbox/godropbox/time2"
	"github.com/rs/zerolog/log"
	"github/chapool/child-wallet/internal/config"
	"github/chapool/child-wallet/internal/metrics"
	"github/chapool/child-wallet/internal/wallet/address"
	"github/chapool/child-wallet/internal/wallet/chain"
	"github/chapool/child-wallet/internal/wallet/keycache"
	"github/chapool/child-wallet/internal/wallet/keystore"
	"github/chapool/child-wallet/internal/wallet/ledger"
	"github/chapool/child-wallet/internal/wallet/remote"
	"github/chapool/child-wallet/internal/wallet/remote/devsigner"
	"github/chapool/child-wallet/internal/wallet/remote/httpsigner"
	"github/chapool/child-wallet/internal/wallet/session"
	"github/chapool/child-wallet/internal/wallet/signer"
	"github/chapool/child-wallet/internal/wallet/transfer"
)

// PROVIDERS - define here only providers that for various reasons (e.g. cyclic dependency) can't live in their corresponding packages
// or for wrapping providers that only accept sub-configs to prevent the requirements for defining providers for sub-configs.
// https://github.com/google/wire/blob/main/docs/guide.md#defining-providers

func NewClock(t ...*testing.T) time2.Clock {
	var clock time2.Clock

	useMock := len(t) > 0 && t[0] != nil

	if useMock {
		clock = time2.NewMockClock(time.Now())
	} else {
		clock = time2.DefaultClock
	}

	return clock
}

// NewDB opens the postgres pool. Without the postgres key store no database is used and nil is returned.
func NewDB(cfg config.Server) (*sql.DB, error) {
	if cfg.KeyStore.Backend != config.KeyStorePostgres {
		return nil, nil //nolint:nilnil
	}

	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

func NoTest() []*testing.T {
	return nil
}

func NewMetrics(db *sql.DB) (*metrics.Service, error) {
	return metrics.New(db)
}

// Wallet providers

//nolint:ireturn // returning interface is intentional for abstraction
func NewChains(cfg config.Server) (chain.Service, error) {
	return chain.NewServiceFromConfig(cfg.Chains)
}

//nolint:ireturn // returning interface is intentional for abstraction
func NewLedgers(cfg config.Server, chains chain.Service) ledger.Provider {
	return ledger.NewPool(chains, cfg.Ledger.ReceiptPollInterval)
}

// NewRemoteSigner creates the signer the identities delegate to, based on configuration.
//
//nolint:ireturn // returning interface is intentional for abstraction
func NewRemoteSigner(cfg config.Server) (remote.Signer, error) {
	switch cfg.Signer.Mode {
	case config.SignerModeHTTP:
		return httpsigner.NewClient(cfg.Signer.BaseURL, cfg.Signer.Token, nil, cfg.Signer.Timeout), nil
	case config.SignerModeDev:
		log.Warn().Msg("Initializing development signer, never use it in production")

		mnemonic, err := devMnemonic(cfg.Signer)
		if err != nil {
			return nil, err
		}

		dev, err := devsigner.New(mnemonic, cfg.Signer.DevPassphrase)
		if err != nil {
			return nil, fmt.Errorf("failed to create development signer: %w", err)
		}

		if cfg.Signer.DevExpectedAddress != "" {
			expected, err := address.ParseAddress(cfg.Signer.DevExpectedAddress)
			if err != nil {
				dev.Close()
				return nil, fmt.Errorf("invalid expected address: %w", err)
			}

			ok, err := dev.VerifyExpectedAddress(context.Background(), expected)
			if err != nil {
				dev.Close()
				return nil, err
			}
			if !ok {
				dev.Close()
				return nil, fmt.Errorf("development signer does not derive %s, check mnemonic and passphrase", expected.Hex())
			}
		}

		return dev, nil
	default:
		return nil, fmt.Errorf("unsupported signer mode: %s", cfg.Signer.Mode)
	}
}

func devMnemonic(cfg config.Signer) (string, error) {
	if cfg.DevKeystoreFile == "" {
		return cfg.DevMnemonic, nil
	}
	if cfg.DevMnemonic != "" {
		return "", fmt.Errorf("set either SIGNER_DEV_MNEMONIC or SIGNER_DEV_KEYSTORE_FILE, not both")
	}

	mnemonic, err := keystore.LoadMnemonic(cfg.DevKeystoreFile, cfg.DevKeystorePassword)
	if err != nil {
		return "", fmt.Errorf("failed to open development signer keystore: %w", err)
	}

	return mnemonic, nil
}

// NewKeyStore creates the persistence layer of the key material cache based on configuration.
//
//nolint:ireturn // returning interface is intentional for abstraction
func NewKeyStore(cfg config.Server, db *sql.DB) (keycache.Store, error) {
	switch cfg.KeyStore.Backend {
	case config.KeyStoreMemory:
		return keycache.NewMemoryStore(), nil
	case config.KeyStoreFile:
		return keycache.NewFileStore(cfg.KeyStore.Dir), nil
	case config.KeyStorePostgres:
		if db == nil {
			return nil, fmt.Errorf("postgres key store requires a database")
		}
		return keycache.NewPostgresStore(db), nil
	default:
		return nil, fmt.Errorf("unsupported key store backend: %s", cfg.KeyStore.Backend)
	}
}

//nolint:ireturn // returning interface is intentional for abstraction
func NewKeyCache(remoteSigner remote.Signer, store keycache.Store, clock time2.Clock, m *metrics.Service) keycache.Service {
	return keycache.NewService(remoteSigner, store, clock, m)
}

//nolint:ireturn // returning interface is intentional for abstraction
func NewIdentities(keys keycache.Service, remoteSigner remote.Signer, m *metrics.Service) signer.Service {
	return signer.NewService(keys, remoteSigner, m)
}

//nolint:ireturn // returning interface is intentional for abstraction
func NewSessions(identities signer.Service, clock time2.Clock) session.Manager {
	return session.NewManager(identities, clock)
}

//nolint:ireturn // returning interface is intentional for abstraction
func NewTransfers(
	cfg config.Server,
	chains chain.Service,
	ledgers ledger.Provider,
	sessions session.Manager,
	m *metrics.Service,
) transfer.Service {
	return transfer.NewService(chains, ledgers, sessions, cfg.Ledger, m)
}
