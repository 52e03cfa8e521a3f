package api

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dropbox/godropbox/time2"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github/chapool/child-wallet/internal/config"
	"github/chapool/child-wallet/internal/metrics"
	"github/chapool/child-wallet/internal/util"
	"github/chapool/child-wallet/internal/wallet/chain"
	"github/chapool/child-wallet/internal/wallet/keycache"
	"github/chapool/child-wallet/internal/wallet/ledger"
	"github/chapool/child-wallet/internal/wallet/remote"
	"github/chapool/child-wallet/internal/wallet/session"
	"github/chapool/child-wallet/internal/wallet/signer"
	"github/chapool/child-wallet/internal/wallet/transfer"

	// Import postgres driver for database/sql package
	_ "github.com/lib/pq"
)

const readyPingTimeout = time.Second

type Router struct {
	Routes       []*echo.Route
	Root         *echo.Group
	Management   *echo.Group
	APIV1Session *echo.Group
	APIV1Wallet  *echo.Group
	APIV1Payment *echo.Group
}

// Server is a central struct keeping all the dependencies.
// It is initialized with wire, which handles making the new instances of the components
// in the right order. To add a new component, 3 steps are required:
// - declaring it in this struct
// - adding a provider function in providers.go
// - adding the provider's function name to the arguments of wire.Build() in wire.go
//
// Components labeled as `wire:"-"` will be skipped and have to be initialized after the InitNewServer* call.
// For more information about wire refer to https://pkg.go.dev/github.com/google/wire
type Server struct {
	// skip wire:
	// -> initialized with router.Init(s) function
	Echo   *echo.Echo `wire:"-"`
	Router *Router    `wire:"-"`

	Config config.Server
	// DB is only opened for the postgres key store.
	DB         *sql.DB `ready:"optional"`
	Clock      time2.Clock
	Metrics    *metrics.Service
	Chains     chain.Service
	Ledgers    ledger.Provider
	Signer     remote.Signer
	Keys       keycache.Service
	Identities signer.Service
	Sessions   session.Manager
	Transfers  transfer.Service
}

// newServerWithComponents is used by wire to initialize the server components.
// Components not listed here won't be handled by wire and should be initialized separately.
// Components which shouldn't be handled must be labeled `wire:"-"` in Server struct.
func newServerWithComponents(
	cfg config.Server,
	db *sql.DB,
	clock time2.Clock,
	metrics *metrics.Service,
	chains chain.Service,
	ledgers ledger.Provider,
	remoteSigner remote.Signer,
	keys keycache.Service,
	identities signer.Service,
	sessions session.Manager,
	transfers transfer.Service,
) *Server {
	return &Server{
		Config:     cfg,
		DB:         db,
		Clock:      clock,
		Metrics:    metrics,
		Chains:     chains,
		Ledgers:    ledgers,
		Signer:     remoteSigner,
		Keys:       keys,
		Identities: identities,
		Sessions:   sessions,
		Transfers:  transfers,
	}
}

func NewServer(config config.Server) *Server {
	s := &Server{
		Config: config,
	}

	return s
}

func (s *Server) Ready() bool {
	if err := util.IsStructInitialized(s); err != nil {
		log.Debug().Err(err).Msg("Server is not fully initialized")
		return false
	}

	if s.DB != nil {
		ctx, cancel := context.WithTimeout(context.Background(), readyPingTimeout)
		defer cancel()

		if err := s.DB.PingContext(ctx); err != nil {
			log.Debug().Err(err).Msg("Database is not reachable")
			return false
		}
	}

	return true
}

func (s *Server) Start() error {
	if !s.Ready() {
		return errors.New("server is not ready")
	}

	if err := s.Echo.Start(s.Config.Echo.ListenAddress); err != nil {
		return fmt.Errorf("failed to start echo server: %w", err)
	}

	return nil
}

type closer interface {
	Close()
}

func (s *Server) Shutdown(ctx context.Context) []error {
	log.Warn().Msg("Shutting down server")

	var errs []error

	if s.Echo != nil {
		log.Debug().Msg("Shutting down echo server")

		if err := s.Echo.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Failed to shutdown echo server")
			errs = append(errs, err)
		}
	}

	if c, ok := s.Ledgers.(closer); ok {
		log.Debug().Msg("Closing ledger clients")
		c.Close()
	}

	if c, ok := s.Signer.(closer); ok {
		log.Debug().Msg("Closing signer")
		c.Close()
	}

	if s.DB != nil {
		log.Debug().Msg("Closing database connection")

		if err := s.DB.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
			log.Error().Err(err).Msg("Failed to close database connection")
			errs = append(errs, err)
		}
	}

	return errs
}
