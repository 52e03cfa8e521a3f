package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/child-wallet/internal/api"
	"github/chapool/child-wallet/internal/api/router"
	"github/chapool/child-wallet/internal/config"
	"github/chapool/child-wallet/internal/data/migrations"
	"github/chapool/child-wallet/internal/util/command"
)

const (
	migrateFlag     = "migrate"
	shutdownTimeout = 30 * time.Second
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Starts the server",
		Long: `Starts the signing gateway

Requires configuration through ENV.`,
		Run: func(cmd *cobra.Command, _ []string) {
			migrate, err := cmd.Flags().GetBool(migrateFlag)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to read migrate flag")
			}

			runServer(migrate)
		},
	}

	cmd.Flags().BoolP(migrateFlag, "m", false, "Apply key store migrations before starting the server")

	return cmd
}

func runServer(migrate bool) {
	cfg := config.DefaultServiceConfigFromEnv()
	command.ConfigureLogger(cfg)

	if cfg.Signer.Mode == config.SignerModeDev && cfg.Signer.DevPromptPassword {
		if cfg.Signer.DevKeystoreFile != "" {
			password, err := command.PromptPassword("Development signer keystore password: ")
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to read development signer keystore password")
			}
			cfg.Signer.DevKeystorePassword = password
		} else {
			passphrase, err := command.PromptPassword("Development signer passphrase: ")
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to read development signer passphrase")
			}
			cfg.Signer.DevPassphrase = passphrase
		}
	}

	s, err := api.InitNewServer(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize server")
	}

	if migrate && s.DB != nil {
		n, err := migrations.Up(s.DB, cfg.Database.MigrationsTable)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to apply migrations")
		}
		log.Info().Int("applied", n).Msg("Applied migrations")
	}

	router.Init(s)

	go func() {
		if err := s.Start(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				log.Info().Msg("Server closed")
			} else {
				log.Fatal().Err(err).Msg("Failed to start server")
			}
		}
	}()

	log.Info().
		Str("listen_address", cfg.Echo.ListenAddress).
		Str("signer_mode", cfg.Signer.Mode).
		Str("keystore", cfg.KeyStore.Backend).
		Uint64("default_chain_id", s.Chains.DefaultChainID()).
		Msg("Server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if errs := s.Shutdown(ctx); len(errs) > 0 {
		log.Fatal().Errs("shutdownErrors", errs).Msg("Failed to gracefully shut down server")
	}
}
