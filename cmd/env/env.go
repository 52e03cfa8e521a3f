package env

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/child-wallet/internal/config"
)

const redacted = "<redacted>"

func New() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Prints the env",
		Long: `Prints the currently applied env

Secrets are redacted.`,
		Run: func(cmd *cobra.Command, _ []string) {
			cfg := config.DefaultServiceConfigFromEnv()

			c, err := json.MarshalIndent(redact(cfg), "", "  ")
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to marshal the env")
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(c))
		},
	}
}

func redact(cfg config.Server) config.Server {
	if cfg.Signer.Token != "" {
		cfg.Signer.Token = redacted
	}
	if cfg.Signer.DevMnemonic != "" {
		cfg.Signer.DevMnemonic = redacted
	}
	if cfg.Signer.DevPassphrase != "" {
		cfg.Signer.DevPassphrase = redacted
	}
	if cfg.Database.DSN != "" {
		cfg.Database.DSN = redacted
	}
	return cfg
}
