package probe

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/child-wallet/internal/api"
	"github/chapool/child-wallet/internal/config"
	"github/chapool/child-wallet/internal/util/command"
)

var errNotReady = errors.New("server is not ready")

func newReadiness() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "readiness",
		Short: "Runs readiness probes",
		Long: `Initializes every server component (signer, key store, database)
and exits non-zero if one of them is not usable.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			verbose, _ := cmd.Flags().GetBool(verboseFlag)

			cfg := config.DefaultServiceConfigFromEnv()
			return command.WithServer(cmd.Context(), cfg, func(_ context.Context, s *api.Server) error {
				if !s.Ready() {
					return errNotReady
				}

				if verbose {
					log.Info().Msg("Readiness probe succeeded")
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Ready.")
				return nil
			})
		},
	}

	cmd.Flags().BoolP(verboseFlag, "v", false, "Show verbose output.")

	return cmd
}
