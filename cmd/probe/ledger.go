package probe

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github/chapool/child-wallet/internal/api"
	"github/chapool/child-wallet/internal/config"
	"github/chapool/child-wallet/internal/util/command"
)

const (
	chainIDFlag   = "chain-id"
	ledgerTimeout = 10 * time.Second
)

func newLedger() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Checks the RPC nodes of a chain",
		Long: `Connects to the RPC nodes of a chain, verifies the chain id they serve
and prints the latest base fee.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			chainID, _ := cmd.Flags().GetUint64(chainIDFlag)
			verbose, _ := cmd.Flags().GetBool(verboseFlag)

			cfg := config.DefaultServiceConfigFromEnv()
			return command.WithServer(cmd.Context(), cfg, func(ctx context.Context, s *api.Server) error {
				if chainID == 0 {
					chainID = s.Chains.DefaultChainID()
				}

				ctx, cancel := context.WithTimeout(ctx, ledgerTimeout)
				defer cancel()

				client, err := s.Ledgers.Client(ctx, chainID)
				if err != nil {
					return err
				}

				baseFee, err := client.LatestBaseFee(ctx)
				if err != nil {
					return err
				}

				if verbose {
					c, err := s.Chains.GetChain(chainID)
					if err == nil {
						fmt.Fprintf(cmd.OutOrStdout(), "nodes:    %v\n", c.RPCURLs)
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "chain:    %d\nbase fee: %s wei\n", chainID, baseFee.String())
				return nil
			})
		},
	}

	cmd.Flags().Uint64(chainIDFlag, 0, "Chain id, defaults to CHAINS_DEFAULT_CHAIN_ID")
	cmd.Flags().BoolP(verboseFlag, "v", false, "Show verbose output.")

	return cmd
}
