package qr

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github/chapool/child-wallet/internal/wallet/address"
	"github/chapool/child-wallet/internal/wallet/payment"
)

var errChainMismatch = errors.New("payload is for another chain")

func newDecode() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <payload>",
		Short: "Validates a scanned transfer payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			requested, _ := cmd.Flags().GetUint64(chainIDFlag)

			chainID, token, err := allowedToken(requested)
			if err != nil {
				return err
			}

			intent, err := payment.ParseTransferIntent(args[0], token.Address)
			if err != nil {
				return err
			}
			if intent.ChainID != 0 && intent.ChainID != chainID {
				return errors.Wrapf(errChainMismatch, "payload chain %d, requested %d", intent.ChainID, chainID)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "chain:    %d\n", chainID)
			fmt.Fprintf(out, "token:    %s (%s)\n", address.ChecksumHex(intent.Token), token.Symbol)
			fmt.Fprintf(out, "receiver: %s\n", address.ChecksumHex(intent.Receiver))
			fmt.Fprintf(out, "amount:   %s %s (%s)\n", payment.FormatUnits(intent.Amount, token.Decimals), token.Symbol, intent.RawAmount)
			return nil
		},
	}

	cmd.Flags().Uint64(chainIDFlag, 0, "Chain id, defaults to CHAINS_DEFAULT_CHAIN_ID")

	return cmd
}
