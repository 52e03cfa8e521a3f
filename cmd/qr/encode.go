package qr

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github/chapool/child-wallet/internal/wallet/address"
	"github/chapool/child-wallet/internal/wallet/payment"
)

func newEncode() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Builds a transfer payload for the chain's token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			chainID, _ := cmd.Flags().GetUint64(chainIDFlag)
			rawReceiver, _ := cmd.Flags().GetString(receiverFlag)
			amount, _ := cmd.Flags().GetString(amountFlag)
			image, _ := cmd.Flags().GetBool(imageFlag)

			_, token, err := allowedToken(chainID)
			if err != nil {
				return err
			}

			receiver, err := address.ParseAddress(rawReceiver)
			if err != nil {
				return err
			}

			raw, err := payment.ParseUnits(amount, token.Decimals)
			if err != nil {
				return err
			}
			if raw.Sign() <= 0 {
				return errors.Wrap(payment.ErrInvalidAmount, "amount must be positive")
			}

			uri := payment.BuildTransferURI(token.Address, receiver, raw.String())

			fmt.Fprintln(cmd.OutOrStdout(), uri)
			if image {
				fmt.Fprintln(cmd.OutOrStdout(), payment.BuildQRImageURL(uri))
			}
			return nil
		},
	}

	cmd.Flags().Uint64(chainIDFlag, 0, "Chain id, defaults to CHAINS_DEFAULT_CHAIN_ID")
	cmd.Flags().String(receiverFlag, "", "Receiver address")
	cmd.Flags().String(amountFlag, "", "Amount in token units, e.g. 12.5")
	cmd.Flags().Bool(imageFlag, false, "Also print a QR image URL")
	_ = cmd.MarkFlagRequired(receiverFlag)
	_ = cmd.MarkFlagRequired(amountFlag)

	return cmd
}
