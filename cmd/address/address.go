package address

import (
	"fmt"

	"github.com/spf13/cobra"
	"github/chapool/child-wallet/internal/wallet/address"
)

func New() *cobra.Command {
	return &cobra.Command{
		Use:   "address <compressed-public-key-hex>",
		Short: "Derives the address of a public key",
		Long: `Derives the EIP-55 checksummed Ethereum address of a 33 byte
compressed secp256k1 public key, with or without 0x prefix.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			publicKey, err := address.PublicKeyFromHex(args[0])
			if err != nil {
				return err
			}

			addr, err := address.DeriveAddress(publicKey)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), address.ChecksumHex(addr))
			return nil
		},
	}
}
