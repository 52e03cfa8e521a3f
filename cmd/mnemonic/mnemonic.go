package mnemonic

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/child-wallet/internal/util/command"
	"github/chapool/child-wallet/internal/wallet/keystore"
	"github/chapool/child-wallet/internal/wallet/remote/devsigner"
)

const keystoreFlag = "keystore"

var errPasswordMismatch = errors.New("passwords do not match")

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mnemonic",
		Short: "Generates a mnemonic for the development signer",
		Long: `Generates a fresh 24 word BIP-39 mnemonic for SIGNER_DEV_MNEMONIC.
With --keystore the mnemonic is written encrypted to a keystore file for
SIGNER_DEV_KEYSTORE_FILE instead of being printed.

Development only, production keys live in the remote threshold signer.`,
		Run: func(cmd *cobra.Command, _ []string) {
			path, _ := cmd.Flags().GetString(keystoreFlag)

			m, err := devsigner.NewMnemonic()
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to generate mnemonic")
			}

			if path == "" {
				fmt.Fprintln(cmd.OutOrStdout(), m)
				return
			}

			if err := writeKeystore(path, m); err != nil {
				log.Fatal().Err(err).Str("path", path).Msg("Failed to write keystore")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote encrypted mnemonic to %s\n", path)
		},
	}

	cmd.Flags().String(keystoreFlag, "", "Write the mnemonic encrypted to this keystore file")

	return cmd
}

func writeKeystore(path string, mnemonic string) error {
	password, err := command.PromptPassword("Keystore password: ")
	if err != nil {
		return err
	}
	confirm, err := command.PromptPassword("Repeat keystore password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return errPasswordMismatch
	}

	f, err := keystore.Encrypt(mnemonic, password, keystore.StandardScryptParams())
	if err != nil {
		return err
	}

	return keystore.Save(path, f)
}
