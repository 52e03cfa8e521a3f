package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/child-wallet/cmd/address"
	"github/chapool/child-wallet/cmd/db"
	"github/chapool/child-wallet/cmd/env"
	"github/chapool/child-wallet/cmd/mnemonic"
	"github/chapool/child-wallet/cmd/probe"
	"github/chapool/child-wallet/cmd/qr"
	"github/chapool/child-wallet/cmd/server"
	"github/chapool/child-wallet/internal/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Version: config.GetFormattedBuildArgs(),
	Use:     "app",
	Short:   config.ModuleName,
	Long: fmt.Sprintf(`%v

Signing gateway for custodial child identities whose keys live in a remote
threshold signer. Requires configuration through ENV.`, config.ModuleName),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	// attach the subcommands
	rootCmd.AddCommand(
		address.New(),
		db.New(),
		env.New(),
		mnemonic.New(),
		probe.New(),
		qr.New(),
		server.New(),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Failed to execute root command")
		os.Exit(1)
	}
}
