package qr

import (
	"github.com/spf13/cobra"
	"github/chapool/child-wallet/internal/config"
	"github/chapool/child-wallet/internal/util/command"
	"github/chapool/child-wallet/internal/wallet/chain"
)

const (
	chainIDFlag  = "chain-id"
	receiverFlag = "receiver"
	amountFlag   = "amount"
	imageFlag    = "image"
)

func New() *cobra.Command {
	return command.NewSubcommandGroup("qr",
		newEncode(),
		newDecode(),
	)
}

// allowedToken returns the configured token of chainID, 0 means the default chain.
func allowedToken(chainID uint64) (uint64, *chain.Token, error) {
	chains, err := chain.NewServiceFromConfig(config.DefaultServiceConfigFromEnv().Chains)
	if err != nil {
		return 0, nil, err
	}

	if chainID == 0 {
		chainID = chains.DefaultChainID()
	}

	token, err := chains.AllowedToken(chainID)
	if err != nil {
		return 0, nil, err
	}

	return chainID, token, nil
}
