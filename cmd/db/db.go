package db

import (
	"database/sql"

	"github.com/spf13/cobra"
	"github/chapool/child-wallet/internal/api"
	"github/chapool/child-wallet/internal/config"
	"github/chapool/child-wallet/internal/util/command"
)

func New() *cobra.Command {
	return command.NewSubcommandGroup("db",
		newMigrate(),
		newStatus(),
	)
}

// openDB connects to the configured postgres database regardless of the key store backend.
func openDB(cfg config.Server) (*sql.DB, error) {
	cfg.KeyStore.Backend = config.KeyStorePostgres
	return api.NewDB(cfg)
}
