package db

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/child-wallet/internal/config"
	"github/chapool/child-wallet/internal/data/migrations"
	"github/chapool/child-wallet/internal/util/command"
)

func newMigrate() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Executes all migrations which are not yet applied.",
		Run: func(_ *cobra.Command, _ []string) {
			migrateCmdFunc()
		},
	}
}

func migrateCmdFunc() {
	cfg := config.DefaultServiceConfigFromEnv()
	command.ConfigureLogger(cfg)

	db, err := openDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	n, err := migrations.Up(db, cfg.Database.MigrationsTable)
	if err != nil {
		log.Fatal().Err(err).Msg("Error while applying migrations")
	}

	log.Info().Int("appliedMigrationsCount", n).Msg("Applied migrations")
}
