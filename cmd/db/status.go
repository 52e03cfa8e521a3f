package db

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/child-wallet/internal/config"
	"github/chapool/child-wallet/internal/data/migrations"
	"github/chapool/child-wallet/internal/util/command"
)

func newStatus() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Prints which migrations are applied.",
		Run: func(cmd *cobra.Command, _ []string) {
			cfg := config.DefaultServiceConfigFromEnv()
			command.ConfigureLogger(cfg)

			db, err := openDB(cfg)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to connect to database")
			}
			defer db.Close()

			status, err := migrations.Status(db, cfg.Database.MigrationsTable)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to read migration status")
			}

			ids := make([]string, 0, len(status))
			for id := range status {
				ids = append(ids, id)
			}
			sort.Strings(ids)

			for _, id := range ids {
				state := "pending"
				if status[id] {
					state = "applied"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", state, id)
			}
		},
	}
}
