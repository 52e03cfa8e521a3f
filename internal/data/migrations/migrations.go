// Package migrations embeds the SQL migrations of the postgres key store.
package migrations

import (
	"database/sql"
	"embed"

	"github.com/pkg/errors"
	migrate "github.com/rubenv/sql-migrate"
)

//go:embed *.sql
var files embed.FS

// Source returns the embedded migrations.
func Source() migrate.MigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: files,
		Root:       ".",
	}
}

// Up applies all pending migrations, tracking them in table. It returns the number applied.
func Up(db *sql.DB, table string) (int, error) {
	if table != "" {
		migrate.SetTable(table)
	}

	n, err := migrate.Exec(db, "postgres", Source(), migrate.Up)
	if err != nil {
		return 0, errors.Wrap(err, "failed to apply migrations")
	}

	return n, nil
}

// Status lists the embedded migrations and whether each has been applied.
func Status(db *sql.DB, table string) (map[string]bool, error) {
	if table != "" {
		migrate.SetTable(table)
	}

	migrations, err := Source().FindMigrations()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read migrations")
	}

	records, err := migrate.GetMigrationRecords(db, "postgres")
	if err != nil {
		return nil, errors.Wrap(err, "failed to read migration records")
	}

	status := make(map[string]bool, len(migrations))
	for _, m := range migrations {
		status[m.Id] = false
	}
	for _, r := range records {
		status[r.Id] = true
	}

	return status, nil
}
