package test

import (
	"database/sql"
	"os"
	"testing"

	"github/chapool/child-wallet/internal/data/migrations"

	// Import postgres driver for database/sql package
	_ "github.com/lib/pq"
)

// EnvTestDatabaseURL names the postgres DSN the database tests run against.
const EnvTestDatabaseURL = "TEST_DATABASE_URL"

// WithTestDatabase runs closure against a migrated, empty key store database.
// The test is skipped when TEST_DATABASE_URL is not set.
func WithTestDatabase(t *testing.T, closure func(db *sql.DB)) {
	t.Helper()

	dsn, ok := os.LookupEnv(EnvTestDatabaseURL)
	if !ok || dsn == "" {
		t.Skipf("%s not set, skipping database test", EnvTestDatabaseURL)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		t.Fatalf("failed to ping test database: %v", err)
	}

	if _, err := migrations.Up(db, ""); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	truncate(t, db)
	defer truncate(t, db)

	closure(db)
}

func truncate(t *testing.T, db *sql.DB) {
	t.Helper()

	if _, err := db.Exec(`TRUNCATE key_records`); err != nil {
		t.Fatalf("failed to truncate test database: %v", err)
	}
}
