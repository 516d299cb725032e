// Package testdb provides database helpers for integration tests. It depends
// only on the standard database packages and goose, never on the store
// implementations under test.
package testdb

import (
	"database/sql"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"

	"github.com/kestrelm/quorum-api/internal/platform/postgres/migrations"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 5 * time.Second

var migrateOnce sync.Once

// IsIntegrationTestEnvironment returns true when a test database URL is
// configured, indicating that integration tests can run.
func IsIntegrationTestEnvironment() bool {
	return GetTestDatabaseURL() != ""
}

// GetTestDatabaseURL returns the database URL for tests. It checks
// DATABASE_URL and QUORUM_TEST_DB_URL in that order, returning the first
// non-empty value.
func GetTestDatabaseURL() string {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbURL = os.Getenv("QUORUM_TEST_DB_URL")
	}
	return dbURL
}

// GetTestDB opens a connection to the configured test database, runs
// migrations once per process, and registers cleanup on t. Tests are skipped
// when no test database is configured.
func GetTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	db, err := sql.Open("pgx", dbURL)
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("warning: failed to close test database: %v", err)
		}
	})

	require.NoError(t, db.Ping(), "failed to ping test database")

	migrateOnce.Do(func() {
		require.NoError(t, applyMigrations(db), "failed to run migrations")
	})

	return db
}

// ResetTables empties the given tables so a test starts from a known state.
// Needed because the snapshot-replace stores operate on whole tables and
// cannot be isolated inside a rolled-back transaction.
func ResetTables(t *testing.T, db *sql.DB, tables ...string) {
	t.Helper()

	for _, table := range tables {
		_, err := db.Exec("DELETE FROM " + table)
		require.NoError(t, err, "failed to reset table %s", table)
	}
}

// applyMigrations runs the embedded goose SQL migrations.
func applyMigrations(db *sql.DB) error {
	goose.SetTableName("schema_migrations")
	goose.SetBaseFS(migrations.FS)
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
