package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"

	"github.com/kestrelm/quorum-api/internal/platform/postgres/migrations"
)

// applyMigrations brings the schema up to date on startup using the embedded
// goose migrations.
func applyMigrations(db *sql.DB, logger *slog.Logger) error {
	configureGoose()
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	logger.Info("database schema up to date")
	return nil
}

// RunMigrationCommand executes an explicit migration command (up, down,
// status) against the configured database and returns.
func (a *application) RunMigrationCommand(command string) error {
	configureGoose()

	switch command {
	case "up":
		return goose.Up(a.db, ".")
	case "down":
		return goose.Down(a.db, ".")
	case "status":
		return goose.Status(a.db, ".")
	default:
		return fmt.Errorf("unknown migration command %q (want up, down, or status)", command)
	}
}

func configureGoose() {
	goose.SetTableName("schema_migrations")
	goose.SetBaseFS(migrations.FS)
}
