// Package migrations embeds the goose SQL migrations for every supported
// database and applies them at server start.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql mysql/*.sql sqlite/*.sql
var embedMigrations embed.FS

var (
	// ErrNilDB is returned by Migrate when called without a connection.
	ErrNilDB = errors.New("db is nil")
	// ErrUnknownDriver is returned for a driver without migrations.
	ErrUnknownDriver = errors.New("no migrations for driver")
)

// gooseDialects maps a configured driver to its goose dialect and the
// directory holding its migrations.
var gooseDialects = map[string]struct {
	dialect string
	dir     string
}{
	"postgres": {dialect: "postgres", dir: "postgres"},
	"mysql":    {dialect: "mysql", dir: "mysql"},
	"sqlite":   {dialect: "sqlite3", dir: "sqlite"},
}

// Migrate applies every pending Up migration for driver.
func Migrate(db *sql.DB, driver string) error {
	if db == nil {
		return fmt.Errorf("migration error: %w", ErrNilDB)
	}

	target, ok := gooseDialects[driver]
	if !ok {
		return fmt.Errorf("migration error: %w: %q", ErrUnknownDriver, driver)
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(target.dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, target.dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
