// Package database opens the app's local sqlite database and applies
// schema migrations.
package database

import (
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	migsqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Open connects to the sqlite file at path with the pragmas the app
// relies on (WAL, immediate transactions, busy timeout).
func Open(path string) (*sqlx.DB, error) {
	dbx, err := sqlx.Open("sqlite", fmt.Sprintf("%s?_txlock=immediate&_journal_mode=WAL&_busy_timeout=5000", path))
	if err != nil {
		return nil, fmt.Errorf("error opening database: %s", err)
	}

	return dbx, nil
}

// Migrate applies every migration under dirName in the given
// filesystem.
func Migrate(dbx *sqlx.DB, fsys fs.FS, dirName string) error {
	src, err := iofs.New(fsys, dirName)
	if err != nil {
		return fmt.Errorf("error creating migrations source: %s", err)
	}
	driver, err := migsqlite.WithInstance(dbx.DB, &migsqlite.Config{})
	if err != nil {
		return fmt.Errorf("error creating sqlite instance for migration: %s", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("error creating migrator: %s", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("error migrating: %s", err)
	}
	slog.Debug("migrations applied")

	return nil
}
