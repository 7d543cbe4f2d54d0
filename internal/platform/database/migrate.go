package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*/*.sql
var migrationsFS embed.FS

// Direction selects whether migrations are applied or rolled back.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// MigrationResult reports the schema version before and after a run.
type MigrationResult struct {
	From    uint
	To      uint
	Changed bool
}

// Migrate applies (Up) or rolls back (Down) every embedded migration for
// backend. It opens and closes its own connection.
func Migrate(ctx context.Context, backend Backend, dsn string, dir Direction) (MigrationResult, error) {
	var res MigrationResult
	if dir != Up && dir != Down {
		return res, fmt.Errorf("unknown migration direction %q", dir)
	}

	db, err := Open(ctx, backend, dsn, Options{})
	if err != nil {
		return res, err
	}

	var driver migratedb.Driver
	switch backend {
	case SQLite:
		driver, err = sqlite.WithInstance(db, &sqlite.Config{})
	case MySQL:
		driver, err = mysql.WithInstance(db, &mysql.Config{})
	default:
		driver, err = postgres.WithInstance(db, &postgres.Config{})
	}
	if err != nil {
		_ = db.Close()
		return res, fmt.Errorf("create %s migrate driver: %w", backend, err)
	}

	sub, err := fs.Sub(migrationsFS, "migrations/"+string(backend))
	if err != nil {
		_ = driver.Close()
		return res, fmt.Errorf("access %s migrations: %w", backend, err)
	}
	source, err := iofs.New(sub, ".")
	if err != nil {
		_ = driver.Close()
		return res, fmt.Errorf("create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, string(backend), driver)
	if err != nil {
		_ = source.Close()
		_ = driver.Close()
		return res, fmt.Errorf("create migrate instance: %w", err)
	}
	// Closes both the source and the database connection.
	defer func() { _, _ = m.Close() }()

	from, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return res, fmt.Errorf("read migration version: %w", err)
	}
	if dirty {
		return res, fmt.Errorf("database is in a dirty state at version %d, fix it manually or force the version", from)
	}
	res.From = from

	if dir == Up {
		err = m.Up()
	} else {
		err = m.Down()
	}
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		res.To = from
		return res, nil
	case err != nil:
		return res, fmt.Errorf("migrate %s: %w", dir, err)
	}

	to, _, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return res, fmt.Errorf("read migration version: %w", err)
	}
	res.To = to
	res.Changed = true
	return res, nil
}
