package dal

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Each dialect has its own directory under migrations/.
//
//go:embed migrations
var migrationsFS embed.FS

// Migrate applies ("up") or rolls back ("down") the embedded schema migrations.
func (d *DB) Migrate(direction string) error {
	if direction != "up" && direction != "down" {
		return fmt.Errorf("invalid migration direction: %s (must be 'up' or 'down')", direction)
	}
	m, release, err := d.migrator(context.Background())
	if err != nil {
		return err
	}
	defer release()

	if direction == "up" {
		err = m.Up()
	} else {
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("running migrations %s: %w", direction, err)
	}
	return nil
}

// MigrationVersion returns the current schema version.
func (d *DB) MigrationVersion() (uint, bool, error) {
	m, release, err := d.migrator(context.Background())
	if err != nil {
		return 0, false, err
	}
	defer release()

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, fmt.Errorf("reading migration version: %w", err)
	}
	return version, dirty, nil
}

// migrator builds a migrate instance over the pool. The returned release
// func gives back whatever the instance borrowed without closing the pool.
func (d *DB) migrator(ctx context.Context) (*migrate.Migrate, func(), error) {
	source, err := iofs.New(migrationsFS, "migrations/"+d.dialect)
	if err != nil {
		return nil, nil, fmt.Errorf("creating migration source: %w", err)
	}

	if d.dialect == SQLite {
		// The sqlite3 driver's Close closes the *sql.DB it was given.
		driver, err := sqlite3.WithInstance(d.db.DB, &sqlite3.Config{})
		if err != nil {
			source.Close()
			return nil, nil, fmt.Errorf("creating migration driver: %w", err)
		}
		m, err := migrate.NewWithInstance("iofs", source, d.dialect, driver)
		if err != nil {
			source.Close()
			return nil, nil, fmt.Errorf("creating migration instance: %w", err)
		}
		return m, func() { source.Close() }, nil
	}

	conn, err := d.db.Conn(ctx)
	if err != nil {
		source.Close()
		return nil, nil, &StorageError{Op: "connect", Err: err}
	}
	driver, err := postgres.WithConnection(ctx, conn, &postgres.Config{})
	if err != nil {
		conn.Close()
		source.Close()
		return nil, nil, fmt.Errorf("creating migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, d.dialect, driver)
	if err != nil {
		driver.Close()
		source.Close()
		return nil, nil, fmt.Errorf("creating migration instance: %w", err)
	}
	return m, func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			slog.Warn("closing migrator", "source_error", srcErr, "database_error", dbErr)
		}
	}, nil
}
