// Package dal is the generic parameterized-query layer every repository
// persists through. Each call acquires its own connection, prepares the
// statement, binds arguments positionally ($1..$n), and releases everything
// before returning. Nothing spans two calls.
package dal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Supported dialects.
const (
	Postgres = "postgres"
	SQLite   = "sqlite3"
)

// driverNames maps a dialect to its registered database/sql driver.
var driverNames = map[string]string{
	Postgres: "pgx",
	SQLite:   "sqlite3",
}

// ErrNoRows is returned by FetchOne when the query matched nothing.
var ErrNoRows = errors.New("no rows in result set")

// StorageError reports a failure to reach or use the backing store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Executor is the contract repositories depend on.
type Executor interface {
	Execute(ctx context.Context, query string, args ...any) error
	FetchOne(ctx context.Context, query string, args ...any) (Row, error)
	FetchMany(ctx context.Context, query string, args ...any) ([]Row, error)
}

// DB executes statements against a relational store through sqlx.
type DB struct {
	db      *sqlx.DB
	dialect string
}

// New wraps an existing sqlx handle connected to PostgreSQL.
func New(db *sqlx.DB) *DB {
	return &DB{db: db, dialect: Postgres}
}

// Options configures Open.
type Options struct {
	// Dialect is Postgres (default) or SQLite.
	Dialect string
	// DSN is a connection URL for Postgres or a file path for SQLite.
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

// Open connects to the configured store and verifies the connection with a
// ping. PostgreSQL goes through pgx's stdlib adapter. SQLite is limited to a
// single open connection.
func Open(ctx context.Context, opts Options) (*DB, error) {
	dialect := opts.Dialect
	if dialect == "" {
		dialect = Postgres
	}
	driver, ok := driverNames[dialect]
	if !ok {
		return nil, fmt.Errorf("unsupported database dialect %q", dialect)
	}

	dsn := opts.DSN
	if dialect == SQLite {
		dsn = fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=ON", opts.DSN)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, &StorageError{Op: "open", Err: err}
	}
	if dialect == SQLite {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(opts.MaxOpenConns)
		db.SetMaxIdleConns(opts.MaxIdleConns)
		db.SetConnMaxIdleTime(5 * time.Minute)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, &StorageError{Op: "ping", Err: err}
	}
	return &DB{db: db, dialect: dialect}, nil
}

// Dialect reports which store the DB is connected to.
func (d *DB) Dialect() string {
	return d.dialect
}

// Execute runs a statement that returns no rows.
func (d *DB) Execute(ctx context.Context, query string, args ...any) error {
	return d.withStmt(ctx, query, func(stmt *sqlx.Stmt) error {
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("executing statement: %w", err)
		}
		return nil
	})
}

// FetchOne returns the first row of the result, or ErrNoRows.
func (d *DB) FetchOne(ctx context.Context, query string, args ...any) (Row, error) {
	var row Row
	err := d.withStmt(ctx, query, func(stmt *sqlx.Stmt) error {
		m := make(map[string]any)
		if err := stmt.QueryRowxContext(ctx, args...).MapScan(m); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNoRows
			}
			return fmt.Errorf("fetching row: %w", err)
		}
		row = Row(m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

// FetchMany returns every row of the result. An empty result is an empty,
// non-nil slice.
func (d *DB) FetchMany(ctx context.Context, query string, args ...any) ([]Row, error) {
	rows := []Row{}
	err := d.withStmt(ctx, query, func(stmt *sqlx.Stmt) error {
		rs, err := stmt.QueryxContext(ctx, args...)
		if err != nil {
			return fmt.Errorf("fetching rows: %w", err)
		}
		defer rs.Close()

		for rs.Next() {
			m := make(map[string]any)
			if err := rs.MapScan(m); err != nil {
				return fmt.Errorf("scanning row: %w", err)
			}
			rows = append(rows, Row(m))
		}
		return rs.Err()
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// withStmt acquires a dedicated connection, prepares query on it, and hands
// the statement to fn. Connection and statement are released before return.
func (d *DB) withStmt(ctx context.Context, query string, fn func(*sqlx.Stmt) error) error {
	conn, err := d.db.Connx(ctx)
	if err != nil {
		return &StorageError{Op: "connect", Err: err}
	}
	defer conn.Close()

	stmt, err := conn.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	return fn(stmt)
}

// Ping verifies the store is reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// Stats exposes connection statistics for the metrics collector.
func (d *DB) Stats() sql.DBStats {
	return d.db.Stats()
}

// Close releases the underlying handle.
func (d *DB) Close() error {
	return d.db.Close()
}
