// Package database provides on-demand SQL connections, the schema
// initializer, and the optional Redis client. SQL connections are
// deliberately short-lived: each operation opens one, uses it, and closes it.
// Nothing is pooled across requests and nothing is retried; a missing or
// unreachable database only disables persistence, it never stops the site.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	// SQL drivers -- imported for side effect of registering the drivers.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/config"
)

var (
	// ErrNotConfigured means no database name or URL was provided.
	ErrNotConfigured = errors.New("database not configured")

	// ErrUnavailable means the database could not be opened or reached.
	ErrUnavailable = errors.New("database unavailable")
)

// Factory opens short-lived database connections on demand.
type Factory struct {
	cfg     config.DatabaseConfig
	dialect Dialect
}

// NewFactory creates a connection factory for the given settings. It does
// not touch the network.
func NewFactory(cfg config.DatabaseConfig) *Factory {
	return &Factory{cfg: cfg, dialect: DialectFor(cfg.Driver)}
}

// Dialect returns the SQL dialect of the configured driver.
func (f *Factory) Dialect() Dialect {
	return f.dialect
}

// Open returns a connected handle limited to a single connection. The caller
// owns the handle and must Close it. Returns an error wrapping
// ErrNotConfigured or ErrUnavailable when no connection can be provided.
func (f *Factory) Open(ctx context.Context) (*sql.DB, error) {
	if f == nil || !f.cfg.Configured() {
		return nil, ErrNotConfigured
	}

	db, err := sql.Open(f.dialect.DriverName(), f.cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s connection: %w", ErrUnavailable, f.dialect, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	timeout := f.cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: pinging %s: %w", ErrUnavailable, f.dialect, err)
	}
	return db, nil
}

// WithConnection opens a connection, runs fn, and closes the connection
// regardless of the outcome.
func (f *Factory) WithConnection(ctx context.Context, fn func(db *sql.DB) error) error {
	db, err := f.Open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}
