package store

import (
	"context"
	"fmt"
	"strings"
)

// Driver names accepted by Open.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Options selects and configures a gateway.
type Options struct {
	Driver string
	URL    string // postgres:// URL, or a sqlite file path / ":memory:"
	Pool   PoolConfig
}

// Handle is an opened store: its instrumented gateway and its closer.
type Handle struct {
	Gateway *Instrumented
	Driver  string

	postgres *PostgresGateway
	sqlite   *SQLiteGateway
}

// Open connects to the configured store and verifies it is reachable.
func Open(ctx context.Context, opts Options) (*Handle, error) {
	switch strings.ToLower(opts.Driver) {
	case DriverPostgres, "pgx", "":
		pool, err := NewPostgresPool(ctx, opts.URL, opts.Pool)
		if err != nil {
			return nil, err
		}
		pg := NewPostgresGateway(pool, opts.Pool.AcquireTimeout)
		return &Handle{Gateway: Instrument(pg), Driver: DriverPostgres, postgres: pg}, nil

	case DriverSQLite:
		lite, err := OpenSQLite(ctx, strings.TrimPrefix(opts.URL, "sqlite://"))
		if err != nil {
			return nil, err
		}
		return &Handle{Gateway: Instrument(lite), Driver: DriverSQLite, sqlite: lite}, nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
}

// SQLite returns the sqlite gateway, or nil for other drivers.
func (h *Handle) SQLite() *SQLiteGateway {
	return h.sqlite
}

// Close releases the underlying connections.
func (h *Handle) Close() error {
	if h.postgres != nil {
		h.postgres.Close()
	}
	if h.sqlite != nil {
		return h.sqlite.Close()
	}
	return nil
}
