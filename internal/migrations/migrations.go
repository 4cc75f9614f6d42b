// Package migrations embeds the sales schema and applies it with
// golang-migrate. PostgreSQL and SQLite keep separate migration sets
// because their auto-increment syntax differs.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed postgres/*.sql
var postgresFS embed.FS

//go:embed sqlite/*.sql
var sqliteFS embed.FS

// Runner applies embedded migrations to one database.
type Runner struct {
	m *migrate.Migrate
}

// NewPostgres creates a runner for the database at url.
func NewPostgres(url string) (*Runner, error) {
	src, err := iofs.New(postgresFS, "postgres")
	if err != nil {
		return nil, fmt.Errorf("load migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration instance: %w", err)
	}
	m.Log = slogLogger{}
	return &Runner{m: m}, nil
}

// NewSQLite creates a runner on an open sqlite handle.
// Closing the runner closes db.
func NewSQLite(db *sql.DB) (*Runner, error) {
	src, err := iofs.New(sqliteFS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("load migrations: %w", err)
	}
	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return nil, fmt.Errorf("create sqlite driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration instance: %w", err)
	}
	m.Log = slogLogger{}
	return &Runner{m: m}, nil
}

// Up applies every pending migration. An up-to-date schema is not an error.
func (r *Runner) Up() error {
	if err := r.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Down rolls back every applied migration.
func (r *Runner) Down() error {
	if err := r.m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}
	return nil
}

// Version reports the applied version. ok is false when nothing is applied.
func (r *Runner) Version() (version uint, dirty bool, ok bool, err error) {
	version, dirty, err = r.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, false, nil
	}
	if err != nil {
		return 0, false, false, fmt.Errorf("read migration version: %w", err)
	}
	return version, dirty, true, nil
}

// Close releases the source and database handles.
func (r *Runner) Close() error {
	srcErr, dbErr := r.m.Close()
	return errors.Join(srcErr, dbErr)
}

// slogLogger routes golang-migrate output to slog.
type slogLogger struct{}

func (slogLogger) Printf(format string, v ...any) {
	slog.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "migrate")
}

func (slogLogger) Verbose() bool {
	return false
}
