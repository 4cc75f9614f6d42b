package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/JonMunkholm/salesadmin/internal/core"
	_ "modernc.org/sqlite"
)

// SQLiteGateway executes query plans on a database/sql handle opened with
// the pure-Go sqlite driver. Used for local development and tests.
type SQLiteGateway struct {
	db *sql.DB
}

var _ core.Gateway = (*SQLiteGateway)(nil)

// OpenSQLite opens path (":memory:" for a private in-memory database).
func OpenSQLite(ctx context.Context, path string) (*SQLiteGateway, error) {
	dsn := path
	if path != ":memory:" && !strings.Contains(path, "?") {
		dsn += "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if path == ":memory:" {
		// Each connection would otherwise see its own empty database.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return &SQLiteGateway{db: db}, nil
}

// DB exposes the handle for schema setup.
func (g *SQLiteGateway) DB() *sql.DB {
	return g.db
}

func (g *SQLiteGateway) Close() error {
	return g.db.Close()
}

func (g *SQLiteGateway) Ping(ctx context.Context) error {
	return g.db.PingContext(ctx)
}

func (g *SQLiteGateway) Count(ctx context.Context, table string, where core.Predicate) (int64, error) {
	query, args := SQLite.CountSQL(table, where)
	bound, err := sqliteArgs(args)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := g.db.QueryRowContext(ctx, query, bound...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (g *SQLiteGateway) Select(ctx context.Context, plan core.QueryPlan) ([]core.Row, error) {
	query, args := SQLite.SelectSQL(plan)
	return g.query(ctx, query, args)
}

func (g *SQLiteGateway) Insert(ctx context.Context, table string, values []core.Assignment, returning []core.Column) (core.Row, error) {
	query, args := SQLite.InsertSQL(table, values, returning)
	rows, err := g.query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return core.Row{}, nil
	}
	return rows[0], nil
}

func (g *SQLiteGateway) Update(ctx context.Context, table string, values []core.Assignment, where core.Predicate) (int64, error) {
	query, args := SQLite.UpdateSQL(table, values, where)
	return g.exec(ctx, query, args)
}

func (g *SQLiteGateway) Delete(ctx context.Context, table string, where core.Predicate) (int64, error) {
	query, args := SQLite.DeleteSQL(table, where)
	return g.exec(ctx, query, args)
}

func (g *SQLiteGateway) exec(ctx context.Context, query string, args []any) (int64, error) {
	bound, err := sqliteArgs(args)
	if err != nil {
		return 0, err
	}
	res, err := g.db.ExecContext(ctx, query, bound...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (g *SQLiteGateway) query(ctx context.Context, query string, args []any) ([]core.Row, error) {
	bound, err := sqliteArgs(args)
	if err != nil {
		return nil, err
	}
	rows, err := g.db.QueryContext(ctx, query, bound...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out := make([]core.Row, 0)
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(core.Row, len(cols))
		for i, c := range cols {
			row[c] = normalizeValue(values[i])
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// sqliteArgs resolves pgtype values to plain driver values. Dates are
// stored as YYYY-MM-DD text so equality and ordering stay lexical.
func sqliteArgs(args []any) ([]any, error) {
	out := make([]any, len(args))
	for i, a := range args {
		if v, ok := a.(driver.Valuer); ok {
			resolved, err := v.Value()
			if err != nil {
				return nil, fmt.Errorf("bind argument %d: %w", i+1, err)
			}
			a = resolved
		}
		if t, ok := a.(time.Time); ok {
			a = t.UTC().Format("2006-01-02")
		}
		out[i] = a
	}
	return out, nil
}
