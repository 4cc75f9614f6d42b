package store

import (
	"context"
	"fmt"
	"time"

	"github.com/JonMunkholm/salesadmin/internal/core"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolConfig holds pgxpool settings.
type PoolConfig struct {
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration

	// AcquireTimeout bounds how long an operation waits for a free connection.
	AcquireTimeout time.Duration
}

// PostgresGateway executes query plans on a pgx connection pool.
type PostgresGateway struct {
	pool           *pgxpool.Pool
	acquireTimeout time.Duration
}

var _ core.Gateway = (*PostgresGateway)(nil)

// NewPostgresPool parses url, applies cfg and verifies the connection.
func NewPostgresPool(ctx context.Context, url string, cfg PoolConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = int32(cfg.MinConns)
	}
	if cfg.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// NewPostgresGateway wraps an open pool.
func NewPostgresGateway(pool *pgxpool.Pool, acquireTimeout time.Duration) *PostgresGateway {
	return &PostgresGateway{pool: pool, acquireTimeout: acquireTimeout}
}

// Close releases every pooled connection.
func (g *PostgresGateway) Close() {
	g.pool.Close()
}

// acquire takes a connection, waiting at most acquireTimeout.
func (g *PostgresGateway) acquire(ctx context.Context) (*pgxpool.Conn, error) {
	actx := ctx
	if g.acquireTimeout > 0 {
		var cancel context.CancelFunc
		actx, cancel = context.WithTimeout(ctx, g.acquireTimeout)
		defer cancel()
	}
	conn, err := g.pool.Acquire(actx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	return conn, nil
}

func (g *PostgresGateway) Ping(ctx context.Context) error {
	conn, err := g.acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()
	return conn.Ping(ctx)
}

func (g *PostgresGateway) Count(ctx context.Context, table string, where core.Predicate) (int64, error) {
	conn, err := g.acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Release()

	query, args := Postgres.CountSQL(table, where)
	var n int64
	if err := conn.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (g *PostgresGateway) Select(ctx context.Context, plan core.QueryPlan) ([]core.Row, error) {
	conn, err := g.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	query, args := Postgres.SelectSQL(plan)
	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectRows(rows)
}

func (g *PostgresGateway) Insert(ctx context.Context, table string, values []core.Assignment, returning []core.Column) (core.Row, error) {
	conn, err := g.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	query, args := Postgres.InsertSQL(table, values, returning)
	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	out, err := collectRows(rows)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return core.Row{}, nil
	}
	return out[0], nil
}

func (g *PostgresGateway) Update(ctx context.Context, table string, values []core.Assignment, where core.Predicate) (int64, error) {
	query, args := Postgres.UpdateSQL(table, values, where)
	return g.exec(ctx, query, args)
}

func (g *PostgresGateway) Delete(ctx context.Context, table string, where core.Predicate) (int64, error) {
	query, args := Postgres.DeleteSQL(table, where)
	return g.exec(ctx, query, args)
}

func (g *PostgresGateway) exec(ctx context.Context, query string, args []any) (int64, error) {
	conn, err := g.acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// collectRows maps each result row to its column aliases.
func collectRows(rows pgx.Rows) ([]core.Row, error) {
	defer rows.Close()

	fields := rows.FieldDescriptions()
	out := make([]core.Row, 0)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		row := make(core.Row, len(fields))
		for i, fd := range fields {
			row[fd.Name] = normalizeValue(values[i])
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
