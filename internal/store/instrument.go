package store

import (
	"context"
	"time"

	"github.com/JonMunkholm/salesadmin/internal/core"
	"github.com/JonMunkholm/salesadmin/internal/metrics"
)

// Instrumented wraps a gateway and records operation latency and failures.
type Instrumented struct {
	next core.Gateway
}

var _ core.Gateway = (*Instrumented)(nil)

// Instrument returns gw wrapped with Prometheus instrumentation.
func Instrument(gw core.Gateway) *Instrumented {
	return &Instrumented{next: gw}
}

func observe(op, table string, start time.Time, err error) {
	metrics.QueryDuration.WithLabelValues(op, table).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.QueryErrors.WithLabelValues(op, table).Inc()
	}
}

func (g *Instrumented) Ping(ctx context.Context) error {
	start := time.Now()
	err := g.next.Ping(ctx)
	observe("ping", "", start, err)
	return err
}

func (g *Instrumented) Count(ctx context.Context, table string, where core.Predicate) (int64, error) {
	start := time.Now()
	n, err := g.next.Count(ctx, table, where)
	observe("count", table, start, err)
	return n, err
}

func (g *Instrumented) Select(ctx context.Context, plan core.QueryPlan) ([]core.Row, error) {
	start := time.Now()
	rows, err := g.next.Select(ctx, plan)
	observe("select", plan.Table, start, err)
	return rows, err
}

func (g *Instrumented) Insert(ctx context.Context, table string, values []core.Assignment, returning []core.Column) (core.Row, error) {
	start := time.Now()
	row, err := g.next.Insert(ctx, table, values, returning)
	observe("insert", table, start, err)
	return row, err
}

func (g *Instrumented) Update(ctx context.Context, table string, values []core.Assignment, where core.Predicate) (int64, error) {
	start := time.Now()
	n, err := g.next.Update(ctx, table, values, where)
	observe("update", table, start, err)
	return n, err
}

func (g *Instrumented) Delete(ctx context.Context, table string, where core.Predicate) (int64, error) {
	start := time.Now()
	n, err := g.next.Delete(ctx, table, where)
	observe("delete", table, start, err)
	return n, err
}
