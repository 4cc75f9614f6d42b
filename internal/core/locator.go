package core

import "context"

// AdjacentKeys holds the neighbouring record keys of a viewed record.
// A nil value means there is no neighbour in that direction.
type AdjacentKeys struct {
	Next     any `json:"nextRecordId"`
	Previous any `json:"previousRecordId"`
}

// Locator finds neighbouring key values under the key's natural ordering.
// Only the key column is fetched.
type Locator struct {
	gw Gateway
}

// NewLocator creates a Locator over gw.
func NewLocator(gw Gateway) *Locator {
	return &Locator{gw: gw}
}

// Next returns the smallest key strictly greater than current, or nil.
func (l *Locator) Next(ctx context.Context, table string, key Column, current any) (any, error) {
	return l.adjacent(ctx, table, key, OpGreater, Asc, current)
}

// Previous returns the largest key strictly less than current, or nil.
func (l *Locator) Previous(ctx context.Context, table string, key Column, current any) (any, error) {
	return l.adjacent(ctx, table, key, OpLess, Desc, current)
}

// Adjacent looks up both neighbours of current.
func (l *Locator) Adjacent(ctx context.Context, table string, key Column, current any) (AdjacentKeys, error) {
	next, err := l.Next(ctx, table, key, current)
	if err != nil {
		return AdjacentKeys{}, err
	}
	prev, err := l.Previous(ctx, table, key, current)
	if err != nil {
		return AdjacentKeys{}, err
	}
	return AdjacentKeys{Next: next, Previous: prev}, nil
}

// AdjacentPlan builds the single-row key lookup used by Next and Previous.
func AdjacentPlan(table string, key Column, op Operator, dir Direction, current any) QueryPlan {
	return QueryPlan{
		Table:      table,
		Where:      Comparison{Column: key.Expr, Op: op, Value: current},
		Projection: []Column{key},
		OrderBy:    []Order{{Column: key.Expr, Dir: dir}},
		Limit:      1,
	}
}

func (l *Locator) adjacent(ctx context.Context, table string, key Column, op Operator, dir Direction, current any) (any, error) {
	rows, err := l.gw.Select(ctx, AdjacentPlan(table, key, op, dir, current))
	if err != nil {
		return nil, queryErr("select", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0][key.Name], nil
}
