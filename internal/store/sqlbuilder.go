// Package store implements core.Gateway for PostgreSQL (pgx) and SQLite.
//
// Query plans are rendered to SQL here. Identifiers are always quoted and
// every value is bound as a parameter.
package store

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/JonMunkholm/salesadmin/internal/core"
)

// Dialect captures the SQL differences between supported stores.
type Dialect struct {
	Name string

	// Placeholder renders the n-th (1-based) bind parameter.
	Placeholder func(n int) string

	// LikeOp is the case-insensitive pattern operator.
	LikeOp string

	// TextCast casts non-text columns to text before pattern matching.
	TextCast bool
}

// Postgres renders $n placeholders and casts columns for ILIKE.
var Postgres = Dialect{
	Name:        "postgres",
	Placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
	LikeOp:      "ILIKE",
	TextCast:    true,
}

// SQLite renders ? placeholders. Its LIKE is case-insensitive for ASCII.
var SQLite = Dialect{
	Name:        "sqlite",
	Placeholder: func(int) string { return "?" },
	LikeOp:      "LIKE",
}

// quoteIdentifier quotes a SQL identifier to prevent injection.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// WhereBuilder renders a predicate tree into a WHERE clause and its
// bound arguments. Top-level AND terms become separate conditions.
type WhereBuilder struct {
	dialect    Dialect
	conditions []string
	args       []any
	argIndex   int
}

// NewWhereBuilder creates a builder whose first placeholder is 1.
func NewWhereBuilder(d Dialect) *WhereBuilder {
	return NewWhereBuilderAt(d, 1)
}

// NewWhereBuilderAt creates a builder whose first placeholder is start,
// for statements that bind other values before the WHERE clause.
func NewWhereBuilderAt(d Dialect, start int) *WhereBuilder {
	return &WhereBuilder{dialect: d, argIndex: start}
}

// Add appends a predicate as one or more AND-ed conditions. nil is ignored.
func (wb *WhereBuilder) Add(p core.Predicate) {
	if p == nil {
		return
	}
	if g, ok := p.(core.Group); ok && !g.Or {
		for _, t := range g.Terms {
			wb.Add(t)
		}
		return
	}
	if cond := wb.render(p); cond != "" {
		wb.conditions = append(wb.conditions, cond)
	}
}

// Build returns the WHERE clause (with a leading space) and its arguments.
// Returns an empty string and nil args when there are no conditions.
func (wb *WhereBuilder) Build() (string, []any) {
	if len(wb.conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(wb.conditions, " AND "), wb.args
}

// NextArgIndex returns the placeholder number for the next bound value.
func (wb *WhereBuilder) NextArgIndex() int {
	return wb.argIndex
}

func (wb *WhereBuilder) bind(v any) string {
	ph := wb.dialect.Placeholder(wb.argIndex)
	wb.args = append(wb.args, v)
	wb.argIndex++
	return ph
}

func (wb *WhereBuilder) render(p core.Predicate) string {
	switch n := p.(type) {
	case core.Comparison:
		return wb.renderComparison(n)

	case core.Group:
		parts := make([]string, 0, len(n.Terms))
		for _, t := range n.Terms {
			if s := wb.render(t); s != "" {
				parts = append(parts, s)
			}
		}
		if len(parts) == 0 {
			return ""
		}
		sep := " AND "
		if n.Or {
			sep = " OR "
		}
		return "(" + strings.Join(parts, sep) + ")"
	}
	return ""
}

func (wb *WhereBuilder) renderComparison(c core.Comparison) string {
	col := quoteIdentifier(c.Column)

	switch c.Op {
	case core.OpEquals, core.OpGreater, core.OpLess:
		return fmt.Sprintf("%s %s %s", col, c.Op, wb.bind(c.Value))

	case core.OpLike:
		if wb.dialect.TextCast {
			col += "::text"
		}
		return fmt.Sprintf("%s %s %s", col, wb.dialect.LikeOp, wb.bind(c.Value))

	case core.OpIn:
		if len(c.Values) == 0 {
			return "1 = 0"
		}
		placeholders := make([]string, len(c.Values))
		for i, v := range c.Values {
			placeholders[i] = wb.bind(v)
		}
		return fmt.Sprintf("%s IN (%s)", col, strings.Join(placeholders, ", "))
	}
	return ""
}

// projection renders "col" AS "alias" pairs.
func projection(cols []core.Column) string {
	if len(cols) == 0 {
		return "*"
	}
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = quoteIdentifier(c.Expr) + " AS " + quoteIdentifier(c.Name)
	}
	return strings.Join(parts, ", ")
}

// SelectSQL renders a query plan.
func (d Dialect) SelectSQL(plan core.QueryPlan) (string, []any) {
	wb := NewWhereBuilder(d)
	wb.Add(plan.Where)
	where, args := wb.Build()

	var b strings.Builder
	b.WriteString("SELECT ")
	if plan.Distinct {
		b.WriteString("DISTINCT ")
	}
	b.WriteString(projection(plan.Projection))
	b.WriteString(" FROM ")
	b.WriteString(quoteIdentifier(plan.Table))
	b.WriteString(where)

	if len(plan.OrderBy) > 0 {
		parts := make([]string, len(plan.OrderBy))
		for i, o := range plan.OrderBy {
			dir := o.Dir
			if dir != core.Asc {
				dir = core.Desc
			}
			parts[i] = quoteIdentifier(o.Column) + " " + string(dir)
		}
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(parts, ", "))
	}

	if plan.Limit > 0 {
		argIndex := wb.NextArgIndex()
		b.WriteString(fmt.Sprintf(" LIMIT %s OFFSET %s", d.Placeholder(argIndex), d.Placeholder(argIndex+1)))
		args = append(args, plan.Limit, plan.Offset)
	}

	return b.String(), args
}

// CountSQL renders a row count over the predicate only.
func (d Dialect) CountSQL(table string, where core.Predicate) (string, []any) {
	wb := NewWhereBuilder(d)
	wb.Add(where)
	clause, args := wb.Build()
	return "SELECT COUNT(*) FROM " + quoteIdentifier(table) + clause, args
}

// InsertSQL renders a single-row insert returning the given projection.
func (d Dialect) InsertSQL(table string, values []core.Assignment, returning []core.Column) (string, []any) {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(quoteIdentifier(table))

	args := make([]any, len(values))
	if len(values) == 0 {
		b.WriteString(" DEFAULT VALUES")
	} else {
		cols := make([]string, len(values))
		placeholders := make([]string, len(values))
		for i, v := range values {
			cols[i] = quoteIdentifier(v.Column)
			placeholders[i] = d.Placeholder(i + 1)
			args[i] = v.Value
		}
		b.WriteString(" (" + strings.Join(cols, ", ") + ")")
		b.WriteString(" VALUES (" + strings.Join(placeholders, ", ") + ")")
	}

	if len(returning) > 0 {
		b.WriteString(" RETURNING ")
		b.WriteString(projection(returning))
	}
	return b.String(), args
}

// UpdateSQL renders an update of every row matching where.
func (d Dialect) UpdateSQL(table string, values []core.Assignment, where core.Predicate) (string, []any) {
	sets := make([]string, len(values))
	args := make([]any, 0, len(values))
	for i, v := range values {
		sets[i] = quoteIdentifier(v.Column) + " = " + d.Placeholder(i+1)
		args = append(args, v.Value)
	}

	wb := NewWhereBuilderAt(d, len(values)+1)
	wb.Add(where)
	clause, whereArgs := wb.Build()

	query := "UPDATE " + quoteIdentifier(table) + " SET " + strings.Join(sets, ", ") + clause
	return query, append(args, whereArgs...)
}

// DeleteSQL renders a bulk delete of every row matching where.
func (d Dialect) DeleteSQL(table string, where core.Predicate) (string, []any) {
	wb := NewWhereBuilder(d)
	wb.Add(where)
	clause, args := wb.Build()
	return "DELETE FROM " + quoteIdentifier(table) + clause, args
}
