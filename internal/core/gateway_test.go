package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// =============================================================================
// In-memory Gateway
// =============================================================================

// memGateway evaluates query plans over rows keyed by physical column.
type memGateway struct {
	mu    sync.Mutex
	rows  map[string][]map[string]any
	calls int
	fail  error
}

func newMemGateway() *memGateway {
	return &memGateway{rows: make(map[string][]map[string]any)}
}

func (g *memGateway) seed(table string, rows ...map[string]any) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, r := range rows {
		cp := make(map[string]any, len(r))
		for k, v := range r {
			cp[k] = plain(v)
		}
		g.rows[table] = append(g.rows[table], cp)
	}
}

func (g *memGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func (g *memGateway) begin() error {
	g.calls++
	return g.fail
}

func (g *memGateway) Count(ctx context.Context, table string, where Predicate) (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.begin(); err != nil {
		return 0, err
	}
	var n int64
	for _, r := range g.rows[table] {
		if matches(r, where) {
			n++
		}
	}
	return n, nil
}

func (g *memGateway) Select(ctx context.Context, plan QueryPlan) ([]Row, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.begin(); err != nil {
		return nil, err
	}

	var hits []map[string]any
	for _, r := range g.rows[plan.Table] {
		if matches(r, plan.Where) {
			hits = append(hits, r)
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		for _, o := range plan.OrderBy {
			c := compare(hits[i][o.Column], hits[j][o.Column])
			if c == 0 {
				continue
			}
			if o.Dir == Asc {
				return c < 0
			}
			return c > 0
		}
		return false
	})

	var out []Row
	seen := make(map[string]bool)
	for _, r := range hits {
		row := make(Row, len(plan.Projection))
		for _, c := range plan.Projection {
			row[c.Name] = r[c.Expr]
		}
		if plan.Distinct {
			id := fmt.Sprint(row)
			if seen[id] {
				continue
			}
			seen[id] = true
		}
		out = append(out, row)
	}

	if plan.Offset > 0 {
		if plan.Offset >= len(out) {
			return nil, nil
		}
		out = out[plan.Offset:]
	}
	if plan.Limit > 0 && len(out) > plan.Limit {
		out = out[:plan.Limit]
	}
	return out, nil
}

func (g *memGateway) Insert(ctx context.Context, table string, values []Assignment, returning []Column) (Row, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.begin(); err != nil {
		return nil, err
	}
	r := make(map[string]any, len(values))
	for _, a := range values {
		r[a.Column] = plain(a.Value)
	}
	g.rows[table] = append(g.rows[table], r)

	out := make(Row, len(returning))
	for _, c := range returning {
		out[c.Name] = r[c.Expr]
	}
	return out, nil
}

func (g *memGateway) Update(ctx context.Context, table string, values []Assignment, where Predicate) (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.begin(); err != nil {
		return 0, err
	}
	var n int64
	for _, r := range g.rows[table] {
		if !matches(r, where) {
			continue
		}
		for _, a := range values {
			r[a.Column] = plain(a.Value)
		}
		n++
	}
	return n, nil
}

func (g *memGateway) Delete(ctx context.Context, table string, where Predicate) (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.begin(); err != nil {
		return 0, err
	}
	kept := g.rows[table][:0]
	var n int64
	for _, r := range g.rows[table] {
		if matches(r, where) {
			n++
			continue
		}
		kept = append(kept, r)
	}
	g.rows[table] = kept
	return n, nil
}

func (g *memGateway) Ping(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.begin()
}

var errGatewayDown = errors.New("connection refused")

// plain unwraps bound pgtype values to comparable Go values.
func plain(v any) any {
	switch val := v.(type) {
	case pgtype.Text:
		if !val.Valid {
			return nil
		}
		return val.String
	case pgtype.Numeric:
		f, err := val.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	case pgtype.Date:
		if !val.Valid {
			return nil
		}
		return val.Time
	case int:
		return int64(val)
	}
	return v
}

func matches(r map[string]any, p Predicate) bool {
	switch n := p.(type) {
	case nil:
		return true
	case Group:
		for _, t := range n.Terms {
			ok := matches(r, t)
			if n.Or && ok {
				return true
			}
			if !n.Or && !ok {
				return false
			}
		}
		return !n.Or
	case Comparison:
		v := r[n.Column]
		switch n.Op {
		case OpEquals:
			return compare(v, plain(n.Value)) == 0
		case OpGreater:
			return v != nil && compare(v, plain(n.Value)) > 0
		case OpLess:
			return v != nil && compare(v, plain(n.Value)) < 0
		case OpLike:
			pattern := strings.ToLower(strings.Trim(fmt.Sprint(plain(n.Value)), "%"))
			return v != nil && strings.Contains(strings.ToLower(fmt.Sprint(v)), pattern)
		case OpIn:
			for _, want := range n.Values {
				if compare(v, plain(want)) == 0 {
					return true
				}
			}
		}
	}
	return false
}

func compare(a, b any) int {
	switch av := a.(type) {
	case int64:
		if bv, ok := b.(int64); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	case float64:
		if bv, ok := b.(float64); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	case nil:
		if b == nil {
			return 0
		}
		return -1
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

// =============================================================================
// Test Entities
// =============================================================================

const testTable = "test_customers"

func init() {
	Register(Entity{
		Name:       testTable,
		Table:      testTable,
		Label:      "Test Customers",
		PrimaryKey: []string{"customernumber"},
		RecordKey:  "customernumber",
		Fields: []FieldSpec{
			{Name: "customernumber", Column: "customerNumber", Type: FieldInteger, Required: true, Numeric: true},
			{Name: "customername", Column: "customerName", Type: FieldText, Required: true},
			{Name: "city", Column: "city", Type: FieldText},
			{Name: "country", Column: "country", Type: FieldText, Required: true},
			{Name: "creditlimit", Column: "creditLimit", Type: FieldDecimal, Numeric: true},
			{Name: "firstorder", Column: "firstOrder", Type: FieldDate},
		},
		SearchColumns: []string{"customerName", "city"},
	})

	Register(Entity{
		Name:       "test_users",
		Table:      "test_users",
		Label:      "Test Users",
		PrimaryKey: []string{"id"},
		RecordKey:  "id",
		Fields: []FieldSpec{
			{Name: "id", Column: "id", Type: FieldInteger, AutoIncrement: true},
			{Name: "usuario", Column: "usuario", Type: FieldText, Required: true},
			{Name: "password", Column: "password", Type: FieldText, Required: true, WriteOnly: true, Hashed: true},
			{Name: "email", Column: "email", Type: FieldText, Required: true, Email: true},
		},
		SearchColumns: []string{"usuario", "email"},
		Confirmations: []Confirmation{
			{Field: "confirm_password", Matches: "password", Message: "Passwords do not match"},
		},
	})

	RegisterOptions(OptionSource{Name: "test_country_list", Table: testTable, Value: "country", Label: "country"})
}

func testEntity() *Entity {
	e, _ := Get(testTable)
	return e
}

// customerRows returns n customers numbered 101..100+n.
func customerRows(n int) []map[string]any {
	cities := []string{"Nantes", "Las Vegas", "Melbourne", "Boston"}
	rows := make([]map[string]any, n)
	for i := range rows {
		rows[i] = map[string]any{
			"customerNumber": int64(101 + i),
			"customerName":   fmt.Sprintf("Customer %03d", 101+i),
			"city":           cities[i%len(cities)],
			"country":        "USA",
			"creditLimit":    float64(1000 * (i + 1)),
		}
	}
	return rows
}
