package core

import "strings"

// ListRequest carries the list parameters of one call.
type ListRequest struct {
	FieldName  string // Optional equality filter column
	FieldValue string // Value for FieldName
	Search     string // Free-text search across the entity's search columns
	OrderBy    string // Sort field; defaults to the record key
	OrderType  string // "asc" or "desc"; anything else means desc
	Page       int
	Limit      int
}

// DefaultDirection is applied when no valid sort direction is given.
const DefaultDirection = Desc

// BuildListPlan translates a list request into a query plan for the given
// projection context. It never touches the store.
//
// The field filter only accepts declared fields of the entity, matched by
// logical name or physical column. Write-only fields are rejected. The
// value is converted to the field's type before binding.
func BuildListPlan(e *Entity, req ListRequest, fc FieldContext) (QueryPlan, error) {
	var filter Predicate
	name := strings.TrimSpace(req.FieldName)
	if name != "" && req.FieldValue != "" {
		f, ok := e.Field(name)
		if !ok || f.WriteOnly {
			return QueryPlan{}, invalid("fieldname", "unknown field "+name)
		}
		v, err := ConvertValue(f, req.FieldValue)
		if err != nil {
			return QueryPlan{}, invalid(f.Name, err.Error())
		}
		filter = Comparison{Column: f.Column, Op: OpEquals, Value: v}
	}

	order, err := resolveOrder(e, req.OrderBy, req.OrderType)
	if err != nil {
		return QueryPlan{}, err
	}

	return QueryPlan{
		Table:      e.Table,
		Where:      And(filter, SearchPredicate(e, req.Search)),
		Projection: e.Resolve(fc),
		OrderBy:    orderWithKey(e, order),
	}, nil
}

// SearchPredicate ORs a LIKE '%search%' comparison over every search
// column. Empty search yields nil.
func SearchPredicate(e *Entity, search string) Predicate {
	search = strings.TrimSpace(search)
	if search == "" {
		return nil
	}
	pattern := "%" + search + "%"

	cols := e.SearchFields()
	terms := make([]Predicate, len(cols))
	for i, col := range cols {
		terms[i] = Comparison{Column: col, Op: OpLike, Value: pattern}
	}
	return Or(terms...)
}

// KeyPredicate matches rows whose record key is one of values.
func KeyPredicate(e *Entity, values ...any) Predicate {
	col := e.KeyField().Column
	if len(values) == 1 {
		return Comparison{Column: col, Op: OpEquals, Value: values[0]}
	}
	return Comparison{Column: col, Op: OpIn, Values: values}
}

// resolveOrder validates the sort field against the entity's fields and
// normalizes the direction.
func resolveOrder(e *Entity, field, dir string) (Order, error) {
	col := e.KeyField().Column
	if field = strings.TrimSpace(field); field != "" {
		f, ok := e.Field(field)
		if !ok || f.WriteOnly {
			return Order{}, invalid("orderby", "unknown field "+field)
		}
		col = f.Column
	}
	return Order{Column: col, Dir: NormalizeDirection(dir)}, nil
}

// orderWithKey appends the record key as a tie-breaker so rows sharing a
// sort value keep a stable order across LIMIT/OFFSET windows.
func orderWithKey(e *Entity, order Order) []Order {
	key := e.KeyField().Column
	if order.Column == key {
		return []Order{order}
	}
	return []Order{order, {Column: key, Dir: order.Dir}}
}

// NormalizeDirection maps a caller-supplied direction to ASC or DESC.
func NormalizeDirection(dir string) Direction {
	switch strings.ToUpper(strings.TrimSpace(dir)) {
	case string(Asc):
		return Asc
	case string(Desc):
		return Desc
	default:
		return DefaultDirection
	}
}
