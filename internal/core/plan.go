package core

// Operator is a comparison operator allowed in a predicate.
type Operator string

const (
	OpEquals  Operator = "="
	OpLike    Operator = "LIKE"
	OpGreater Operator = ">"
	OpLess    Operator = "<"
	OpIn      Operator = "IN"
)

// Predicate is a node of a WHERE tree: either a Comparison or a Group.
type Predicate interface {
	isPredicate()
}

// Comparison compares one physical column against bound values.
// OpIn uses Values; every other operator uses Value.
type Comparison struct {
	Column string
	Op     Operator
	Value  any
	Values []any
}

func (Comparison) isPredicate() {}

// Group combines terms with AND, or with OR when Or is set.
type Group struct {
	Or    bool
	Terms []Predicate
}

func (Group) isPredicate() {}

// And combines the non-nil terms with AND. A single term is returned
// unwrapped and no terms yield nil.
func And(terms ...Predicate) Predicate {
	return group(false, terms)
}

// Or combines the non-nil terms with OR. A single term is returned
// unwrapped and no terms yield nil.
func Or(terms ...Predicate) Predicate {
	return group(true, terms)
}

func group(or bool, terms []Predicate) Predicate {
	kept := make([]Predicate, 0, len(terms))
	for _, t := range terms {
		if t == nil {
			continue
		}
		if g, ok := t.(Group); ok && len(g.Terms) == 0 {
			continue
		}
		kept = append(kept, t)
	}
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	}
	return Group{Or: or, Terms: kept}
}

// Params returns the bound values of a predicate tree in the order a
// left-to-right SQL rendering would reference them.
func Params(p Predicate) []any {
	var out []any
	var walk func(Predicate)
	walk = func(p Predicate) {
		switch n := p.(type) {
		case Comparison:
			if n.Op == OpIn {
				out = append(out, n.Values...)
			} else {
				out = append(out, n.Value)
			}
		case Group:
			for _, t := range n.Terms {
				walk(t)
			}
		}
	}
	if p != nil {
		walk(p)
	}
	return out
}

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Order sorts by one physical column.
type Order struct {
	Column string
	Dir    Direction
}

// QueryPlan is a store-agnostic description of a single SELECT.
type QueryPlan struct {
	Table      string
	Where      Predicate
	Projection []Column
	OrderBy    []Order
	Distinct   bool
	Limit      int // 0 means unbounded
	Offset     int
}

// Params returns the plan's bound predicate values.
func (p QueryPlan) Params() []any {
	return Params(p.Where)
}

// WithWindow returns a copy of the plan restricted to limit rows from offset.
func (p QueryPlan) WithWindow(limit, offset int) QueryPlan {
	p.Limit = limit
	p.Offset = offset
	return p
}
