package core

import "strings"

// FieldContext names the place a projection is used.
type FieldContext int

const (
	ContextList FieldContext = iota
	ContextView
	ContextEdit
	ContextExport
)

func (c FieldContext) String() string {
	switch c {
	case ContextView:
		return "view"
	case ContextEdit:
		return "edit"
	case ContextExport:
		return "export"
	default:
		return "list"
	}
}

// Column is one projected expression and the name it is returned under.
type Column struct {
	Name string // Logical name (result alias)
	Expr string // Physical column
}

// Resolve returns the ordered projection for the given context.
//
// All four contexts currently resolve to the same projection: every
// readable field in declaration order.
func (e *Entity) Resolve(_ FieldContext) []Column {
	cols := make([]Column, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.WriteOnly {
			continue
		}
		cols = append(cols, Column{Name: f.Name, Expr: f.Column})
	}
	return cols
}

// SearchFields returns the physical columns used for free-text matching.
// It may include columns that are never projected.
func (e *Entity) SearchFields() []string {
	out := make([]string, len(e.SearchColumns))
	copy(out, e.SearchColumns)
	return out
}

// Headers derives report column headers from logical names:
// "customernumber" -> "Customernumber".
func Headers(cols []Column) []string {
	headers := make([]string, len(cols))
	for i, c := range cols {
		if c.Name == "" {
			continue
		}
		headers[i] = strings.ToUpper(c.Name[:1]) + c.Name[1:]
	}
	return headers
}
