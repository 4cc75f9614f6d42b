package core

import (
	"context"
	"strings"
)

// FieldType represents the storage type of an entity field.
type FieldType int

const (
	FieldText FieldType = iota
	FieldInteger
	FieldDecimal
	FieldDate
)

// String returns the lowercase type name used in error messages and the CLI.
func (ft FieldType) String() string {
	switch ft {
	case FieldInteger:
		return "integer"
	case FieldDecimal:
		return "decimal"
	case FieldDate:
		return "date"
	default:
		return "text"
	}
}

// FieldSpec declares one field of an entity and its input rules.
type FieldSpec struct {
	Name          string    // Logical name used in requests and responses: "customernumber"
	Column        string    // Physical column: "customerNumber"
	Type          FieldType // Storage type, drives input conversion
	Required      bool      // Must be present and non-blank on create
	Numeric       bool      // Input must look like a number
	Email         bool      // Input must be an email address
	WriteOnly     bool      // Accepted on create, never projected
	Hashed        bool      // Stored as a bcrypt hash
	AutoIncrement bool      // Assigned by the store, never accepted as input
}

// Confirmation is a cross-field equality rule checked on create.
// The confirming field is input-only and is never stored.
type Confirmation struct {
	Field   string // "confirm_password"
	Matches string // "password"
	Message string // "Passwords do not match"
}

// Entity is the immutable descriptor of one managed table.
type Entity struct {
	Name          string         // Route segment and registry key: "customers"
	Table         string         // Physical table name
	Label         string         // Display name used in report titles
	PrimaryKey    []string       // Logical names of the primary key fields
	RecordKey     string         // Logical name of the field addressed by recid
	Fields        []FieldSpec    // Ordered field declarations
	SearchColumns []string       // Physical columns matched by free-text search
	Confirmations []Confirmation // Cross-field rules applied on create
}

// Field looks up a declared field by logical name or physical column,
// ignoring case.
func (e *Entity) Field(name string) (FieldSpec, bool) {
	name = strings.TrimSpace(name)
	for _, f := range e.Fields {
		if strings.EqualFold(f.Name, name) || strings.EqualFold(f.Column, name) {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// KeyField returns the field addressed by recid.
func (e *Entity) KeyField() FieldSpec {
	f, _ := e.Field(e.RecordKey)
	return f
}

// KeyColumn returns the projection of the record key.
func (e *Entity) KeyColumn() Column {
	f := e.KeyField()
	return Column{Name: f.Name, Expr: f.Column}
}

// Row is a single record keyed by logical field name.
type Row map[string]any

// Assignment sets one physical column to a converted value.
type Assignment struct {
	Column string
	Value  any
}

// Gateway executes query plans against a relational store.
// Implementations own connection pooling and acquisition timeouts.
type Gateway interface {
	// Count returns the number of rows in table matching where.
	Count(ctx context.Context, table string, where Predicate) (int64, error)

	// Select runs the plan and returns rows keyed by projection name.
	Select(ctx context.Context, plan QueryPlan) ([]Row, error)

	// Insert adds one row and returns it using the given projection.
	Insert(ctx context.Context, table string, values []Assignment, returning []Column) (Row, error)

	// Update applies values to every row matching where and returns the affected count.
	Update(ctx context.Context, table string, values []Assignment, where Predicate) (int64, error)

	// Delete removes every row matching where and returns the affected count.
	Delete(ctx context.Context, table string, where Predicate) (int64, error)

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error
}

// OptionSource declares a value/label lookup list used to populate
// select inputs, e.g. "officecode_option_list".
type OptionSource struct {
	Name  string
	Table string
	Value string // Physical column returned as "value"
	Label string // Physical column returned as "label"
}

// Option is one entry of an option list.
type Option struct {
	Value any `json:"value"`
	Label any `json:"label"`
}
