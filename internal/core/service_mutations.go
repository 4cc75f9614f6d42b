package core

import (
	"context"
	"fmt"
	"log/slog"
)

// maxHashedLength is the longest input bcrypt accepts.
const maxHashedLength = 72

// Add validates in, inserts a new record and returns it using the view projection.
// Absent optional fields are left to the store's defaults.
func (s *Service) Add(ctx context.Context, name string, in Input) (Row, error) {
	e, err := s.Entity(name)
	if err != nil {
		return nil, err
	}

	if err := validateInput(e, ModeCreate, in); err != nil {
		return nil, err
	}

	var values []Assignment
	for _, f := range e.Fields {
		raw, present := in[f.Name]
		if f.AutoIncrement || !present {
			continue
		}
		a, err := s.assign(f, raw)
		if err != nil {
			return nil, err
		}
		values = append(values, a)
	}

	row, err := s.gw.Insert(ctx, e.Table, values, e.Resolve(ContextView))
	if err != nil {
		return nil, queryErr("insert", err)
	}

	entry := newAuditEntry(ctx, ActionCreate, e.Name)
	entry.Keys = []any{row[e.KeyField().Name]}
	entry.RowsAffected = 1
	s.audit.Record(ctx, entry)

	return row, nil
}

// Edit validates the fields present in in, updates every record whose key
// equals recid and returns the edit projection of the updated record.
// Write-only and auto-increment fields cannot be edited.
func (s *Service) Edit(ctx context.Context, name, recid string, in Input) (Row, error) {
	e, err := s.Entity(name)
	if err != nil {
		return nil, err
	}

	key, err := keyValue(e, recid)
	if err != nil {
		return nil, err
	}

	if err := validateInput(e, ModeUpdate, in); err != nil {
		return nil, err
	}

	var values []Assignment
	newKey := key
	for _, f := range e.Fields {
		raw, present := in[f.Name]
		if f.AutoIncrement || f.WriteOnly || !present {
			continue
		}
		a, err := s.assign(f, raw)
		if err != nil {
			return nil, err
		}
		values = append(values, a)
		if f.Name == e.KeyField().Name {
			newKey = a.Value
		}
	}

	if len(values) == 0 {
		return s.selectOne(ctx, e, key, ContextEdit)
	}

	n, err := s.gw.Update(ctx, e.Table, values, KeyPredicate(e, key))
	if err != nil {
		return nil, queryErr("update", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("%s %s: %w", e.Name, recid, ErrNotFound)
	}

	entry := newAuditEntry(ctx, ActionUpdate, e.Name)
	entry.Keys = []any{recid}
	entry.RowsAffected = n
	s.audit.Record(ctx, entry)

	return s.selectOne(ctx, e, newKey, ContextEdit)
}

// Delete removes every record whose key is listed in the comma-separated
// recids and returns the keys that matched. Keys that match nothing are
// not an error. Matching rows are read before removal and passed to the
// audit sink.
func (s *Service) Delete(ctx context.Context, name, recids string) ([]any, error) {
	e, err := s.Entity(name)
	if err != nil {
		return nil, err
	}

	key := e.KeyField()
	values, _, err := ParseKeys(key, recids)
	if err != nil {
		return nil, invalid("recid", err.Error())
	}
	if len(values) == 0 {
		return nil, invalid("recid", "required field is empty")
	}

	where := KeyPredicate(e, values...)
	rows, err := s.gw.Select(ctx, QueryPlan{
		Table:      e.Table,
		Where:      where,
		Projection: e.Resolve(ContextView),
	})
	if err != nil {
		return nil, queryErr("select", err)
	}

	deleted := matchedKeys(rows, key.Name)
	if len(rows) == 0 {
		return deleted, nil
	}

	n, err := s.gw.Delete(ctx, e.Table, where)
	if err != nil {
		return nil, queryErr("delete", err)
	}

	entry := newAuditEntry(ctx, ActionDelete, e.Name)
	entry.Keys = deleted
	entry.Rows = rows
	entry.RowsAffected = n
	s.audit.Record(ctx, entry)

	return deleted, nil
}

// assign converts raw input for f, hashing it when the field is hashed.
func (s *Service) assign(f FieldSpec, raw string) (Assignment, error) {
	if f.Hashed && raw != "" {
		if len(raw) > maxHashedLength {
			return Assignment{}, invalid(f.Name, "value is too long")
		}
		hashed, err := s.hash(raw)
		if err != nil {
			return Assignment{}, err
		}
		raw = hashed
	}

	v, err := ConvertValue(f, raw)
	if err != nil {
		return Assignment{}, invalid(f.Name, err.Error())
	}
	return Assignment{Column: f.Column, Value: v}, nil
}

// validateInput runs the record validator and logs input keys that no
// field declares.
func validateInput(e *Entity, mode Mode, in Input) error {
	v := NewRecordValidator(e, mode)
	if errs := v.Validate(in); errs != nil {
		return errs
	}
	if unknown := v.UnknownFields(in); len(unknown) > 0 {
		slog.Debug("ignoring unknown fields", "entity", e.Name, "fields", unknown)
	}
	return nil
}

// matchedKeys returns the distinct key values of rows in row order.
func matchedKeys(rows []Row, key string) []any {
	keys := make([]any, 0, len(rows))
	seen := make(map[string]bool, len(rows))
	for _, r := range rows {
		v := r[key]
		id := fmt.Sprint(v)
		if seen[id] {
			continue
		}
		seen[id] = true
		keys = append(keys, v)
	}
	return keys
}
