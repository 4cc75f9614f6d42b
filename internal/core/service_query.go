package core

import (
	"context"
	"encoding/json"
	"fmt"
)

// RecordSet is a fully resolved, projected record set handed to an export
// renderer.
type RecordSet struct {
	Entity   *Entity
	Filename string // Base file name without extension: "customerslist-report"
	Columns  []Column
	Records  []Row

	// Single marks a one-record view export, rendered as label/value pairs.
	Single bool
}

// RecordView is a single record with its neighbouring keys.
type RecordView struct {
	Record   Row
	Adjacent AdjacentKeys
}

// MarshalJSON flattens the record and adds nextRecordId and previousRecordId.
func (v RecordView) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(v.Record)+2)
	for k, val := range v.Record {
		out[k] = val
	}
	out["nextRecordId"] = v.Adjacent.Next
	out["previousRecordId"] = v.Adjacent.Previous
	return json.Marshal(out)
}

// List returns one page of an entity's records.
func (s *Service) List(ctx context.Context, name string, req ListRequest) (*Page, error) {
	e, err := s.Entity(name)
	if err != nil {
		return nil, err
	}

	plan, err := BuildListPlan(e, req, ContextList)
	if err != nil {
		return nil, err
	}
	return s.pager.Paginate(ctx, plan, req.Page, req.Limit)
}

// ExportList returns every record matching the request's filter and search,
// in the requested order, using the export projection. Paging is ignored.
func (s *Service) ExportList(ctx context.Context, name string, req ListRequest) (*RecordSet, error) {
	e, err := s.Entity(name)
	if err != nil {
		return nil, err
	}

	plan, err := BuildListPlan(e, req, ContextExport)
	if err != nil {
		return nil, err
	}

	rows, err := s.gw.Select(ctx, plan)
	if err != nil {
		return nil, queryErr("select", err)
	}
	return &RecordSet{
		Entity:   e,
		Filename: e.Name + "list-report",
		Columns:  plan.Projection,
		Records:  rows,
	}, nil
}

// View returns the record addressed by recid with its adjacent keys.
func (s *Service) View(ctx context.Context, name, recid string) (*RecordView, error) {
	e, err := s.Entity(name)
	if err != nil {
		return nil, err
	}

	key, err := keyValue(e, recid)
	if err != nil {
		return nil, err
	}

	row, err := s.selectOne(ctx, e, key, ContextView)
	if err != nil {
		return nil, err
	}

	adj, err := s.locator.Adjacent(ctx, e.Table, e.KeyColumn(), key)
	if err != nil {
		return nil, err
	}
	return &RecordView{Record: row, Adjacent: adj}, nil
}

// ExportView returns the records addressed by recid using the export projection.
func (s *Service) ExportView(ctx context.Context, name, recid string) (*RecordSet, error) {
	e, err := s.Entity(name)
	if err != nil {
		return nil, err
	}

	key, err := keyValue(e, recid)
	if err != nil {
		return nil, err
	}

	cols := e.Resolve(ContextExport)
	rows, err := s.gw.Select(ctx, QueryPlan{
		Table:      e.Table,
		Where:      KeyPredicate(e, key),
		Projection: cols,
	})
	if err != nil {
		return nil, queryErr("select", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s %s: %w", e.Name, recid, ErrNotFound)
	}
	return &RecordSet{
		Entity:   e,
		Filename: e.Name + "view-report",
		Columns:  cols,
		Records:  rows[:1],
		Single:   true,
	}, nil
}

// EditRecord returns the edit projection of the record addressed by recid.
func (s *Service) EditRecord(ctx context.Context, name, recid string) (Row, error) {
	e, err := s.Entity(name)
	if err != nil {
		return nil, err
	}

	key, err := keyValue(e, recid)
	if err != nil {
		return nil, err
	}
	return s.selectOne(ctx, e, key, ContextEdit)
}

// Options returns the value/label pairs of a registered option list,
// ordered by label.
func (s *Service) Options(ctx context.Context, name string) ([]Option, error) {
	src, ok := GetOptions(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOptionList, name)
	}

	rows, err := s.gw.Select(ctx, QueryPlan{
		Table:    src.Table,
		Distinct: true,
		Projection: []Column{
			{Name: "value", Expr: src.Value},
			{Name: "label", Expr: src.Label},
		},
		OrderBy: []Order{{Column: src.Label, Dir: Asc}},
	})
	if err != nil {
		return nil, queryErr("select", err)
	}

	opts := make([]Option, len(rows))
	for i, r := range rows {
		opts[i] = Option{Value: r["value"], Label: r["label"]}
	}
	return opts, nil
}

// selectOne fetches the first record whose key equals key.
func (s *Service) selectOne(ctx context.Context, e *Entity, key any, fc FieldContext) (Row, error) {
	rows, err := s.gw.Select(ctx, QueryPlan{
		Table:      e.Table,
		Where:      KeyPredicate(e, key),
		Projection: e.Resolve(fc),
		Limit:      1,
	})
	if err != nil {
		return nil, queryErr("select", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", e.Name, ErrNotFound)
	}
	return rows[0], nil
}
