// Package admin provides administrative operations for database management.
package admin

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/JonMunkholm/salesadmin/internal/core"
)

// ResetTimeout is the maximum duration for database reset operations.
const ResetTimeout = 30 * time.Second

// ResetOrder lists entities children first so foreign keys never block a
// delete. Registered entities missing from the list are cleared last.
var ResetOrder = []string{
	"orderdetails",
	"payments",
	"orders",
	"customers",
	"employees",
	"offices",
	"products",
	"productlines",
	"user_seg",
}

// TableReset reports the rows removed from one table.
type TableReset struct {
	Entity string
	Table  string
	Rows   int64
}

// Resetter clears entity tables through a gateway.
type Resetter struct {
	gw core.Gateway
}

// NewResetter creates a Resetter over gw.
func NewResetter(gw core.Gateway) *Resetter {
	return &Resetter{gw: gw}
}

// ResetAll deletes every row of every registered entity.
// This is a destructive operation - use with caution.
func (r *Resetter) ResetAll(ctx context.Context) ([]TableReset, error) {
	ctx, cancel := context.WithTimeout(ctx, ResetTimeout)
	defer cancel()

	var out []TableReset
	for _, e := range resetPlan() {
		n, err := r.gw.Delete(ctx, e.Table, nil)
		if err != nil {
			return out, fmt.Errorf("reset %s: %w", e.Name, err)
		}
		slog.Info("table reset", "entity", e.Name, "rows", n)
		out = append(out, TableReset{Entity: e.Name, Table: e.Table, Rows: n})
	}
	return out, nil
}

// resetPlan orders the registered entities for deletion.
func resetPlan() []*core.Entity {
	planned := make(map[string]bool, len(ResetOrder))
	var plan []*core.Entity
	for _, name := range ResetOrder {
		if e, ok := core.Get(name); ok {
			plan = append(plan, e)
			planned[name] = true
		}
	}
	for _, e := range core.All() {
		if !planned[e.Name] {
			plan = append(plan, e)
		}
	}
	return plan
}
