package core

import (
	"context"
	"time"

	"github.com/JonMunkholm/salesadmin/internal/logging"
	"github.com/google/uuid"
)

// AuditAction represents the type of mutation being audited.
type AuditAction string

const (
	ActionCreate AuditAction = "create"
	ActionUpdate AuditAction = "update"
	ActionDelete AuditAction = "delete"
)

// AuditEntry describes one mutation. Deletes carry the rows read before
// removal so the removed data can be reconstructed from the log.
type AuditEntry struct {
	BatchID      string      `json:"batchId"`
	Action       AuditAction `json:"action"`
	Entity       string      `json:"entity"`
	Keys         []any       `json:"keys"`
	Rows         []Row       `json:"rows,omitempty"`
	RowsAffected int64       `json:"rowsAffected"`
	IPAddress    string      `json:"ipAddress,omitempty"`
	UserAgent    string      `json:"userAgent,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// AuditSink receives audit entries. Implementations must not block for long;
// they run inside the request.
type AuditSink interface {
	Record(ctx context.Context, entry AuditEntry)
}

// AuditFunc adapts a function to AuditSink.
type AuditFunc func(ctx context.Context, entry AuditEntry)

// Record calls f.
func (f AuditFunc) Record(ctx context.Context, entry AuditEntry) {
	f(ctx, entry)
}

// LogAuditSink writes audit entries to the structured logger.
type LogAuditSink struct{}

// Record logs the entry at info level with the request id attached.
func (LogAuditSink) Record(ctx context.Context, entry AuditEntry) {
	logging.WithFields(ctx,
		"batch_id", entry.BatchID,
		"entity", entry.Entity,
		"ip", entry.IPAddress,
		"user_agent", entry.UserAgent,
	).Info("audit",
		"action", entry.Action,
		"keys", entry.Keys,
		"rows_affected", entry.RowsAffected,
		"rows", entry.Rows,
	)
}

// newAuditEntry stamps an entry with a batch id, time and client metadata.
func newAuditEntry(ctx context.Context, action AuditAction, entity string) AuditEntry {
	meta := RequestMetaFromContext(ctx)
	return AuditEntry{
		BatchID:   uuid.NewString(),
		Action:    action,
		Entity:    entity,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		CreatedAt: time.Now().UTC(),
	}
}
