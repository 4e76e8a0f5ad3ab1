package postgres

import (
	"context"
	"fmt"

	"github.com/ghuser/gamecatalog/pkg/database"
	"github.com/ghuser/gamecatalog/services/catalog/domain/repositories"
)

// AuditLog implements repositories.AuditLog on the append-only audit_events
// table. Rows are never updated or deleted by the application.
type AuditLog struct {
	db *database.Database
}

// NewAuditLog returns an AuditLog backed by the given connection pool.
func NewAuditLog(db *database.Database) *AuditLog {
	return &AuditLog{db: db}
}

// Append inserts one audit record. The insert must succeed before the caller
// attempts the matching outbound publish.
func (l *AuditLog) Append(ctx context.Context, record repositories.AuditRecord) error {
	const q = `
		INSERT INTO audit_events (id, aggregate_id, event_type, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := l.db.DB().ExecContext(ctx, q,
		record.ID, record.AggregateID, record.EventType, record.Payload, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append audit record: %w", err)
	}
	return nil
}
