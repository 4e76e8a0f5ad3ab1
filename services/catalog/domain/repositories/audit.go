package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AuditRecord is an immutable description of a logical catalog change,
// appended to the durable audit log before the matching event is published.
type AuditRecord struct {
	ID          uuid.UUID
	AggregateID uuid.UUID
	EventType   string
	Payload     []byte
	CreatedAt   time.Time
}

// AuditLog is an append-only durable log. Append must complete before the
// corresponding outbound publish is attempted; a record with no matching
// published event is the evidence trail for external reconciliation.
type AuditLog interface {
	Append(ctx context.Context, record AuditRecord) error
}
