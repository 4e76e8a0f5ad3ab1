package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/gamecatalog/pkg/logger"
	"github.com/ghuser/gamecatalog/services/catalog/domain/events"
	"github.com/ghuser/gamecatalog/services/catalog/domain/repositories"
)

// EventSink is the outbound publish capability of the event bus.
type EventSink interface {
	Publish(ctx context.Context, topic string, msgs ...*message.Message) error
}

// AuditedPublisher enforces audit-before-publish: an immutable audit record
// describing the change is appended to the durable log first, and the
// outbound publish is attempted only after the append succeeds. A failed
// publish is returned to the caller, but the audit record remains as the
// durable evidence of intent; replay is an external reconciliation concern.
type AuditedPublisher struct {
	audit repositories.AuditLog
	bus   EventSink
	log   logger.Logger
}

// NewAuditedPublisher returns an AuditedPublisher over the given log and bus.
func NewAuditedPublisher(audit repositories.AuditLog, bus EventSink, log logger.Logger) *AuditedPublisher {
	return &AuditedPublisher{audit: audit, bus: bus, log: log}
}

// Publish appends the audit record and then publishes the event to topic.
func (p *AuditedPublisher) Publish(ctx context.Context, topic string, aggregateID uuid.UUID, evtType events.Type, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", evtType, err)
	}

	record := repositories.AuditRecord{
		ID:          uuid.New(),
		AggregateID: aggregateID,
		EventType:   string(evtType),
		Payload:     body,
		CreatedAt:   time.Now().UTC(),
	}
	if err := p.audit.Append(ctx, record); err != nil {
		return fmt.Errorf("audit append for %s: %w", evtType, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), body)
	msg.Metadata.Set(events.MetadataEventType, string(evtType))
	if err := p.bus.Publish(ctx, topic, msg); err != nil {
		p.log.ErrorContext(ctx, "publish failed after audit append",
			"topic", topic, "event_type", evtType, "audit_id", record.ID, "error", err)
		return fmt.Errorf("publish %s: %w", evtType, err)
	}
	return nil
}
