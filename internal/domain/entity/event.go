package entity

import (
	"time"

	"github.com/google/uuid"
)

// EventType names a committed ledger change.
type EventType string

const (
	EventTransactionRecorded EventType = "transaction.recorded"
	EventTransactionUpdated  EventType = "transaction.updated"
	EventTransactionDeleted  EventType = "transaction.deleted"
	EventStatementClosed     EventType = "statement.closed"
	EventStatementPaid       EventType = "statement.paid"
	EventBillsGenerated      EventType = "bill.generated"
	EventBillPaid            EventType = "bill.paid"
)

// LedgerEvent describes a change after its unit of work committed.
type LedgerEvent struct {
	ID         uuid.UUID         `json:"id"`
	Type       EventType         `json:"type"`
	UserID     uuid.UUID         `json:"user_id"`
	EntityID   uuid.UUID         `json:"entity_id"`
	OccurredAt time.Time         `json:"occurred_at"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// NewLedgerEvent creates an event for entityID owned by userID.
func NewLedgerEvent(eventType EventType, userID, entityID uuid.UUID, attributes map[string]string) LedgerEvent {
	return LedgerEvent{
		ID:         uuid.New(),
		Type:       eventType,
		UserID:     userID,
		EntityID:   entityID,
		OccurredAt: time.Now().UTC(),
		Attributes: attributes,
	}
}
