// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// EventPublisher delivers ledger events after their unit of work committed.
type EventPublisher interface {
	Publish(ctx context.Context, events ...entity.LedgerEvent) error
}
