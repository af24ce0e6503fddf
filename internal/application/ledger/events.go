package ledger

import (
	"context"
	"log/slog"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// PublishEvents hands committed changes to the publisher. Failures are logged and
// never undo the committed work.
func PublishEvents(ctx context.Context, publisher adapter.EventPublisher, events ...entity.LedgerEvent) {
	if publisher == nil || len(events) == 0 {
		return
	}
	if err := publisher.Publish(ctx, events...); err != nil {
		slog.Error("Failed to publish ledger events", "count", len(events), "error", err)
	}
}
