package transaction

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// DeleteTransactionInput represents the input for transaction deletion.
type DeleteTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
}

// DeleteTransactionOutput lists the removed rows. Deleting an installment removes
// its whole purchase.
type DeleteTransactionOutput struct {
	Deleted []uuid.UUID
}

// DeleteTransactionUseCase handles transaction deletion logic.
type DeleteTransactionUseCase struct {
	uow       adapter.UnitOfWork
	engine    *ledger.Engine
	publisher adapter.EventPublisher
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(uow adapter.UnitOfWork, engine *ledger.Engine, publisher adapter.EventPublisher) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{
		uow:       uow,
		engine:    engine,
		publisher: publisher,
	}
}

// Execute performs the transaction deletion.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) (*DeleteTransactionOutput, error) {
	var rows []*entity.Transaction
	err := uc.uow.Do(ctx, func(ctx context.Context, repos adapter.Repositories) error {
		var err error
		rows, err = uc.engine.DeleteTransaction(ctx, repos, input.UserID, input.TransactionID)
		return err
	})
	if err != nil {
		return nil, err
	}

	output := &DeleteTransactionOutput{Deleted: make([]uuid.UUID, 0, len(rows))}
	events := make([]entity.LedgerEvent, 0, len(rows))
	for _, row := range rows {
		output.Deleted = append(output.Deleted, row.ID)
		events = append(events, entity.NewLedgerEvent(entity.EventTransactionDeleted, row.UserID, row.ID, nil))
	}

	slog.Info("Transaction deleted", "userID", input.UserID, "transactionID", input.TransactionID, "rows", len(rows))
	ledger.PublishEvents(ctx, uc.publisher, events...)

	return output, nil
}
