package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// UpdateTransactionInput represents the input for transaction update.
type UpdateTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
	Date          *time.Time
	Description   *string
	Amount        *decimal.Decimal
	CategoryID    *uuid.UUID
	ClearCategory bool // Set to true to remove category
	Notes         *string
	ProductID     *uuid.UUID
}

// UpdateTransactionOutput represents the output of transaction update.
type UpdateTransactionOutput struct {
	Transaction *entity.Transaction
}

// UpdateTransactionUseCase handles transaction update logic.
type UpdateTransactionUseCase struct {
	uow       adapter.UnitOfWork
	engine    *ledger.Engine
	publisher adapter.EventPublisher
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(uow adapter.UnitOfWork, engine *ledger.Engine, publisher adapter.EventPublisher) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		uow:       uow,
		engine:    engine,
		publisher: publisher,
	}
}

// Execute performs the transaction update.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	patch := ledger.TransactionPatch{
		Amount:        input.Amount,
		Date:          input.Date,
		Description:   input.Description,
		Notes:         input.Notes,
		CategoryID:    input.CategoryID,
		ClearCategory: input.ClearCategory,
		ProductID:     input.ProductID,
	}

	var txn *entity.Transaction
	err := uc.uow.Do(ctx, func(ctx context.Context, repos adapter.Repositories) error {
		var err error
		txn, err = uc.engine.UpdateTransaction(ctx, repos, input.UserID, input.TransactionID, patch)
		return err
	})
	if err != nil {
		return nil, err
	}

	ledger.PublishEvents(ctx, uc.publisher, entity.NewLedgerEvent(
		entity.EventTransactionUpdated, txn.UserID, txn.ID,
		map[string]string{"amount": txn.Amount.String()},
	))

	return &UpdateTransactionOutput{Transaction: txn}, nil
}
