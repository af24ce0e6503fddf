// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// RecordIncomeInput represents the input for recording income.
type RecordIncomeInput struct {
	UserID      uuid.UUID
	ProductID   uuid.UUID
	Amount      decimal.Decimal
	Description string
	Notes       string
	CategoryID  *uuid.UUID
	Date        time.Time
}

// RecordIncomeOutput represents the recorded income.
type RecordIncomeOutput struct {
	Transaction *entity.Transaction
}

// RecordIncomeUseCase records money received into a product.
type RecordIncomeUseCase struct {
	uow       adapter.UnitOfWork
	engine    *ledger.Engine
	publisher adapter.EventPublisher
}

// NewRecordIncomeUseCase creates a new RecordIncomeUseCase instance.
func NewRecordIncomeUseCase(uow adapter.UnitOfWork, engine *ledger.Engine, publisher adapter.EventPublisher) *RecordIncomeUseCase {
	return &RecordIncomeUseCase{
		uow:       uow,
		engine:    engine,
		publisher: publisher,
	}
}

// Execute records the income in one unit of work.
func (uc *RecordIncomeUseCase) Execute(ctx context.Context, input RecordIncomeInput) (*RecordIncomeOutput, error) {
	var txn *entity.Transaction
	err := uc.uow.Do(ctx, func(ctx context.Context, repos adapter.Repositories) error {
		var err error
		txn, err = uc.engine.RecordIncome(ctx, repos, ledger.IncomeSpec{
			UserID:      input.UserID,
			ProductID:   input.ProductID,
			Amount:      input.Amount,
			Description: input.Description,
			Notes:       input.Notes,
			CategoryID:  input.CategoryID,
			Date:        input.Date,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Income recorded",
		"userID", input.UserID,
		"transactionID", txn.ID,
		"productID", input.ProductID,
		"amount", txn.Amount.String(),
	)
	ledger.PublishEvents(ctx, uc.publisher, recordedEvent(txn))

	return &RecordIncomeOutput{Transaction: txn}, nil
}

func recordedEvent(txn *entity.Transaction) entity.LedgerEvent {
	return entity.NewLedgerEvent(entity.EventTransactionRecorded, txn.UserID, txn.ID, map[string]string{
		"type":   string(txn.Type),
		"amount": txn.Amount.String(),
		"date":   txn.Date.Format(time.DateOnly),
	})
}
