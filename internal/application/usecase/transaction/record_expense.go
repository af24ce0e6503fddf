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

// RecordExpenseInput represents the input for recording an expense. Installments
// above 1 split a credit card purchase into monthly rows.
type RecordExpenseInput struct {
	UserID       uuid.UUID
	ProductID    uuid.UUID
	Amount       decimal.Decimal
	Description  string
	Notes        string
	CategoryID   *uuid.UUID
	Date         time.Time
	Installments int
}

// RecordExpenseOutput holds the stored rows, one per installment.
type RecordExpenseOutput struct {
	Transactions []*entity.Transaction
}

// RecordExpenseUseCase records money spent from a product.
type RecordExpenseUseCase struct {
	uow       adapter.UnitOfWork
	engine    *ledger.Engine
	publisher adapter.EventPublisher
}

// NewRecordExpenseUseCase creates a new RecordExpenseUseCase instance.
func NewRecordExpenseUseCase(uow adapter.UnitOfWork, engine *ledger.Engine, publisher adapter.EventPublisher) *RecordExpenseUseCase {
	return &RecordExpenseUseCase{
		uow:       uow,
		engine:    engine,
		publisher: publisher,
	}
}

// Execute records the expense in one unit of work.
func (uc *RecordExpenseUseCase) Execute(ctx context.Context, input RecordExpenseInput) (*RecordExpenseOutput, error) {
	var rows []*entity.Transaction
	err := uc.uow.Do(ctx, func(ctx context.Context, repos adapter.Repositories) error {
		var err error
		rows, err = uc.engine.RecordExpense(ctx, repos, ledger.ExpenseSpec{
			UserID:       input.UserID,
			ProductID:    input.ProductID,
			Amount:       input.Amount,
			Description:  input.Description,
			Notes:        input.Notes,
			CategoryID:   input.CategoryID,
			Date:         input.Date,
			Installments: input.Installments,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Expense recorded",
		"userID", input.UserID,
		"productID", input.ProductID,
		"amount", input.Amount.String(),
		"rows", len(rows),
	)

	events := make([]entity.LedgerEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, recordedEvent(row))
	}
	ledger.PublishEvents(ctx, uc.publisher, events...)

	return &RecordExpenseOutput{Transactions: rows}, nil
}
