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

// RecordTransferInput represents the input for moving money between products.
type RecordTransferInput struct {
	UserID        uuid.UUID
	FromProductID uuid.UUID
	ToProductID   uuid.UUID
	Amount        decimal.Decimal
	Description   string
	Notes         string
	Date          time.Time
}

// RecordTransferOutput represents the recorded transfer.
type RecordTransferOutput struct {
	Transaction *entity.Transaction
}

// RecordTransferUseCase records a transfer, converting between currencies with the
// latest rate.
type RecordTransferUseCase struct {
	uow       adapter.UnitOfWork
	engine    *ledger.Engine
	rates     *ledger.RateResolver
	publisher adapter.EventPublisher
}

// NewRecordTransferUseCase creates a new RecordTransferUseCase instance.
func NewRecordTransferUseCase(uow adapter.UnitOfWork, engine *ledger.Engine, rates *ledger.RateResolver, publisher adapter.EventPublisher) *RecordTransferUseCase {
	return &RecordTransferUseCase{
		uow:       uow,
		engine:    engine,
		rates:     rates,
		publisher: publisher,
	}
}

// Execute resolves the rate, then records the transfer in one unit of work.
func (uc *RecordTransferUseCase) Execute(ctx context.Context, input RecordTransferInput) (*RecordTransferOutput, error) {
	rate, err := resolveRate(ctx, uc.uow, uc.engine, uc.rates, input.UserID, input.FromProductID, input.ToProductID)
	if err != nil {
		return nil, err
	}

	var txn *entity.Transaction
	err = uc.uow.Do(ctx, func(ctx context.Context, repos adapter.Repositories) error {
		var err error
		txn, err = uc.engine.RecordTransfer(ctx, repos, ledger.TransferSpec{
			UserID:        input.UserID,
			FromProductID: input.FromProductID,
			ToProductID:   input.ToProductID,
			Amount:        input.Amount,
			Description:   input.Description,
			Notes:         input.Notes,
			Date:          input.Date,
			Rate:          rate,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Transfer recorded",
		"userID", input.UserID,
		"transactionID", txn.ID,
		"from", input.FromProductID,
		"to", input.ToProductID,
		"amount", txn.Amount.String(),
	)
	ledger.PublishEvents(ctx, uc.publisher, recordedEvent(txn))

	return &RecordTransferOutput{Transaction: txn}, nil
}

// resolveRate looks up the rate between two products before the unit of work
// starts. Same-currency pairs need none.
func resolveRate(ctx context.Context, uow adapter.UnitOfWork, engine *ledger.Engine, rates *ledger.RateResolver, userID, fromID, toID uuid.UUID) (*entity.ExchangeRate, error) {
	repos := uow.Repositories()
	from, err := engine.LoadProduct(ctx, repos, userID, fromID)
	if err != nil {
		return nil, err
	}
	to, err := engine.LoadProduct(ctx, repos, userID, toID)
	if err != nil {
		return nil, err
	}
	return rates.RateFor(ctx, from.Currency, to.Currency)
}
