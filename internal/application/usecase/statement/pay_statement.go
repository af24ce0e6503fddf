package statement

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// PayStatementInput represents the settlement of a closed statement.
type PayStatementInput struct {
	UserID          uuid.UUID
	StatementID     uuid.UUID
	SourceProductID uuid.UUID
	Date            time.Time
}

// PayStatementOutput holds the paid statement and the payment transfer.
type PayStatementOutput struct {
	Statement   *entity.Statement
	Transaction *entity.Transaction
}

// PayStatementUseCase pays a closed statement from another product.
type PayStatementUseCase struct {
	uow       adapter.UnitOfWork
	engine    *ledger.Engine
	rates     *ledger.RateResolver
	publisher adapter.EventPublisher
}

// NewPayStatementUseCase creates a new PayStatementUseCase instance.
func NewPayStatementUseCase(uow adapter.UnitOfWork, engine *ledger.Engine, rates *ledger.RateResolver, publisher adapter.EventPublisher) *PayStatementUseCase {
	return &PayStatementUseCase{
		uow:       uow,
		engine:    engine,
		rates:     rates,
		publisher: publisher,
	}
}

// Execute resolves the source-to-card rate, then pays in one unit of work.
func (uc *PayStatementUseCase) Execute(ctx context.Context, input PayStatementInput) (*PayStatementOutput, error) {
	repos := uc.uow.Repositories()
	statement, err := uc.engine.LoadStatement(ctx, repos, input.UserID, input.StatementID)
	if err != nil {
		return nil, err
	}
	card, err := uc.engine.LoadProduct(ctx, repos, input.UserID, statement.ProductID)
	if err != nil {
		return nil, err
	}
	source, err := uc.engine.LoadProduct(ctx, repos, input.UserID, input.SourceProductID)
	if err != nil {
		return nil, err
	}
	rate, err := uc.rates.RateFor(ctx, source.Currency, card.Currency)
	if err != nil {
		return nil, err
	}

	output := &PayStatementOutput{}
	err = uc.uow.Do(ctx, func(ctx context.Context, repos adapter.Repositories) error {
		var err error
		output.Statement, output.Transaction, err = uc.engine.PayStatement(ctx, repos, ledger.PayStatementSpec{
			UserID:          input.UserID,
			StatementID:     input.StatementID,
			SourceProductID: input.SourceProductID,
			Date:            input.Date,
			Rate:            rate,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Statement paid",
		"userID", input.UserID,
		"statementID", output.Statement.ID,
		"transactionID", output.Transaction.ID,
		"total", output.Statement.TotalAmount.String(),
	)
	ledger.PublishEvents(ctx, uc.publisher, entity.NewLedgerEvent(
		entity.EventStatementPaid, input.UserID, output.Statement.ID,
		map[string]string{
			"transactionID": output.Transaction.ID.String(),
			"total":         output.Statement.TotalAmount.String(),
		},
	))
	return output, nil
}
