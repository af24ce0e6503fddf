// Package statement contains credit card statement use cases.
package statement

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// GetCurrentStatementInput represents the input for reading a card's open statement.
type GetCurrentStatementInput struct {
	UserID    uuid.UUID
	ProductID uuid.UUID
}

// GetCurrentStatementOutput holds the open statement and any statement closed while
// rolling the card forward.
type GetCurrentStatementOutput struct {
	Statement *entity.Statement
	Closed    []*entity.Statement
}

// GetCurrentStatementUseCase returns the OPEN statement of a card.
type GetCurrentStatementUseCase struct {
	uow       adapter.UnitOfWork
	engine    *ledger.Engine
	publisher adapter.EventPublisher
}

// NewGetCurrentStatementUseCase creates a new GetCurrentStatementUseCase instance.
func NewGetCurrentStatementUseCase(uow adapter.UnitOfWork, engine *ledger.Engine, publisher adapter.EventPublisher) *GetCurrentStatementUseCase {
	return &GetCurrentStatementUseCase{
		uow:       uow,
		engine:    engine,
		publisher: publisher,
	}
}

// Execute rolls the card forward and returns its open statement.
func (uc *GetCurrentStatementUseCase) Execute(ctx context.Context, input GetCurrentStatementInput) (*GetCurrentStatementOutput, error) {
	output := &GetCurrentStatementOutput{}
	err := uc.uow.Do(ctx, func(ctx context.Context, repos adapter.Repositories) error {
		card, err := uc.engine.LoadCard(ctx, repos, input.UserID, input.ProductID)
		if err != nil {
			return err
		}
		output.Statement, output.Closed, err = uc.engine.CurrentStatement(ctx, repos, card)
		return err
	})
	if err != nil {
		return nil, err
	}

	ledger.PublishEvents(ctx, uc.publisher, closedEvents(output.Closed)...)
	return output, nil
}

func closedEvents(closed []*entity.Statement) []entity.LedgerEvent {
	events := make([]entity.LedgerEvent, 0, len(closed))
	for _, s := range closed {
		events = append(events, entity.NewLedgerEvent(entity.EventStatementClosed, s.UserID, s.ID, map[string]string{
			"productID":   s.ProductID.String(),
			"closingDate": s.ClosingDate.Format("2006-01-02"),
			"total":       s.TotalAmount.String(),
		}))
	}
	return events
}
