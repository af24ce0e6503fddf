package statement

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// ListStatementsInput represents the input for listing a card's statements.
type ListStatementsInput struct {
	UserID    uuid.UUID
	ProductID uuid.UUID
}

// ListStatementsOutput lists statements, latest closing date first.
type ListStatementsOutput struct {
	Statements []*entity.Statement
}

// ListStatementsUseCase lists the statement history of a card.
type ListStatementsUseCase struct {
	uow       adapter.UnitOfWork
	engine    *ledger.Engine
	publisher adapter.EventPublisher
}

// NewListStatementsUseCase creates a new ListStatementsUseCase instance.
func NewListStatementsUseCase(uow adapter.UnitOfWork, engine *ledger.Engine, publisher adapter.EventPublisher) *ListStatementsUseCase {
	return &ListStatementsUseCase{
		uow:       uow,
		engine:    engine,
		publisher: publisher,
	}
}

// Execute rolls the card forward and lists its statements.
func (uc *ListStatementsUseCase) Execute(ctx context.Context, input ListStatementsInput) (*ListStatementsOutput, error) {
	var statements, closed []*entity.Statement
	err := uc.uow.Do(ctx, func(ctx context.Context, repos adapter.Repositories) error {
		card, err := uc.engine.LoadCard(ctx, repos, input.UserID, input.ProductID)
		if err != nil {
			return err
		}
		if _, closed, err = uc.engine.CurrentStatement(ctx, repos, card); err != nil {
			return err
		}
		statements, err = repos.Statements.FindByProduct(ctx, card.ID)
		if err != nil {
			return fmt.Errorf("failed to list statements: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ledger.PublishEvents(ctx, uc.publisher, closedEvents(closed)...)
	return &ListStatementsOutput{Statements: statements}, nil
}
