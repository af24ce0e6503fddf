package statement

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// GetStatementInput represents the input for reading one statement.
type GetStatementInput struct {
	UserID      uuid.UUID
	StatementID uuid.UUID
}

// GetStatementOutput holds the statement with its items and adjustments.
type GetStatementOutput struct {
	Statement *entity.Statement
}

// GetStatementUseCase reads a statement by id.
type GetStatementUseCase struct {
	uow    adapter.UnitOfWork
	engine *ledger.Engine
}

// NewGetStatementUseCase creates a new GetStatementUseCase instance.
func NewGetStatementUseCase(uow adapter.UnitOfWork, engine *ledger.Engine) *GetStatementUseCase {
	return &GetStatementUseCase{
		uow:    uow,
		engine: engine,
	}
}

// Execute returns the statement.
func (uc *GetStatementUseCase) Execute(ctx context.Context, input GetStatementInput) (*GetStatementOutput, error) {
	statement, err := uc.engine.LoadStatement(ctx, uc.uow.Repositories(), input.UserID, input.StatementID)
	if err != nil {
		return nil, err
	}
	return &GetStatementOutput{Statement: statement}, nil
}
