package statement

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// AddAdjustmentInput represents a manual statement correction.
type AddAdjustmentInput struct {
	UserID      uuid.UUID
	StatementID uuid.UUID
	Kind        entity.AdjustmentKind
	Amount      decimal.Decimal
	Description string
}

// AddAdjustmentOutput holds the updated statement and the new adjustment.
type AddAdjustmentOutput struct {
	Statement  *entity.Statement
	Adjustment *entity.StatementAdjustment
}

// AddAdjustmentUseCase adds a correction to a statement.
type AddAdjustmentUseCase struct {
	uow    adapter.UnitOfWork
	engine *ledger.Engine
}

// NewAddAdjustmentUseCase creates a new AddAdjustmentUseCase instance.
func NewAddAdjustmentUseCase(uow adapter.UnitOfWork, engine *ledger.Engine) *AddAdjustmentUseCase {
	return &AddAdjustmentUseCase{
		uow:    uow,
		engine: engine,
	}
}

// Execute adds the adjustment and moves the card balance in one unit of work.
func (uc *AddAdjustmentUseCase) Execute(ctx context.Context, input AddAdjustmentInput) (*AddAdjustmentOutput, error) {
	output := &AddAdjustmentOutput{}
	err := uc.uow.Do(ctx, func(ctx context.Context, repos adapter.Repositories) error {
		var err error
		output.Statement, output.Adjustment, err = uc.engine.AddAdjustment(ctx, repos, ledger.AdjustmentSpec{
			UserID:      input.UserID,
			StatementID: input.StatementID,
			Kind:        input.Kind,
			Amount:      input.Amount,
			Description: input.Description,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Statement adjusted",
		"userID", input.UserID,
		"statementID", input.StatementID,
		"kind", input.Kind,
		"amount", input.Amount.String(),
	)
	return output, nil
}

// RemoveAdjustmentInput identifies the correction to remove.
type RemoveAdjustmentInput struct {
	UserID       uuid.UUID
	StatementID  uuid.UUID
	AdjustmentID uuid.UUID
}

// RemoveAdjustmentOutput holds the updated statement.
type RemoveAdjustmentOutput struct {
	Statement *entity.Statement
}

// RemoveAdjustmentUseCase removes a correction from a statement.
type RemoveAdjustmentUseCase struct {
	uow    adapter.UnitOfWork
	engine *ledger.Engine
}

// NewRemoveAdjustmentUseCase creates a new RemoveAdjustmentUseCase instance.
func NewRemoveAdjustmentUseCase(uow adapter.UnitOfWork, engine *ledger.Engine) *RemoveAdjustmentUseCase {
	return &RemoveAdjustmentUseCase{
		uow:    uow,
		engine: engine,
	}
}

// Execute removes the adjustment and gives its balance effect back.
func (uc *RemoveAdjustmentUseCase) Execute(ctx context.Context, input RemoveAdjustmentInput) (*RemoveAdjustmentOutput, error) {
	var statement *entity.Statement
	err := uc.uow.Do(ctx, func(ctx context.Context, repos adapter.Repositories) error {
		var err error
		statement, err = uc.engine.RemoveAdjustment(ctx, repos, input.UserID, input.StatementID, input.AdjustmentID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &RemoveAdjustmentOutput{Statement: statement}, nil
}
