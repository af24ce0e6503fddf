package bill

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// CreateRuleInput represents a payment rule for a service.
type CreateRuleInput struct {
	UserID           uuid.UUID
	ServiceID        uuid.UUID
	DueDay           int
	DefaultProductID *uuid.UUID
	StartYear        int
	StartMonth       int
	EndYear          *int
	EndMonth         *int
}

// CreateRuleOutput holds the stored rule.
type CreateRuleOutput struct {
	Rule *entity.ServicePaymentRule
}

// CreateRuleUseCase adds a payment rule to a service.
type CreateRuleUseCase struct {
	uow    adapter.UnitOfWork
	engine *ledger.Engine
}

// NewCreateRuleUseCase creates a new CreateRuleUseCase instance.
func NewCreateRuleUseCase(uow adapter.UnitOfWork, engine *ledger.Engine) *CreateRuleUseCase {
	return &CreateRuleUseCase{uow: uow, engine: engine}
}

// Execute validates the rule and stores it.
func (uc *CreateRuleUseCase) Execute(ctx context.Context, input CreateRuleInput) (*CreateRuleOutput, error) {
	if err := validateRuleInput(input); err != nil {
		return nil, err
	}

	rule := &entity.ServicePaymentRule{
		ID:               uuid.New(),
		ServiceID:        input.ServiceID,
		UserID:           input.UserID,
		DueDay:           input.DueDay,
		DefaultProductID: input.DefaultProductID,
		StartYear:        input.StartYear,
		StartMonth:       input.StartMonth,
		EndYear:          input.EndYear,
		EndMonth:         input.EndMonth,
		CreatedAt:        time.Now().UTC(),
	}

	err := uc.uow.Do(ctx, func(ctx context.Context, repos adapter.Repositories) error {
		if _, err := uc.engine.LoadService(ctx, repos, input.UserID, input.ServiceID); err != nil {
			return err
		}
		if input.DefaultProductID != nil {
			if _, err := uc.engine.LoadProduct(ctx, repos, input.UserID, *input.DefaultProductID); err != nil {
				return err
			}
		}
		if err := repos.Services.CreateRule(ctx, rule); err != nil {
			return fmt.Errorf("failed to create payment rule: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Payment rule created",
		"serviceID", input.ServiceID,
		"ruleID", rule.ID,
		"start", fmt.Sprintf("%04d-%02d", rule.StartYear, rule.StartMonth),
	)
	return &CreateRuleOutput{Rule: rule}, nil
}

func validateRuleInput(input CreateRuleInput) error {
	if input.DueDay < 1 || input.DueDay > 31 {
		return domainerror.NewBillError(domainerror.ErrCodeInvalidBillDueDay, "due day must be between 1 and 31", domainerror.ErrInvalidBillDueDay)
	}
	if err := ledger.ValidatePeriod(input.StartYear, input.StartMonth); err != nil {
		return err
	}
	if (input.EndYear == nil) != (input.EndMonth == nil) {
		return domainerror.NewBillError(
			domainerror.ErrCodeMissingBillFields,
			"end year and end month must be given together",
			domainerror.ErrInvalidBillPeriod,
		)
	}
	if input.EndYear != nil {
		if err := ledger.ValidatePeriod(*input.EndYear, *input.EndMonth); err != nil {
			return err
		}
		if entity.MonthIndex(*input.EndYear, *input.EndMonth) < entity.MonthIndex(input.StartYear, input.StartMonth) {
			return domainerror.NewBillError(
				domainerror.ErrCodeInvalidBillPeriod,
				"rule must not end before it starts",
				domainerror.ErrInvalidBillPeriod,
			)
		}
	}
	return nil
}

// DeleteRuleInput identifies the rule to delete.
type DeleteRuleInput struct {
	UserID    uuid.UUID
	ServiceID uuid.UUID
	RuleID    uuid.UUID
}

// DeleteRuleUseCase removes a payment rule. Bills already generated are kept.
type DeleteRuleUseCase struct {
	uow    adapter.UnitOfWork
	engine *ledger.Engine
}

// NewDeleteRuleUseCase creates a new DeleteRuleUseCase instance.
func NewDeleteRuleUseCase(uow adapter.UnitOfWork, engine *ledger.Engine) *DeleteRuleUseCase {
	return &DeleteRuleUseCase{uow: uow, engine: engine}
}

// Execute deletes the rule.
func (uc *DeleteRuleUseCase) Execute(ctx context.Context, input DeleteRuleInput) error {
	return uc.uow.Do(ctx, func(ctx context.Context, repos adapter.Repositories) error {
		if _, err := uc.engine.LoadService(ctx, repos, input.UserID, input.ServiceID); err != nil {
			return err
		}
		rule, err := repos.Services.FindRuleByID(ctx, input.RuleID)
		if err != nil && !errors.Is(err, domainerror.ErrPaymentRuleNotFound) {
			return err
		}
		if err != nil || rule.ServiceID != input.ServiceID {
			return domainerror.NewBillError(domainerror.ErrCodePaymentRuleNotFound, "payment rule not found", domainerror.ErrPaymentRuleNotFound)
		}
		if err := repos.Services.DeleteRule(ctx, rule.ID); err != nil {
			return fmt.Errorf("failed to delete payment rule: %w", err)
		}
		return nil
	})
}
