// Package bill contains recurring service and bill use cases.
package bill

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// CreateServiceInput represents the input for registering a recurring service.
type CreateServiceInput struct {
	UserID        uuid.UUID
	Name          string
	DefaultAmount decimal.Decimal
	Currency      string
	CategoryID    *uuid.UUID
}

// ServiceOutput holds a single service.
type ServiceOutput struct {
	Service *entity.Service
}

// CreateServiceUseCase registers a recurring service.
type CreateServiceUseCase struct {
	uow    adapter.UnitOfWork
	engine *ledger.Engine
}

// NewCreateServiceUseCase creates a new CreateServiceUseCase instance.
func NewCreateServiceUseCase(uow adapter.UnitOfWork, engine *ledger.Engine) *CreateServiceUseCase {
	return &CreateServiceUseCase{uow: uow, engine: engine}
}

// Execute validates and stores the service.
func (uc *CreateServiceUseCase) Execute(ctx context.Context, input CreateServiceInput) (*ServiceOutput, error) {
	service := entity.NewService(input.UserID, strings.TrimSpace(input.Name), input.DefaultAmount, input.Currency, input.CategoryID)
	err := uc.uow.Do(ctx, func(ctx context.Context, repos adapter.Repositories) error {
		if err := validateService(ctx, uc.engine, repos, service); err != nil {
			return err
		}
		if err := repos.Services.Create(ctx, service); err != nil {
			return fmt.Errorf("failed to create service: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Service created", "userID", input.UserID, "serviceID", service.ID)
	return &ServiceOutput{Service: service}, nil
}


// UpdateServiceInput represents changes to a service. Nil fields are kept.
type UpdateServiceInput struct {
	UserID        uuid.UUID
	ServiceID     uuid.UUID
	Name          *string
	DefaultAmount *decimal.Decimal
	CategoryID    *uuid.UUID
	ClearCategory bool
	Active        *bool
}

// UpdateServiceUseCase changes a service. Existing bills keep their amounts.
type UpdateServiceUseCase struct {
	uow    adapter.UnitOfWork
	engine *ledger.Engine
}

// NewUpdateServiceUseCase creates a new UpdateServiceUseCase instance.
func NewUpdateServiceUseCase(uow adapter.UnitOfWork, engine *ledger.Engine) *UpdateServiceUseCase {
	return &UpdateServiceUseCase{uow: uow, engine: engine}
}

// Execute applies the changes.
func (uc *UpdateServiceUseCase) Execute(ctx context.Context, input UpdateServiceInput) (*ServiceOutput, error) {
	var service *entity.Service
	err := uc.uow.Do(ctx, func(ctx context.Context, repos adapter.Repositories) error {
		var err error
		service, err = uc.engine.LoadService(ctx, repos, input.UserID, input.ServiceID)
		if err != nil {
			return err
		}
		if input.Name != nil {
			service.Name = strings.TrimSpace(*input.Name)
		}
		if input.DefaultAmount != nil {
			service.DefaultAmount = *input.DefaultAmount
		}
		if input.ClearCategory {
			service.CategoryID = nil
		} else if input.CategoryID != nil {
			service.CategoryID = input.CategoryID
		}
		if input.Active != nil {
			service.Active = *input.Active
		}
		if err := validateService(ctx, uc.engine, repos, service); err != nil {
			return err
		}
		service.UpdatedAt = time.Now().UTC()
		if err := repos.Services.Update(ctx, service); err != nil {
			return fmt.Errorf("failed to update service: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ServiceOutput{Service: service}, nil
}

// DeleteServiceInput identifies the service to delete.
type DeleteServiceInput struct {
	UserID    uuid.UUID
	ServiceID uuid.UUID
}

// DeleteServiceUseCase removes a service with its rules and bills.
type DeleteServiceUseCase struct {
	uow    adapter.UnitOfWork
	engine *ledger.Engine
}

// NewDeleteServiceUseCase creates a new DeleteServiceUseCase instance.
func NewDeleteServiceUseCase(uow adapter.UnitOfWork, engine *ledger.Engine) *DeleteServiceUseCase {
	return &DeleteServiceUseCase{uow: uow, engine: engine}
}

// Execute deletes bills, then rules, then the service in one unit of work.
func (uc *DeleteServiceUseCase) Execute(ctx context.Context, input DeleteServiceInput) error {
	err := uc.uow.Do(ctx, func(ctx context.Context, repos adapter.Repositories) error {
		return uc.engine.DeleteService(ctx, repos, input.UserID, input.ServiceID)
	})
	if err != nil {
		return err
	}
	slog.Info("Service deleted", "userID", input.UserID, "serviceID", input.ServiceID)
	return nil
}

// ListServicesOutput lists the user's services with their payment rules.
type ListServicesOutput struct {
	Services []*entity.Service
	Rules    map[uuid.UUID][]*entity.ServicePaymentRule
}

// ListServicesUseCase lists services.
type ListServicesUseCase struct {
	uow adapter.UnitOfWork
}

// NewListServicesUseCase creates a new ListServicesUseCase instance.
func NewListServicesUseCase(uow adapter.UnitOfWork) *ListServicesUseCase {
	return &ListServicesUseCase{uow: uow}
}

// Execute returns the services of userID.
func (uc *ListServicesUseCase) Execute(ctx context.Context, userID uuid.UUID) (*ListServicesOutput, error) {
	repos := uc.uow.Repositories()
	services, err := repos.Services.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	output := &ListServicesOutput{
		Services: services,
		Rules:    make(map[uuid.UUID][]*entity.ServicePaymentRule, len(services)),
	}
	for _, s := range services {
		rules, err := repos.Services.FindRulesByService(ctx, s.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list payment rules: %w", err)
		}
		output.Rules[s.ID] = rules
	}
	return output, nil
}

func validateService(ctx context.Context, engine *ledger.Engine, repos adapter.Repositories, service *entity.Service) error {
	if service.Name == "" {
		return domainerror.NewBillError(domainerror.ErrCodeMissingServiceName, "service name is required", domainerror.ErrMissingServiceName)
	}
	if len(service.Name) > ledger.MaxDescriptionLength {
		return domainerror.NewBillError(
			domainerror.ErrCodeMissingServiceName,
			fmt.Sprintf("service name must not exceed %d characters", ledger.MaxDescriptionLength),
			domainerror.ErrMissingServiceName,
		)
	}
	if !service.DefaultAmount.IsPositive() {
		return domainerror.NewBillError(domainerror.ErrCodeInvalidBillAmount, "default amount must be positive", domainerror.ErrInvalidBillAmount)
	}
	if !entity.IsValidCurrency(service.Currency) {
		return domainerror.NewProductError(
			domainerror.ErrCodeInvalidCurrency,
			fmt.Sprintf("unknown currency %q", service.Currency),
			domainerror.ErrInvalidCurrency,
		)
	}
	if service.CategoryID != nil {
		category, err := engine.LoadCategory(ctx, repos, service.UserID, *service.CategoryID)
		if err != nil {
			return err
		}
		if !category.Accepts(entity.TransactionTypeExpense) {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeCategoryTypeMismatch,
				"services must use an expense category",
				domainerror.ErrCategoryTypeMismatch,
			)
		}
	}
	return nil
}
