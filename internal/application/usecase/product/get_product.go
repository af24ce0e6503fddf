package product

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
)

// GetProductInput represents the input for reading one product.
type GetProductInput struct {
	UserID          uuid.UUID
	ProductID       uuid.UUID
	DisplayCurrency string // Optional
}

// GetProductOutput represents a single product view.
type GetProductOutput struct {
	View ProductView
}

// GetProductUseCase reads a product, optionally converting its balance.
type GetProductUseCase struct {
	uow    adapter.UnitOfWork
	engine *ledger.Engine
	rates  *ledger.RateResolver
}

// NewGetProductUseCase creates a new GetProductUseCase instance.
func NewGetProductUseCase(uow adapter.UnitOfWork, engine *ledger.Engine, rates *ledger.RateResolver) *GetProductUseCase {
	return &GetProductUseCase{
		uow:    uow,
		engine: engine,
		rates:  rates,
	}
}

// Execute returns the product view.
func (uc *GetProductUseCase) Execute(ctx context.Context, input GetProductInput) (*GetProductOutput, error) {
	currency, err := validateDisplayCurrency(input.DisplayCurrency)
	if err != nil {
		return nil, err
	}

	product, err := uc.engine.LoadProduct(ctx, uc.uow.Repositories(), input.UserID, input.ProductID)
	if err != nil {
		return nil, err
	}

	view, err := toView(ctx, uc.rates, product, currency)
	if err != nil {
		return nil, err
	}
	return &GetProductOutput{View: view}, nil
}
