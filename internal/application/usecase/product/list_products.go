package product

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
)

// ListProductsInput represents the input for listing products.
type ListProductsInput struct {
	UserID          uuid.UUID
	DisplayCurrency string // Optional
}

// ListProductsOutput lists the user's products. With a display currency, Total sums
// every converted balance and Unconverted names the products without a rate.
type ListProductsOutput struct {
	Products        []ProductView
	DisplayCurrency string
	Total           *decimal.Decimal
	Unconverted     []uuid.UUID
}

// ListProductsUseCase lists products with an optional converted total.
type ListProductsUseCase struct {
	uow   adapter.UnitOfWork
	rates *ledger.RateResolver
}

// NewListProductsUseCase creates a new ListProductsUseCase instance.
func NewListProductsUseCase(uow adapter.UnitOfWork, rates *ledger.RateResolver) *ListProductsUseCase {
	return &ListProductsUseCase{
		uow:   uow,
		rates: rates,
	}
}

// Execute performs the listing.
func (uc *ListProductsUseCase) Execute(ctx context.Context, input ListProductsInput) (*ListProductsOutput, error) {
	currency, err := validateDisplayCurrency(input.DisplayCurrency)
	if err != nil {
		return nil, err
	}

	products, err := uc.uow.Repositories().Products.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	output := &ListProductsOutput{
		Products:        make([]ProductView, 0, len(products)),
		DisplayCurrency: currency,
	}
	total := decimal.Zero
	for _, p := range products {
		view, err := toView(ctx, uc.rates, p, currency)
		if err != nil {
			return nil, err
		}
		output.Products = append(output.Products, view)
		if currency == "" {
			continue
		}
		if view.Converted() {
			total = total.Add(*view.DisplayBalance)
		} else {
			output.Unconverted = append(output.Unconverted, p.ID)
		}
	}
	if currency != "" {
		output.Total = &total
	}
	return output, nil
}
