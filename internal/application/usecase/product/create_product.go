// Package product contains financial product use cases.
package product

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// CreateProductInput represents the input for product creation.
type CreateProductInput struct {
	UserID           uuid.UUID
	Name             string
	Type             entity.ProductType
	Currency         string
	InitialBalance   decimal.Decimal
	InstitutionID    *uuid.UUID
	ClosingDay       *int
	DueDay           *int
	CreditLimit      *decimal.Decimal
	SharedLimit      bool
	LinkedProductID  *uuid.UUID
	LastFourDigits   string
	Provider         string
	ExpirationMonth  *int
	ExpirationYear   *int
	LoanPrincipal    *decimal.Decimal
	LoanInterestRate *decimal.Decimal
}

// CreateProductOutput represents the output of product creation.
type CreateProductOutput struct {
	Product *entity.Product
}

// CreateProductUseCase handles product creation logic.
type CreateProductUseCase struct {
	uow    adapter.UnitOfWork
	engine *ledger.Engine
}

// NewCreateProductUseCase creates a new CreateProductUseCase instance.
func NewCreateProductUseCase(uow adapter.UnitOfWork, engine *ledger.Engine) *CreateProductUseCase {
	return &CreateProductUseCase{
		uow:    uow,
		engine: engine,
	}
}

// Execute validates and stores the product.
func (uc *CreateProductUseCase) Execute(ctx context.Context, input CreateProductInput) (*CreateProductOutput, error) {
	product := entity.NewProduct(
		input.UserID,
		strings.TrimSpace(input.Name),
		input.Type,
		entity.NormalizeCurrency(input.Currency),
		input.InitialBalance,
	)
	product.InstitutionID = input.InstitutionID
	product.ClosingDay = input.ClosingDay
	product.DueDay = input.DueDay
	product.CreditLimit = input.CreditLimit
	product.SharedLimit = input.SharedLimit
	product.LinkedProductID = input.LinkedProductID
	product.LastFourDigits = input.LastFourDigits
	product.Provider = input.Provider
	product.ExpirationMonth = input.ExpirationMonth
	product.ExpirationYear = input.ExpirationYear
	product.LoanPrincipal = input.LoanPrincipal
	product.LoanInterestRate = input.LoanInterestRate

	err := uc.uow.Do(ctx, func(ctx context.Context, repos adapter.Repositories) error {
		return uc.engine.CreateProduct(ctx, repos, product)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Product created",
		"userID", input.UserID,
		"productID", product.ID,
		"type", product.Type,
		"currency", product.Currency,
	)

	return &CreateProductOutput{Product: product}, nil
}
