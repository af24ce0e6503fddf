package product

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// UpdateProductInput represents the input for product updates. Nil fields are kept.
// Type, currency and balance cannot be changed.
type UpdateProductInput struct {
	UserID           uuid.UUID
	ProductID        uuid.UUID
	Name             *string
	InstitutionID    *uuid.UUID
	ClosingDay       *int
	DueDay           *int
	CreditLimit      *decimal.Decimal
	SharedLimit      *bool
	LinkedProductID  *uuid.UUID
	LastFourDigits   *string
	Provider         *string
	ExpirationMonth  *int
	ExpirationYear   *int
	LoanPrincipal    *decimal.Decimal
	LoanInterestRate *decimal.Decimal
}

// UpdateProductOutput represents the output of a product update.
type UpdateProductOutput struct {
	Product *entity.Product
}

// UpdateProductUseCase handles product updates.
type UpdateProductUseCase struct {
	uow    adapter.UnitOfWork
	engine *ledger.Engine
}

// NewUpdateProductUseCase creates a new UpdateProductUseCase instance.
func NewUpdateProductUseCase(uow adapter.UnitOfWork, engine *ledger.Engine) *UpdateProductUseCase {
	return &UpdateProductUseCase{
		uow:    uow,
		engine: engine,
	}
}

// Execute applies the changes in one unit of work.
func (uc *UpdateProductUseCase) Execute(ctx context.Context, input UpdateProductInput) (*UpdateProductOutput, error) {
	var product *entity.Product
	err := uc.uow.Do(ctx, func(ctx context.Context, repos adapter.Repositories) error {
		var err error
		product, err = uc.engine.LoadProduct(ctx, repos, input.UserID, input.ProductID)
		if err != nil {
			return err
		}
		applyUpdate(product, input)
		return uc.engine.UpdateProduct(ctx, repos, product)
	})
	if err != nil {
		return nil, err
	}
	return &UpdateProductOutput{Product: product}, nil
}

func applyUpdate(product *entity.Product, input UpdateProductInput) {
	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.InstitutionID != nil {
		product.InstitutionID = input.InstitutionID
	}
	if input.ClosingDay != nil {
		product.ClosingDay = input.ClosingDay
	}
	if input.DueDay != nil {
		product.DueDay = input.DueDay
	}
	if input.CreditLimit != nil {
		product.CreditLimit = input.CreditLimit
	}
	if input.SharedLimit != nil {
		product.SharedLimit = *input.SharedLimit
		if !product.SharedLimit {
			product.LinkedProductID = nil
		}
	}
	if input.LinkedProductID != nil {
		product.LinkedProductID = input.LinkedProductID
	}
	if input.LastFourDigits != nil {
		product.LastFourDigits = *input.LastFourDigits
	}
	if input.Provider != nil {
		product.Provider = *input.Provider
	}
	if input.ExpirationMonth != nil {
		product.ExpirationMonth = input.ExpirationMonth
	}
	if input.ExpirationYear != nil {
		product.ExpirationYear = input.ExpirationYear
	}
	if input.LoanPrincipal != nil {
		product.LoanPrincipal = input.LoanPrincipal
	}
	if input.LoanInterestRate != nil {
		product.LoanInterestRate = input.LoanInterestRate
	}
}
