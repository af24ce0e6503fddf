// Package institution contains institution catalogue use cases.
package institution

import (
	"context"
	"fmt"
	"strings"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// CreateInstitutionInput represents the input for registering an institution.
// Empty lists allow every product type or currency.
type CreateInstitutionInput struct {
	Name                string
	AllowedProductTypes []entity.ProductType
	AllowedCurrencies   []string
}

// CreateInstitutionOutput represents the output of institution registration.
type CreateInstitutionOutput struct {
	Institution *entity.Institution
}

// CreateInstitutionUseCase registers an issuer in the catalogue.
type CreateInstitutionUseCase struct {
	institutionRepo adapter.InstitutionRepository
}

// NewCreateInstitutionUseCase creates a new CreateInstitutionUseCase instance.
func NewCreateInstitutionUseCase(institutionRepo adapter.InstitutionRepository) *CreateInstitutionUseCase {
	return &CreateInstitutionUseCase{institutionRepo: institutionRepo}
}

// Execute validates and stores the institution.
func (uc *CreateInstitutionUseCase) Execute(ctx context.Context, input CreateInstitutionInput) (*CreateInstitutionOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewProductError(domainerror.ErrCodeMissingProductName, "institution name is required", domainerror.ErrMissingProductName)
	}

	for _, t := range input.AllowedProductTypes {
		if !t.IsValid() {
			return nil, domainerror.NewProductError(
				domainerror.ErrCodeInvalidProductType,
				fmt.Sprintf("unknown product type %q", t),
				domainerror.ErrInvalidProductType,
			)
		}
	}

	currencies := make([]string, 0, len(input.AllowedCurrencies))
	for _, c := range input.AllowedCurrencies {
		code := entity.NormalizeCurrency(c)
		if !entity.IsValidCurrency(code) {
			return nil, domainerror.NewProductError(
				domainerror.ErrCodeInvalidCurrency,
				fmt.Sprintf("unknown currency %q", c),
				domainerror.ErrInvalidCurrency,
			)
		}
		currencies = append(currencies, code)
	}

	institution := entity.NewInstitution(name, input.AllowedProductTypes, currencies)
	if err := uc.institutionRepo.Create(ctx, institution); err != nil {
		return nil, fmt.Errorf("failed to create institution: %w", err)
	}
	return &CreateInstitutionOutput{Institution: institution}, nil
}
