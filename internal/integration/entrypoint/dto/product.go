package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/usecase/product"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// CreateProductRequest represents the request body for product creation.
type CreateProductRequest struct {
	Name             string  `json:"name" binding:"required,min=1,max=100"`
	Type             string  `json:"type" binding:"required"`
	Currency         string  `json:"currency" binding:"required"`
	InitialBalance   string  `json:"initial_balance,omitempty"`
	InstitutionID    *string `json:"institution_id,omitempty"`
	ClosingDay       *int    `json:"closing_day,omitempty"`
	DueDay           *int    `json:"due_day,omitempty"`
	CreditLimit      *string `json:"credit_limit,omitempty"`
	SharedLimit      bool    `json:"shared_limit,omitempty"`
	LinkedProductID  *string `json:"linked_product_id,omitempty"`
	LastFourDigits   string  `json:"last_four_digits,omitempty" binding:"omitempty,len=4,numeric"`
	Provider         string  `json:"provider,omitempty"`
	ExpirationMonth  *int    `json:"expiration_month,omitempty"`
	ExpirationYear   *int    `json:"expiration_year,omitempty"`
	LoanPrincipal    *string `json:"loan_principal,omitempty"`
	LoanInterestRate *string `json:"loan_interest_rate,omitempty"`
}

// ToInput converts the request into use case input.
func (r CreateProductRequest) ToInput(userID uuid.UUID) (product.CreateProductInput, error) {
	input := product.CreateProductInput{
		UserID:          userID,
		Name:            r.Name,
		Type:            entity.ProductType(r.Type),
		Currency:        r.Currency,
		ClosingDay:      r.ClosingDay,
		DueDay:          r.DueDay,
		SharedLimit:     r.SharedLimit,
		LastFourDigits:  r.LastFourDigits,
		Provider:        r.Provider,
		ExpirationMonth: r.ExpirationMonth,
		ExpirationYear:  r.ExpirationYear,
	}

	var err error
	if r.InitialBalance != "" {
		if input.InitialBalance, err = ParseAmount(r.InitialBalance); err != nil {
			return input, err
		}
	}
	if input.InstitutionID, err = ParseOptionalUUID(r.InstitutionID); err != nil {
		return input, err
	}
	if input.LinkedProductID, err = ParseOptionalUUID(r.LinkedProductID); err != nil {
		return input, err
	}
	if input.CreditLimit, err = ParseOptionalAmount(r.CreditLimit); err != nil {
		return input, err
	}
	if input.LoanPrincipal, err = ParseOptionalAmount(r.LoanPrincipal); err != nil {
		return input, err
	}
	if input.LoanInterestRate, err = ParseOptionalAmount(r.LoanInterestRate); err != nil {
		return input, err
	}
	return input, nil
}

// UpdateProductRequest represents the request body for product update.
// Type, currency and balance cannot be changed.
type UpdateProductRequest struct {
	Name             *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	InstitutionID    *string `json:"institution_id,omitempty"`
	ClosingDay       *int    `json:"closing_day,omitempty"`
	DueDay           *int    `json:"due_day,omitempty"`
	CreditLimit      *string `json:"credit_limit,omitempty"`
	SharedLimit      *bool   `json:"shared_limit,omitempty"`
	LinkedProductID  *string `json:"linked_product_id,omitempty"`
	LastFourDigits   *string `json:"last_four_digits,omitempty" binding:"omitempty,len=4,numeric"`
	Provider         *string `json:"provider,omitempty"`
	ExpirationMonth  *int    `json:"expiration_month,omitempty"`
	ExpirationYear   *int    `json:"expiration_year,omitempty"`
	LoanPrincipal    *string `json:"loan_principal,omitempty"`
	LoanInterestRate *string `json:"loan_interest_rate,omitempty"`
}

// ToInput converts the request into use case input.
func (r UpdateProductRequest) ToInput(userID, productID uuid.UUID) (product.UpdateProductInput, error) {
	input := product.UpdateProductInput{
		UserID:          userID,
		ProductID:       productID,
		Name:            r.Name,
		ClosingDay:      r.ClosingDay,
		DueDay:          r.DueDay,
		SharedLimit:     r.SharedLimit,
		LastFourDigits:  r.LastFourDigits,
		Provider:        r.Provider,
		ExpirationMonth: r.ExpirationMonth,
		ExpirationYear:  r.ExpirationYear,
	}

	var err error
	if input.InstitutionID, err = ParseOptionalUUID(r.InstitutionID); err != nil {
		return input, err
	}
	if input.LinkedProductID, err = ParseOptionalUUID(r.LinkedProductID); err != nil {
		return input, err
	}
	if input.CreditLimit, err = ParseOptionalAmount(r.CreditLimit); err != nil {
		return input, err
	}
	if input.LoanPrincipal, err = ParseOptionalAmount(r.LoanPrincipal); err != nil {
		return input, err
	}
	if input.LoanInterestRate, err = ParseOptionalAmount(r.LoanInterestRate); err != nil {
		return input, err
	}
	return input, nil
}

// ProductResponse represents a single product in API responses.
type ProductResponse struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Type             string         `json:"type"`
	Currency         string         `json:"currency"`
	Balance          MoneyResponse  `json:"balance"`
	AvailableCredit  *string        `json:"available_credit,omitempty"`
	Display          *MoneyResponse `json:"display_balance,omitempty"`
	DisplayRate      *string        `json:"display_rate,omitempty"`
	InstitutionID    *string        `json:"institution_id,omitempty"`
	ClosingDay       *int           `json:"closing_day,omitempty"`
	DueDay           *int           `json:"due_day,omitempty"`
	CreditLimit      *string        `json:"credit_limit,omitempty"`
	SharedLimit      bool           `json:"shared_limit"`
	LinkedProductID  *string        `json:"linked_product_id,omitempty"`
	LastFourDigits   string         `json:"last_four_digits,omitempty"`
	Provider         string         `json:"provider,omitempty"`
	ExpirationMonth  *int           `json:"expiration_month,omitempty"`
	ExpirationYear   *int           `json:"expiration_year,omitempty"`
	LoanPrincipal    *string        `json:"loan_principal,omitempty"`
	LoanInterestRate *string        `json:"loan_interest_rate,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// ProductListResponse represents the response for listing products.
type ProductListResponse struct {
	Products        []ProductResponse `json:"products"`
	DisplayCurrency string            `json:"display_currency,omitempty"`
	Total           *MoneyResponse    `json:"total,omitempty"`
	Unconverted     []string          `json:"unconverted,omitempty"`
}

// ToProductResponse converts a domain Product entity to a ProductResponse DTO.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:               p.ID.String(),
		Name:             p.Name,
		Type:             string(p.Type),
		Currency:         p.Currency,
		Balance:          NewMoneyResponse(p.Balance, p.Currency),
		AvailableCredit:  FormatOptionalDecimal(p.AvailableCredit()),
		InstitutionID:    FormatOptionalUUID(p.InstitutionID),
		ClosingDay:       p.ClosingDay,
		DueDay:           p.DueDay,
		CreditLimit:      FormatOptionalDecimal(p.CreditLimit),
		SharedLimit:      p.SharedLimit,
		LinkedProductID:  FormatOptionalUUID(p.LinkedProductID),
		LastFourDigits:   p.LastFourDigits,
		Provider:         p.Provider,
		ExpirationMonth:  p.ExpirationMonth,
		ExpirationYear:   p.ExpirationYear,
		LoanPrincipal:    FormatOptionalDecimal(p.LoanPrincipal),
		LoanInterestRate: FormatOptionalDecimal(p.LoanInterestRate),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// ToProductViewResponse adds the display-currency conversion when there is one.
func ToProductViewResponse(view product.ProductView) ProductResponse {
	response := ToProductResponse(view.Product)
	if view.DisplayBalance != nil {
		display := NewMoneyResponse(*view.DisplayBalance, view.DisplayCurrency)
		response.Display = &display
	}
	if view.Rate != nil {
		rate := view.Rate.Rate.String()
		response.DisplayRate = &rate
	}
	return response
}

// ToProductListResponse converts the list output.
func ToProductListResponse(output *product.ListProductsOutput) ProductListResponse {
	response := ProductListResponse{
		Products:        make([]ProductResponse, 0, len(output.Products)),
		DisplayCurrency: output.DisplayCurrency,
	}
	for _, view := range output.Products {
		response.Products = append(response.Products, ToProductViewResponse(view))
	}
	if output.Total != nil {
		total := NewMoneyResponse(*output.Total, output.DisplayCurrency)
		response.Total = &total
	}
	for _, id := range output.Unconverted {
		response.Unconverted = append(response.Unconverted, id.String())
	}
	return response
}
