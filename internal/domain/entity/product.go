package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductType represents the kind of holding a financial product is.
type ProductType string

const (
	ProductTypeCash            ProductType = "CASH"
	ProductTypeSavingsAccount  ProductType = "SAVINGS_ACCOUNT"
	ProductTypeCheckingAccount ProductType = "CHECKING_ACCOUNT"
	ProductTypeDebitCard       ProductType = "DEBIT_CARD"
	ProductTypeCreditCard      ProductType = "CREDIT_CARD"
	ProductTypeLoan            ProductType = "LOAN"
)

// AllProductTypes lists every product type.
var AllProductTypes = []ProductType{
	ProductTypeCash,
	ProductTypeSavingsAccount,
	ProductTypeCheckingAccount,
	ProductTypeDebitCard,
	ProductTypeCreditCard,
	ProductTypeLoan,
}

// IsValid reports whether t is a known product type.
func (t ProductType) IsValid() bool {
	for _, known := range AllProductTypes {
		if t == known {
			return true
		}
	}
	return false
}

// RequiresInstitution reports whether products of this type must reference an issuer.
func (t ProductType) RequiresInstitution() bool {
	return t == ProductTypeDebitCard || t == ProductTypeCreditCard || t == ProductTypeLoan
}

// CanReceiveIncome reports whether income may be deposited directly into this type.
func (t ProductType) CanReceiveIncome() bool {
	switch t {
	case ProductTypeCash, ProductTypeSavingsAccount, ProductTypeCheckingAccount, ProductTypeDebitCard:
		return true
	default:
		return false
	}
}

// Product represents a named holding of money owned by a user.
// Balance is negative for debt on credit cards and loans.
type Product struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Name             string
	Type             ProductType
	Currency         string
	Balance          decimal.Decimal
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
	Version          int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewProduct creates a new Product entity.
func NewProduct(userID uuid.UUID, name string, productType ProductType, currency string, initialBalance decimal.Decimal) *Product {
	now := time.Now().UTC()

	return &Product{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Type:      productType,
		Currency:  NormalizeCurrency(currency),
		Balance:   initialBalance,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsCreditCard reports whether the product is a credit card.
func (p *Product) IsCreditCard() bool {
	return p.Type == ProductTypeCreditCard
}

// HasBillingCycle reports whether the card has the days needed to compute statement periods.
func (p *Product) HasBillingCycle() bool {
	return p.IsCreditCard() && p.ClosingDay != nil && p.DueDay != nil
}

// PeriodFor returns the billing period of this card containing date.
func (p *Product) PeriodFor(date time.Time) Period {
	return PeriodFor(date, *p.ClosingDay, *p.DueDay)
}

// UsesGroupLimit reports whether the card shares the limit of its linked card.
func (p *Product) UsesGroupLimit() bool {
	return p.IsCreditCard() && p.SharedLimit && p.LinkedProductID != nil
}

// BalanceWithinBounds checks the product's own bounds for a prospective balance.
// Shared-limit cards are checked against their group by the ledger instead.
func (p *Product) BalanceWithinBounds(balance decimal.Decimal) bool {
	switch p.Type {
	case ProductTypeCash, ProductTypeSavingsAccount, ProductTypeDebitCard:
		return !balance.IsNegative()
	case ProductTypeCheckingAccount:
		return true
	case ProductTypeCreditCard:
		if p.UsesGroupLimit() || p.CreditLimit == nil {
			return true
		}
		return balance.GreaterThanOrEqual(p.CreditLimit.Neg())
	case ProductTypeLoan:
		return !balance.IsPositive()
	default:
		return false
	}
}

// AvailableCredit returns the unused part of the card's own limit, or nil without a limit.
func (p *Product) AvailableCredit() *decimal.Decimal {
	if !p.IsCreditCard() || p.CreditLimit == nil {
		return nil
	}
	available := p.CreditLimit.Add(p.Balance)
	return &available
}
