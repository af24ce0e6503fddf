// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a money movement.
type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "INCOME"
	TransactionTypeExpense  TransactionType = "EXPENSE"
	TransactionTypeTransfer TransactionType = "TRANSFER"
)

// IsValid reports whether t is a known transaction type.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense || t == TransactionTypeTransfer
}

// Transaction represents one money movement. Amount is always positive and in the
// origin currency (destination currency for income). Transfers between currencies
// carry the rate used and the credited amount on the same row.
type Transaction struct {
	ID                   uuid.UUID
	UserID               uuid.UUID
	Type                 TransactionType
	Amount               decimal.Decimal
	Date                 time.Time
	Description          string
	Notes                string
	CategoryID           *uuid.UUID
	OriginProductID      *uuid.UUID
	DestinationProductID *uuid.UUID
	DestinationAmount    *decimal.Decimal
	ExchangeRate         *decimal.Decimal
	InstallmentGroupID   *uuid.UUID
	InstallmentNumber    *int
	InstallmentTotal     *int
	InstallmentAmount    *decimal.Decimal
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// NewTransaction creates a new Transaction entity dated on the calendar day of date.
func NewTransaction(
	userID uuid.UUID,
	transactionType TransactionType,
	amount decimal.Decimal,
	date time.Time,
	description string,
	categoryID *uuid.UUID,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        transactionType,
		Amount:      amount,
		Date:        DateOf(date),
		Description: description,
		CategoryID:  categoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsInstallment reports whether the row is one posting of a financed purchase.
func (t *Transaction) IsInstallment() bool {
	return t.InstallmentGroupID != nil
}

// CreditedAmount is the amount added to the destination product.
func (t *Transaction) CreditedAmount() decimal.Decimal {
	if t.DestinationAmount != nil {
		return *t.DestinationAmount
	}
	return t.Amount
}

// BalanceEffect is a signed change to one product's balance.
type BalanceEffect struct {
	ProductID uuid.UUID
	Delta     decimal.Decimal
}

// BalanceEffects returns the balance changes the transaction causes, origin first.
func (t *Transaction) BalanceEffects() []BalanceEffect {
	var effects []BalanceEffect
	if t.OriginProductID != nil && (t.Type == TransactionTypeExpense || t.Type == TransactionTypeTransfer) {
		effects = append(effects, BalanceEffect{ProductID: *t.OriginProductID, Delta: t.Amount.Neg()})
	}
	if t.DestinationProductID != nil && (t.Type == TransactionTypeIncome || t.Type == TransactionTypeTransfer) {
		effects = append(effects, BalanceEffect{ProductID: *t.DestinationProductID, Delta: t.CreditedAmount()})
	}
	return effects
}

// ChargedProductID returns the product a statement charge is raised on, if any.
// Expenses and outgoing transfers are charges on their origin.
func (t *Transaction) ChargedProductID() *uuid.UUID {
	if t.Type == TransactionTypeExpense || t.Type == TransactionTypeTransfer {
		return t.OriginProductID
	}
	return nil
}

// TouchesProduct reports whether the transaction references productID on either side.
func (t *Transaction) TouchesProduct(productID uuid.UUID) bool {
	return (t.OriginProductID != nil && *t.OriginProductID == productID) ||
		(t.DestinationProductID != nil && *t.DestinationProductID == productID)
}

// SplitInstallments divides total into n parts at the currency's precision.
// Every part is the truncated quotient; the first part absorbs the remainder so
// the parts add up to total exactly.
func SplitInstallments(total decimal.Decimal, n int, currency string) []decimal.Decimal {
	if n <= 0 {
		return nil
	}
	fraction := CurrencyFraction(currency)
	count := decimal.NewFromInt(int64(n))
	base := total.Div(count).Truncate(fraction)

	parts := make([]decimal.Decimal, n)
	for i := range parts {
		parts[i] = base
	}
	parts[0] = total.Sub(base.Mul(count)).Add(base)
	return parts
}

// TransactionFilter narrows transaction listings. Zero values mean "no filter".
type TransactionFilter struct {
	UserID      uuid.UUID
	ProductID   *uuid.UUID
	Type        *TransactionType
	CategoryIDs []uuid.UUID
	StartDate   *time.Time
	EndDate     *time.Time
	Search      string
	Page        int
	Limit       int
}

// TransactionListResult represents the result of listing transactions.
type TransactionListResult struct {
	Transactions []*Transaction
	Total        int64
	Page         int
	Limit        int
	TotalPages   int
}

// TransactionTotals represents aggregated totals for a filtered listing.
type TransactionTotals struct {
	IncomeTotal   decimal.Decimal
	ExpenseTotal  decimal.Decimal
	TransferTotal decimal.Decimal
}
