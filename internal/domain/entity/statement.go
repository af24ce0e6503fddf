package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StatementStatus is the lifecycle state of a credit-card statement.
type StatementStatus string

const (
	StatementStatusOpen   StatementStatus = "OPEN"
	StatementStatusClosed StatementStatus = "CLOSED"
	StatementStatusPaid   StatementStatus = "PAID"
)

// AdjustmentKind classifies a manual statement correction.
type AdjustmentKind string

const (
	AdjustmentKindFee      AdjustmentKind = "FEE"
	AdjustmentKindInterest AdjustmentKind = "INTEREST"
	AdjustmentKindDiscount AdjustmentKind = "DISCOUNT"
	AdjustmentKindDispute  AdjustmentKind = "DISPUTE"
	AdjustmentKindOther    AdjustmentKind = "OTHER"
)

// IsValid reports whether k is a known adjustment kind.
func (k AdjustmentKind) IsValid() bool {
	switch k {
	case AdjustmentKindFee, AdjustmentKindInterest, AdjustmentKindDiscount, AdjustmentKindDispute, AdjustmentKindOther:
		return true
	}
	return false
}

// Statement is one billing cycle of a credit card.
// TotalAmount is always CalculatedAmount plus AdjustmentsAmount.
type Statement struct {
	ID                   uuid.UUID
	UserID               uuid.UUID
	ProductID            uuid.UUID
	PeriodStart          time.Time
	ClosingDate          time.Time
	DueDate              time.Time
	PaidDate             *time.Time
	PaymentTransactionID *uuid.UUID
	CalculatedAmount     decimal.Decimal
	AdjustmentsAmount    decimal.Decimal
	TotalAmount          decimal.Decimal
	Status               StatementStatus
	Items                []*StatementItem
	Adjustments          []*StatementAdjustment
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// StatementItem is one transaction's contribution to a statement.
// LateCharge marks charges dated before the statement's period.
type StatementItem struct {
	ID            uuid.UUID
	StatementID   uuid.UUID
	TransactionID uuid.UUID
	Amount        decimal.Decimal
	Date          time.Time
	Description   string
	LateCharge    bool
	CreatedAt     time.Time
}

// StatementAdjustment is a manual correction. Positive amounts increase what is owed.
type StatementAdjustment struct {
	ID          uuid.UUID
	StatementID uuid.UUID
	Kind        AdjustmentKind
	Amount      decimal.Decimal
	Description string
	CreatedAt   time.Time
}

// NewStatement opens a statement for card covering period.
func NewStatement(card *Product, period Period) *Statement {
	now := time.Now().UTC()

	return &Statement{
		ID:                uuid.New(),
		UserID:            card.UserID,
		ProductID:         card.ID,
		PeriodStart:       period.Start,
		ClosingDate:       period.Closing,
		DueDate:           period.Due,
		CalculatedAmount:  decimal.Zero,
		AdjustmentsAmount: decimal.Zero,
		TotalAmount:       decimal.Zero,
		Status:            StatementStatusOpen,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// Period returns the billing period the statement covers.
func (s *Statement) Period() Period {
	return Period{Start: s.PeriodStart, Closing: s.ClosingDate, Due: s.DueDate}
}

// NewItem builds the item for txn on this statement.
func (s *Statement) NewItem(txn *Transaction) *StatementItem {
	return &StatementItem{
		ID:            uuid.New(),
		StatementID:   s.ID,
		TransactionID: txn.ID,
		Amount:        txn.Amount,
		Date:          txn.Date,
		Description:   txn.Description,
		LateCharge:    DateOf(txn.Date).Before(s.PeriodStart),
		CreatedAt:     time.Now().UTC(),
	}
}

// Recompute derives the amounts from the loaded items and adjustments.
func (s *Statement) Recompute() {
	calculated := decimal.Zero
	for _, item := range s.Items {
		calculated = calculated.Add(item.Amount)
	}
	adjustments := decimal.Zero
	for _, adj := range s.Adjustments {
		adjustments = adjustments.Add(adj.Amount)
	}
	s.CalculatedAmount = calculated
	s.AdjustmentsAmount = adjustments
	s.TotalAmount = calculated.Add(adjustments)
	s.UpdatedAt = time.Now().UTC()
}

// IsMutable reports whether items or adjustments may still change.
func (s *Statement) IsMutable() bool {
	return s.Status != StatementStatusPaid
}
