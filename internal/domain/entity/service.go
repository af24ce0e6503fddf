package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service is a recurring obligation such as a utility or subscription.
type Service struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Name          string
	DefaultAmount decimal.Decimal
	Currency      string
	CategoryID    *uuid.UUID
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewService creates a new active Service entity.
func NewService(userID uuid.UUID, name string, defaultAmount decimal.Decimal, currency string, categoryID *uuid.UUID) *Service {
	now := time.Now().UTC()

	return &Service{
		ID:            uuid.New(),
		UserID:        userID,
		Name:          name,
		DefaultAmount: defaultAmount,
		Currency:      NormalizeCurrency(currency),
		CategoryID:    categoryID,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// ServicePaymentRule sets the due day and default payment product of a service
// from a starting month, optionally until an ending month.
type ServicePaymentRule struct {
	ID               uuid.UUID
	ServiceID        uuid.UUID
	UserID           uuid.UUID
	DueDay           int
	DefaultProductID *uuid.UUID
	StartYear        int
	StartMonth       int
	EndYear          *int
	EndMonth         *int
	CreatedAt        time.Time
}

// AppliesTo reports whether the rule is in force for (year, month).
func (r *ServicePaymentRule) AppliesTo(year, month int) bool {
	period := MonthIndex(year, month)
	if period < MonthIndex(r.StartYear, r.StartMonth) {
		return false
	}
	if r.EndYear != nil && r.EndMonth != nil && period > MonthIndex(*r.EndYear, *r.EndMonth) {
		return false
	}
	return true
}

// SelectRule returns the rule in force for (year, month): among applicable rules,
// the one with the latest start, ties going to the most recently created.
func SelectRule(rules []*ServicePaymentRule, year, month int) *ServicePaymentRule {
	var selected *ServicePaymentRule
	for _, r := range rules {
		if !r.AppliesTo(year, month) {
			continue
		}
		if selected == nil {
			selected = r
			continue
		}
		start, best := MonthIndex(r.StartYear, r.StartMonth), MonthIndex(selected.StartYear, selected.StartMonth)
		if start > best || (start == best && r.CreatedAt.After(selected.CreatedAt)) {
			selected = r
		}
	}
	return selected
}

// BillStatus is the stored status of a bill. Overdue is derived, never stored.
type BillStatus string

const (
	BillStatusPending BillStatus = "PENDING"
	BillStatusPaid    BillStatus = "PAID"
)

// ServiceBill is one period's instance of a service obligation.
type ServiceBill struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	ServiceID     uuid.UUID
	Year          int
	Month         int
	DueDate       time.Time
	Amount        decimal.Decimal
	Currency      string
	Status        BillStatus
	PaidDate      *time.Time
	TransactionID *uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewServiceBill builds the pending bill of service for (year, month) due on the rule's day.
func NewServiceBill(service *Service, rule *ServicePaymentRule, year, month int) *ServiceBill {
	now := time.Now().UTC()

	return &ServiceBill{
		ID:        uuid.New(),
		UserID:    service.UserID,
		ServiceID: service.ID,
		Year:      year,
		Month:     month,
		DueDate:   ClampedDate(year, time.Month(month), rule.DueDay),
		Amount:    service.DefaultAmount,
		Currency:  service.Currency,
		Status:    BillStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsOverdue reports whether the bill is still pending while viewing a later period.
// A pending bill for the viewed period itself is not overdue.
func (b *ServiceBill) IsOverdue(viewYear, viewMonth int) bool {
	return b.Status == BillStatusPending && MonthIndex(b.Year, b.Month) < MonthIndex(viewYear, viewMonth)
}

// MarkPaid links the settling transaction.
func (b *ServiceBill) MarkPaid(transactionID uuid.UUID, paidDate time.Time) {
	date := DateOf(paidDate)
	b.Status = BillStatusPaid
	b.TransactionID = &transactionID
	b.PaidDate = &date
	b.UpdatedAt = time.Now().UTC()
}

// Reopen clears the settling transaction and returns the bill to pending.
func (b *ServiceBill) Reopen() {
	b.Status = BillStatusPending
	b.TransactionID = nil
	b.PaidDate = nil
	b.UpdatedAt = time.Now().UTC()
}
