package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// ServiceModel represents the services table in the database.
type ServiceModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name          string          `gorm:"type:varchar(255);not null"`
	DefaultAmount decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	Currency      string          `gorm:"type:varchar(10);not null"`
	CategoryID    *uuid.UUID      `gorm:"type:uuid"`
	Active        bool            `gorm:"default:true"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for the ServiceModel.
func (ServiceModel) TableName() string {
	return "services"
}

// ToEntity converts a ServiceModel to a domain Service entity.
func (m *ServiceModel) ToEntity() *entity.Service {
	return &entity.Service{
		ID:            m.ID,
		UserID:        m.UserID,
		Name:          m.Name,
		DefaultAmount: m.DefaultAmount,
		Currency:      m.Currency,
		CategoryID:    m.CategoryID,
		Active:        m.Active,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// ServiceFromEntity creates a ServiceModel from a domain Service entity.
func ServiceFromEntity(service *entity.Service) *ServiceModel {
	return &ServiceModel{
		ID:            service.ID,
		UserID:        service.UserID,
		Name:          service.Name,
		DefaultAmount: service.DefaultAmount,
		Currency:      service.Currency,
		CategoryID:    service.CategoryID,
		Active:        service.Active,
		CreatedAt:     service.CreatedAt,
		UpdatedAt:     service.UpdatedAt,
	}
}

// ServicePaymentRuleModel represents the service_payment_rules table in the database.
type ServicePaymentRuleModel struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ServiceID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	UserID           uuid.UUID  `gorm:"type:uuid;not null"`
	DueDay           int        `gorm:"not null"`
	DefaultProductID *uuid.UUID `gorm:"type:uuid;index"`
	StartYear        int        `gorm:"not null"`
	StartMonth       int        `gorm:"not null"`
	EndYear          *int
	EndMonth         *int
	CreatedAt        time.Time `gorm:"not null"`
}

// TableName returns the table name for the ServicePaymentRuleModel.
func (ServicePaymentRuleModel) TableName() string {
	return "service_payment_rules"
}

// ToEntity converts a ServicePaymentRuleModel to a domain ServicePaymentRule entity.
func (m *ServicePaymentRuleModel) ToEntity() *entity.ServicePaymentRule {
	return &entity.ServicePaymentRule{
		ID:               m.ID,
		ServiceID:        m.ServiceID,
		UserID:           m.UserID,
		DueDay:           m.DueDay,
		DefaultProductID: m.DefaultProductID,
		StartYear:        m.StartYear,
		StartMonth:       m.StartMonth,
		EndYear:          m.EndYear,
		EndMonth:         m.EndMonth,
		CreatedAt:        m.CreatedAt,
	}
}

// ServicePaymentRuleFromEntity creates a ServicePaymentRuleModel from a domain entity.
func ServicePaymentRuleFromEntity(rule *entity.ServicePaymentRule) *ServicePaymentRuleModel {
	return &ServicePaymentRuleModel{
		ID:               rule.ID,
		ServiceID:        rule.ServiceID,
		UserID:           rule.UserID,
		DueDay:           rule.DueDay,
		DefaultProductID: rule.DefaultProductID,
		StartYear:        rule.StartYear,
		StartMonth:       rule.StartMonth,
		EndYear:          rule.EndYear,
		EndMonth:         rule.EndMonth,
		CreatedAt:        rule.CreatedAt,
	}
}

// ServiceBillModel represents the service_bills table in the database.
type ServiceBillModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ServiceID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_service_bills_period"`
	Year          int             `gorm:"not null;uniqueIndex:idx_service_bills_period"`
	Month         int             `gorm:"not null;uniqueIndex:idx_service_bills_period"`
	DueDate       time.Time       `gorm:"type:date;not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	Currency      string          `gorm:"type:varchar(10);not null"`
	Status        string          `gorm:"type:varchar(10);not null;index"`
	PaidDate      *time.Time      `gorm:"type:date"`
	TransactionID *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for the ServiceBillModel.
func (ServiceBillModel) TableName() string {
	return "service_bills"
}

// ToEntity converts a ServiceBillModel to a domain ServiceBill entity.
func (m *ServiceBillModel) ToEntity() *entity.ServiceBill {
	bill := &entity.ServiceBill{
		ID:            m.ID,
		UserID:        m.UserID,
		ServiceID:     m.ServiceID,
		Year:          m.Year,
		Month:         m.Month,
		DueDate:       entity.DateOf(m.DueDate),
		Amount:        m.Amount,
		Currency:      m.Currency,
		Status:        entity.BillStatus(m.Status),
		TransactionID: m.TransactionID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.PaidDate != nil {
		paid := entity.DateOf(*m.PaidDate)
		bill.PaidDate = &paid
	}
	return bill
}

// ServiceBillFromEntity creates a ServiceBillModel from a domain ServiceBill entity.
func ServiceBillFromEntity(bill *entity.ServiceBill) *ServiceBillModel {
	return &ServiceBillModel{
		ID:            bill.ID,
		UserID:        bill.UserID,
		ServiceID:     bill.ServiceID,
		Year:          bill.Year,
		Month:         bill.Month,
		DueDate:       bill.DueDate,
		Amount:        bill.Amount,
		Currency:      bill.Currency,
		Status:        string(bill.Status),
		PaidDate:      bill.PaidDate,
		TransactionID: bill.TransactionID,
		CreatedAt:     bill.CreatedAt,
		UpdatedAt:     bill.UpdatedAt,
	}
}
