package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// StatementModel represents the statements table in the database.
type StatementModel struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID               uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID            uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_statements_product_closing"`
	PeriodStart          time.Time       `gorm:"type:date;not null"`
	ClosingDate          time.Time       `gorm:"type:date;not null;uniqueIndex:idx_statements_product_closing"`
	DueDate              time.Time       `gorm:"type:date;not null"`
	PaidDate             *time.Time      `gorm:"type:date"`
	PaymentTransactionID *uuid.UUID      `gorm:"type:uuid;index"`
	CalculatedAmount     decimal.Decimal `gorm:"type:decimal(20,8);not null;default:0"`
	AdjustmentsAmount    decimal.Decimal `gorm:"type:decimal(20,8);not null;default:0"`
	TotalAmount          decimal.Decimal `gorm:"type:decimal(20,8);not null;default:0"`
	Status               string          `gorm:"type:varchar(10);not null;index"`
	CreatedAt            time.Time       `gorm:"not null"`
	UpdatedAt            time.Time       `gorm:"not null"`

	Items       []StatementItemModel       `gorm:"foreignKey:StatementID;references:ID"`
	Adjustments []StatementAdjustmentModel `gorm:"foreignKey:StatementID;references:ID"`
}

// TableName returns the table name for the StatementModel.
func (StatementModel) TableName() string {
	return "statements"
}

// StatementItemModel represents the statement_items table in the database.
// A transaction contributes to at most one statement.
type StatementItemModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	StatementID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	TransactionID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	Date          time.Time       `gorm:"type:date;not null"`
	Description   string          `gorm:"type:varchar(255);not null"`
	LateCharge    bool            `gorm:"default:false"`
	CreatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for the StatementItemModel.
func (StatementItemModel) TableName() string {
	return "statement_items"
}

// StatementAdjustmentModel represents the statement_adjustments table in the database.
type StatementAdjustmentModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	StatementID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Kind        string          `gorm:"type:varchar(10);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	Description string          `gorm:"type:varchar(255)"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the StatementAdjustmentModel.
func (StatementAdjustmentModel) TableName() string {
	return "statement_adjustments"
}

// ToEntity converts a StatementModel and its loaded children to a domain Statement.
func (m *StatementModel) ToEntity() *entity.Statement {
	statement := &entity.Statement{
		ID:                   m.ID,
		UserID:               m.UserID,
		ProductID:            m.ProductID,
		PeriodStart:          entity.DateOf(m.PeriodStart),
		ClosingDate:          entity.DateOf(m.ClosingDate),
		DueDate:              entity.DateOf(m.DueDate),
		PaidDate:             m.PaidDate,
		PaymentTransactionID: m.PaymentTransactionID,
		CalculatedAmount:     m.CalculatedAmount,
		AdjustmentsAmount:    m.AdjustmentsAmount,
		TotalAmount:          m.TotalAmount,
		Status:               entity.StatementStatus(m.Status),
		Items:                make([]*entity.StatementItem, 0, len(m.Items)),
		Adjustments:          make([]*entity.StatementAdjustment, 0, len(m.Adjustments)),
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
	if m.PaidDate != nil {
		paid := entity.DateOf(*m.PaidDate)
		statement.PaidDate = &paid
	}
	for i := range m.Items {
		statement.Items = append(statement.Items, m.Items[i].ToEntity())
	}
	for i := range m.Adjustments {
		statement.Adjustments = append(statement.Adjustments, m.Adjustments[i].ToEntity())
	}
	return statement
}

// StatementFromEntity creates a StatementModel from a domain Statement without children.
func StatementFromEntity(statement *entity.Statement) *StatementModel {
	return &StatementModel{
		ID:                   statement.ID,
		UserID:               statement.UserID,
		ProductID:            statement.ProductID,
		PeriodStart:          statement.PeriodStart,
		ClosingDate:          statement.ClosingDate,
		DueDate:              statement.DueDate,
		PaidDate:             statement.PaidDate,
		PaymentTransactionID: statement.PaymentTransactionID,
		CalculatedAmount:     statement.CalculatedAmount,
		AdjustmentsAmount:    statement.AdjustmentsAmount,
		TotalAmount:          statement.TotalAmount,
		Status:               string(statement.Status),
		CreatedAt:            statement.CreatedAt,
		UpdatedAt:            statement.UpdatedAt,
	}
}

// ToEntity converts a StatementItemModel to a domain StatementItem.
func (m *StatementItemModel) ToEntity() *entity.StatementItem {
	return &entity.StatementItem{
		ID:            m.ID,
		StatementID:   m.StatementID,
		TransactionID: m.TransactionID,
		Amount:        m.Amount,
		Date:          entity.DateOf(m.Date),
		Description:   m.Description,
		LateCharge:    m.LateCharge,
		CreatedAt:     m.CreatedAt,
	}
}

// StatementItemFromEntity creates a StatementItemModel from a domain StatementItem.
func StatementItemFromEntity(item *entity.StatementItem) *StatementItemModel {
	return &StatementItemModel{
		ID:            item.ID,
		StatementID:   item.StatementID,
		TransactionID: item.TransactionID,
		Amount:        item.Amount,
		Date:          item.Date,
		Description:   item.Description,
		LateCharge:    item.LateCharge,
		CreatedAt:     item.CreatedAt,
	}
}

// ToEntity converts a StatementAdjustmentModel to a domain StatementAdjustment.
func (m *StatementAdjustmentModel) ToEntity() *entity.StatementAdjustment {
	return &entity.StatementAdjustment{
		ID:          m.ID,
		StatementID: m.StatementID,
		Kind:        entity.AdjustmentKind(m.Kind),
		Amount:      m.Amount,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}
}

// StatementAdjustmentFromEntity creates a StatementAdjustmentModel from a domain StatementAdjustment.
func StatementAdjustmentFromEntity(adjustment *entity.StatementAdjustment) *StatementAdjustmentModel {
	return &StatementAdjustmentModel{
		ID:          adjustment.ID,
		StatementID: adjustment.StatementID,
		Kind:        string(adjustment.Kind),
		Amount:      adjustment.Amount,
		Description: adjustment.Description,
		CreatedAt:   adjustment.CreatedAt,
	}
}
