package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID                   uuid.UUID        `gorm:"type:uuid;primaryKey"`
	UserID               uuid.UUID        `gorm:"type:uuid;not null;index"`
	Type                 string           `gorm:"type:varchar(10);not null;index"`
	Amount               decimal.Decimal  `gorm:"type:decimal(20,8);not null"`
	Date                 time.Time        `gorm:"type:date;not null;index"`
	Description          string           `gorm:"type:varchar(255);not null"`
	Notes                string           `gorm:"type:text"`
	CategoryID           *uuid.UUID       `gorm:"type:uuid;index"`
	OriginProductID      *uuid.UUID       `gorm:"type:uuid;index"`
	DestinationProductID *uuid.UUID       `gorm:"type:uuid;index"`
	DestinationAmount    *decimal.Decimal `gorm:"type:decimal(20,8)"`
	ExchangeRate         *decimal.Decimal `gorm:"type:decimal(20,8)"`
	InstallmentGroupID   *uuid.UUID       `gorm:"type:uuid;index"`
	InstallmentNumber    *int             `gorm:"type:integer"`
	InstallmentTotal     *int             `gorm:"type:integer"`
	InstallmentAmount    *decimal.Decimal `gorm:"type:decimal(20,8)"`
	CreatedAt            time.Time        `gorm:"not null"`
	UpdatedAt            time.Time        `gorm:"not null"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:                   m.ID,
		UserID:               m.UserID,
		Type:                 entity.TransactionType(m.Type),
		Amount:               m.Amount,
		Date:                 entity.DateOf(m.Date),
		Description:          m.Description,
		Notes:                m.Notes,
		CategoryID:           m.CategoryID,
		OriginProductID:      m.OriginProductID,
		DestinationProductID: m.DestinationProductID,
		DestinationAmount:    m.DestinationAmount,
		ExchangeRate:         m.ExchangeRate,
		InstallmentGroupID:   m.InstallmentGroupID,
		InstallmentNumber:    m.InstallmentNumber,
		InstallmentTotal:     m.InstallmentTotal,
		InstallmentAmount:    m.InstallmentAmount,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:                   transaction.ID,
		UserID:               transaction.UserID,
		Type:                 string(transaction.Type),
		Amount:               transaction.Amount,
		Date:                 entity.DateOf(transaction.Date),
		Description:          transaction.Description,
		Notes:                transaction.Notes,
		CategoryID:           transaction.CategoryID,
		OriginProductID:      transaction.OriginProductID,
		DestinationProductID: transaction.DestinationProductID,
		DestinationAmount:    transaction.DestinationAmount,
		ExchangeRate:         transaction.ExchangeRate,
		InstallmentGroupID:   transaction.InstallmentGroupID,
		InstallmentNumber:    transaction.InstallmentNumber,
		InstallmentTotal:     transaction.InstallmentTotal,
		InstallmentAmount:    transaction.InstallmentAmount,
		CreatedAt:            transaction.CreatedAt,
		UpdatedAt:            transaction.UpdatedAt,
	}
}
