package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// ProductModel represents the products table in the database.
type ProductModel struct {
	ID               uuid.UUID        `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID        `gorm:"type:uuid;not null;index"`
	Name             string           `gorm:"type:varchar(255);not null"`
	Type             string           `gorm:"type:varchar(20);not null"`
	Currency         string           `gorm:"type:varchar(10);not null"`
	Balance          decimal.Decimal  `gorm:"type:decimal(20,8);not null;default:0"`
	InstitutionID    *uuid.UUID       `gorm:"type:uuid;index"`
	ClosingDay       *int             `gorm:"type:integer"`
	DueDay           *int             `gorm:"type:integer"`
	CreditLimit      *decimal.Decimal `gorm:"type:decimal(20,8)"`
	SharedLimit      bool             `gorm:"default:false"`
	LinkedProductID  *uuid.UUID       `gorm:"type:uuid;index"`
	LastFourDigits   string           `gorm:"type:varchar(4)"`
	Provider         string           `gorm:"type:varchar(50)"`
	ExpirationMonth  *int             `gorm:"type:integer"`
	ExpirationYear   *int             `gorm:"type:integer"`
	LoanPrincipal    *decimal.Decimal `gorm:"type:decimal(20,8)"`
	LoanInterestRate *decimal.Decimal `gorm:"type:decimal(10,6)"`
	Version          int64            `gorm:"not null;default:1"`
	CreatedAt        time.Time        `gorm:"not null"`
	UpdatedAt        time.Time        `gorm:"not null"`
}

// TableName returns the table name for the ProductModel.
func (ProductModel) TableName() string {
	return "products"
}

// ToEntity converts a ProductModel to a domain Product entity.
func (m *ProductModel) ToEntity() *entity.Product {
	return &entity.Product{
		ID:               m.ID,
		UserID:           m.UserID,
		Name:             m.Name,
		Type:             entity.ProductType(m.Type),
		Currency:         m.Currency,
		Balance:          m.Balance,
		InstitutionID:    m.InstitutionID,
		ClosingDay:       m.ClosingDay,
		DueDay:           m.DueDay,
		CreditLimit:      m.CreditLimit,
		SharedLimit:      m.SharedLimit,
		LinkedProductID:  m.LinkedProductID,
		LastFourDigits:   m.LastFourDigits,
		Provider:         m.Provider,
		ExpirationMonth:  m.ExpirationMonth,
		ExpirationYear:   m.ExpirationYear,
		LoanPrincipal:    m.LoanPrincipal,
		LoanInterestRate: m.LoanInterestRate,
		Version:          m.Version,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// ProductFromEntity creates a ProductModel from a domain Product entity.
func ProductFromEntity(product *entity.Product) *ProductModel {
	return &ProductModel{
		ID:               product.ID,
		UserID:           product.UserID,
		Name:             product.Name,
		Type:             string(product.Type),
		Currency:         product.Currency,
		Balance:          product.Balance,
		InstitutionID:    product.InstitutionID,
		ClosingDay:       product.ClosingDay,
		DueDay:           product.DueDay,
		CreditLimit:      product.CreditLimit,
		SharedLimit:      product.SharedLimit,
		LinkedProductID:  product.LinkedProductID,
		LastFourDigits:   product.LastFourDigits,
		Provider:         product.Provider,
		ExpirationMonth:  product.ExpirationMonth,
		ExpirationYear:   product.ExpirationYear,
		LoanPrincipal:    product.LoanPrincipal,
		LoanInterestRate: product.LoanInterestRate,
		Version:          product.Version,
		CreatedAt:        product.CreatedAt,
		UpdatedAt:        product.UpdatedAt,
	}
}
