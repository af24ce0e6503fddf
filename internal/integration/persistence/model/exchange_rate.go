package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// ExchangeRateModel represents the exchange_rates table in the database.
type ExchangeRateModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	FromCurrency string          `gorm:"type:varchar(10);not null;index:idx_exchange_rates_pair"`
	ToCurrency   string          `gorm:"type:varchar(10);not null;index:idx_exchange_rates_pair"`
	Rate         decimal.Decimal `gorm:"type:decimal(30,12);not null"`
	EffectiveAt  time.Time       `gorm:"not null"`
	CreatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for the ExchangeRateModel.
func (ExchangeRateModel) TableName() string {
	return "exchange_rates"
}

// ToEntity converts an ExchangeRateModel to a domain ExchangeRate entity.
func (m *ExchangeRateModel) ToEntity() *entity.ExchangeRate {
	return &entity.ExchangeRate{
		ID:           m.ID,
		FromCurrency: m.FromCurrency,
		ToCurrency:   m.ToCurrency,
		Rate:         m.Rate,
		EffectiveAt:  m.EffectiveAt.UTC(),
		CreatedAt:    m.CreatedAt.UTC(),
	}
}

// ExchangeRateFromEntity creates an ExchangeRateModel from a domain ExchangeRate entity.
func ExchangeRateFromEntity(rate *entity.ExchangeRate) *ExchangeRateModel {
	return &ExchangeRateModel{
		ID:           rate.ID,
		FromCurrency: rate.FromCurrency,
		ToCurrency:   rate.ToCurrency,
		Rate:         rate.Rate,
		EffectiveAt:  rate.EffectiveAt,
		CreatedAt:    rate.CreatedAt,
	}
}

// AllModels lists every model of the schema, in dependency order.
func AllModels() []any {
	return []any{
		&InstitutionModel{},
		&ProductModel{},
		&CategoryModel{},
		&TransactionModel{},
		&StatementModel{},
		&StatementItemModel{},
		&StatementAdjustmentModel{},
		&ServiceModel{},
		&ServicePaymentRuleModel{},
		&ServiceBillModel{},
		&ExchangeRateModel{},
	}
}
