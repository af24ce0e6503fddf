package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExchangeRate converts FromCurrency amounts into ToCurrency by multiplication.
type ExchangeRate struct {
	ID           uuid.UUID
	FromCurrency string
	ToCurrency   string
	Rate         decimal.Decimal
	EffectiveAt  time.Time
	CreatedAt    time.Time
}

// NewExchangeRate creates a new ExchangeRate entity.
func NewExchangeRate(from, to string, rate decimal.Decimal, effectiveAt time.Time) *ExchangeRate {
	return &ExchangeRate{
		ID:           uuid.New(),
		FromCurrency: NormalizeCurrency(from),
		ToCurrency:   NormalizeCurrency(to),
		Rate:         rate,
		EffectiveAt:  effectiveAt.UTC(),
		CreatedAt:    time.Now().UTC(),
	}
}

// IdentityRate returns the implicit rate of a currency to itself.
func IdentityRate(currency string) *ExchangeRate {
	return &ExchangeRate{
		FromCurrency: NormalizeCurrency(currency),
		ToCurrency:   NormalizeCurrency(currency),
		Rate:         decimal.NewFromInt(1),
	}
}

// Convert applies the rate to amount, rounded to the target currency.
func (r *ExchangeRate) Convert(amount decimal.Decimal) decimal.Decimal {
	return RoundToCurrency(amount.Mul(r.Rate), r.ToCurrency)
}
