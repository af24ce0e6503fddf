// Package exchangerate contains exchange rate use cases.
package exchangerate

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// SetRateInput represents a new directional rate.
type SetRateInput struct {
	From        string
	To          string
	Rate        decimal.Decimal
	EffectiveAt time.Time
}

// SetRateUseCase stores an exchange rate.
type SetRateUseCase struct {
	rates *ledger.RateResolver
}

// NewSetRateUseCase creates a new SetRateUseCase instance.
func NewSetRateUseCase(rates *ledger.RateResolver) *SetRateUseCase {
	return &SetRateUseCase{rates: rates}
}

// Execute stores the rate. Rates are append-only; the latest effective one wins.
func (uc *SetRateUseCase) Execute(ctx context.Context, input SetRateInput) (*entity.ExchangeRate, error) {
	return uc.rates.SetRate(ctx, input.From, input.To, input.Rate, input.EffectiveAt)
}

// GetLatestRateUseCase returns the rate in force for a pair.
type GetLatestRateUseCase struct {
	rates *ledger.RateResolver
}

// NewGetLatestRateUseCase creates a new GetLatestRateUseCase instance.
func NewGetLatestRateUseCase(rates *ledger.RateResolver) *GetLatestRateUseCase {
	return &GetLatestRateUseCase{rates: rates}
}

// Execute looks up the rate from one currency to another.
func (uc *GetLatestRateUseCase) Execute(ctx context.Context, from, to string) (*entity.ExchangeRate, error) {
	return uc.rates.LatestRate(ctx, from, to)
}

// ListRatesUseCase lists every stored rate.
type ListRatesUseCase struct {
	rates *ledger.RateResolver
}

// NewListRatesUseCase creates a new ListRatesUseCase instance.
func NewListRatesUseCase(rates *ledger.RateResolver) *ListRatesUseCase {
	return &ListRatesUseCase{rates: rates}
}

// Execute returns the rates newest first.
func (uc *ListRatesUseCase) Execute(ctx context.Context) ([]*entity.ExchangeRate, error) {
	return uc.rates.ListRates(ctx)
}
