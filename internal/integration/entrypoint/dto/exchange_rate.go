package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// SetRateRequest represents a new directional exchange rate. EffectiveAt is RFC 3339
// and defaults to now.
type SetRateRequest struct {
	From        string `json:"from" binding:"required"`
	To          string `json:"to" binding:"required"`
	Rate        string `json:"rate" binding:"required"`
	EffectiveAt string `json:"effective_at,omitempty"`
}

// ExchangeRateResponse represents an exchange rate.
type ExchangeRateResponse struct {
	ID          string    `json:"id,omitempty"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	Rate        string    `json:"rate"`
	EffectiveAt time.Time `json:"effective_at"`
}

// ExchangeRateListResponse represents every stored rate.
type ExchangeRateListResponse struct {
	Rates []ExchangeRateResponse `json:"rates"`
}

// ToExchangeRateResponse converts an exchange rate. Identity rates have no id.
func ToExchangeRateResponse(r *entity.ExchangeRate) ExchangeRateResponse {
	response := ExchangeRateResponse{
		From:        r.FromCurrency,
		To:          r.ToCurrency,
		Rate:        r.Rate.String(),
		EffectiveAt: r.EffectiveAt,
	}
	if r.ID != uuid.Nil {
		response.ID = r.ID.String()
	}
	return response
}

// ToExchangeRateListResponse converts a slice of rates.
func ToExchangeRateListResponse(rates []*entity.ExchangeRate) ExchangeRateListResponse {
	response := ExchangeRateListResponse{Rates: make([]ExchangeRateResponse, 0, len(rates))}
	for _, r := range rates {
		response.Rates = append(response.Rates, ToExchangeRateResponse(r))
	}
	return response
}
