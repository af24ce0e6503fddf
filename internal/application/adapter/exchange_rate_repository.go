// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// ExchangeRateRepository defines the interface for exchange rate persistence operations.
type ExchangeRateRepository interface {
	// Create stores a rate.
	Create(ctx context.Context, rate *entity.ExchangeRate) error

	// FindLatest retrieves the most recent rate for the exact ordered pair.
	// Returns ErrRateUnavailable when the pair has no rows.
	FindLatest(ctx context.Context, from, to string) (*entity.ExchangeRate, error)

	// FindAll retrieves every stored rate, newest first.
	FindAll(ctx context.Context) ([]*entity.ExchangeRate, error)
}

// RateCache keeps latest rates close to the resolver.
type RateCache interface {
	// Get returns the cached rate for the pair and whether it was present.
	Get(ctx context.Context, from, to string) (*entity.ExchangeRate, bool, error)

	// Set caches the rate for the given duration.
	Set(ctx context.Context, rate *entity.ExchangeRate, ttl time.Duration) error

	// Invalidate drops the cached rate for the pair.
	Invalidate(ctx context.Context, from, to string) error
}
