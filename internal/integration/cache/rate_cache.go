// Package cache provides Redis-backed caches for ledger lookups.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

const rateKeyPrefix = "fx:"

// cachedRate is the JSON form of a rate stored in Redis.
type cachedRate struct {
	ID          uuid.UUID       `json:"id"`
	From        string          `json:"from"`
	To          string          `json:"to"`
	Rate        decimal.Decimal `json:"rate"`
	EffectiveAt time.Time       `json:"effective_at"`
	CreatedAt   time.Time       `json:"created_at"`
}

// rateCache implements the adapter.RateCache interface.
type rateCache struct {
	client *redis.Client
}

// NewRateCache creates a rate cache on the given Redis client.
func NewRateCache(client *redis.Client) adapter.RateCache {
	return &rateCache{client: client}
}

func rateKey(from, to string) string {
	return rateKeyPrefix + from + ":" + to
}

// Get returns the cached rate for the pair. ok is false on a miss.
func (c *rateCache) Get(ctx context.Context, from, to string) (*entity.ExchangeRate, bool, error) {
	raw, err := c.client.Get(ctx, rateKey(from, to)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read cached rate: %w", err)
	}

	var cached cachedRate
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, false, fmt.Errorf("decode cached rate: %w", err)
	}
	return &entity.ExchangeRate{
		ID:           cached.ID,
		FromCurrency: cached.From,
		ToCurrency:   cached.To,
		Rate:         cached.Rate,
		EffectiveAt:  cached.EffectiveAt,
		CreatedAt:    cached.CreatedAt,
	}, true, nil
}

// Set stores the rate for ttl.
func (c *rateCache) Set(ctx context.Context, rate *entity.ExchangeRate, ttl time.Duration) error {
	body, err := json.Marshal(cachedRate{
		ID:          rate.ID,
		From:        rate.FromCurrency,
		To:          rate.ToCurrency,
		Rate:        rate.Rate,
		EffectiveAt: rate.EffectiveAt,
		CreatedAt:   rate.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("encode rate: %w", err)
	}
	if err := c.client.Set(ctx, rateKey(rate.FromCurrency, rate.ToCurrency), body, ttl).Err(); err != nil {
		return fmt.Errorf("write cached rate: %w", err)
	}
	return nil
}

// Invalidate drops the cached rate for the pair.
func (c *rateCache) Invalidate(ctx context.Context, from, to string) error {
	if err := c.client.Del(ctx, rateKey(from, to)).Err(); err != nil {
		return fmt.Errorf("invalidate cached rate: %w", err)
	}
	return nil
}
