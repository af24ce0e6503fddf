package ledger_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

type memoryRateCache struct {
	mu    sync.Mutex
	rates map[string]*entity.ExchangeRate
}

func newMemoryRateCache() *memoryRateCache {
	return &memoryRateCache{rates: make(map[string]*entity.ExchangeRate)}
}

func (c *memoryRateCache) Get(_ context.Context, from, to string) (*entity.ExchangeRate, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rate, ok := c.rates[from+to]
	return rate, ok, nil
}

func (c *memoryRateCache) Set(_ context.Context, rate *entity.ExchangeRate, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rates[rate.FromCurrency+rate.ToCurrency] = rate
	return nil
}

func (c *memoryRateCache) Invalidate(_ context.Context, from, to string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.rates, from+to)
	return nil
}

// slowRates runs beforeReturn between reading the latest rate and handing it back.
type slowRates struct {
	adapter.ExchangeRateRepository
	beforeReturn func()
}

func (r *slowRates) FindLatest(ctx context.Context, from, to string) (*entity.ExchangeRate, error) {
	rate, err := r.ExchangeRateRepository.FindLatest(ctx, from, to)
	if r.beforeReturn != nil {
		hook := r.beforeReturn
		r.beforeReturn = nil
		hook()
	}
	return rate, err
}

func TestSetRateIsNotShadowedByAnInFlightLookup(t *testing.T) {
	f := newFixture(t, day(2025, time.March, 10))
	cache := newMemoryRateCache()
	repo := &slowRates{ExchangeRateRepository: f.repos.Rates}
	rates := ledger.NewRateResolver(repo, cache, time.Hour)

	if _, err := rates.SetRate(f.ctx, "USD", "ARS", dec("1000"), day(2025, time.March, 1)); err != nil {
		t.Fatalf("SetRate: %v", err)
	}

	repo.beforeReturn = func() {
		if _, err := rates.SetRate(f.ctx, "USD", "ARS", dec("1200"), day(2025, time.March, 2)); err != nil {
			t.Errorf("SetRate during lookup: %v", err)
		}
	}
	first, err := rates.LatestRate(f.ctx, "USD", "ARS")
	if err != nil {
		t.Fatalf("LatestRate: %v", err)
	}
	if !first.Rate.Equal(dec("1000")) {
		t.Fatalf("in-flight lookup = %s, want the rate it read, 1000", first.Rate)
	}

	if cached, ok, _ := cache.Get(f.ctx, "USD", "ARS"); ok {
		t.Errorf("cache holds %s after a newer rate was stored", cached.Rate)
	}

	latest, err := rates.LatestRate(f.ctx, "USD", "ARS")
	if err != nil {
		t.Fatalf("LatestRate: %v", err)
	}
	if !latest.Rate.Equal(dec("1200")) {
		t.Errorf("latest rate = %s, want 1200", latest.Rate)
	}
	if cached, ok, _ := cache.Get(f.ctx, "USD", "ARS"); !ok || !cached.Rate.Equal(dec("1200")) {
		t.Error("the new rate was not cached by the next lookup")
	}
}
