package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

func newTestCache(t *testing.T) (*miniredis.Miniredis, *rateCache) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return server, &rateCache{client: client}
}

func TestRateCache(t *testing.T) {
	ctx := context.Background()
	effective := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rate := entity.NewExchangeRate("USD", "BRL", decimal.RequireFromString("5.1234"), effective)

	t.Run("miss returns not ok", func(t *testing.T) {
		_, c := newTestCache(t)
		got, ok, err := c.Get(ctx, "USD", "BRL")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok || got != nil {
			t.Errorf("expected a miss, got %+v", got)
		}
	})

	t.Run("set then get returns the rate", func(t *testing.T) {
		_, c := newTestCache(t)
		if err := c.Set(ctx, rate, time.Minute); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, ok, err := c.Get(ctx, "USD", "BRL")
		if err != nil || !ok {
			t.Fatalf("expected a hit, got ok=%v err=%v", ok, err)
		}
		if !got.Rate.Equal(rate.Rate) {
			t.Errorf("expected rate %s, got %s", rate.Rate, got.Rate)
		}
		if got.ID != rate.ID || !got.EffectiveAt.Equal(effective) {
			t.Errorf("expected %v at %v, got %v at %v", rate.ID, effective, got.ID, got.EffectiveAt)
		}
	})

	t.Run("pair is directional", func(t *testing.T) {
		_, c := newTestCache(t)
		if err := c.Set(ctx, rate, time.Minute); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok, _ := c.Get(ctx, "BRL", "USD"); ok {
			t.Error("expected the inverse pair to miss")
		}
	})

	t.Run("entries expire after ttl", func(t *testing.T) {
		server, c := newTestCache(t)
		if err := c.Set(ctx, rate, time.Minute); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		server.FastForward(2 * time.Minute)
		if _, ok, _ := c.Get(ctx, "USD", "BRL"); ok {
			t.Error("expected the entry to expire")
		}
	})

	t.Run("invalidate drops the entry", func(t *testing.T) {
		_, c := newTestCache(t)
		if err := c.Set(ctx, rate, time.Minute); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := c.Invalidate(ctx, "USD", "BRL"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok, _ := c.Get(ctx, "USD", "BRL"); ok {
			t.Error("expected a miss after invalidation")
		}
	})

	t.Run("corrupt entry is reported", func(t *testing.T) {
		server, c := newTestCache(t)
		if err := server.Set(rateKey("USD", "BRL"), "not-json"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, _, err := c.Get(ctx, "USD", "BRL"); err == nil {
			t.Error("expected a decode error")
		}
	})
}
