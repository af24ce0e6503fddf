package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// RateResolver looks up directional exchange rates. Only the exact ordered pair is
// used: inverse and chained rates are never derived.
type RateResolver struct {
	repo  adapter.ExchangeRateRepository
	cache adapter.RateCache
	ttl   time.Duration

	// generations counts SetRate calls per pair so a lookup that read the
	// repository before a newer rate landed does not put the old one back.
	mu          sync.Mutex
	generations map[string]uint64
}

// NewRateResolver creates a resolver. cache may be nil.
func NewRateResolver(repo adapter.ExchangeRateRepository, cache adapter.RateCache, ttl time.Duration) *RateResolver {
	return &RateResolver{
		repo:        repo,
		cache:       cache,
		ttl:         ttl,
		generations: make(map[string]uint64),
	}
}

func pairKey(from, to string) string {
	return from + "/" + to
}

func (r *RateResolver) generation(from, to string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.generations[pairKey(from, to)]
}

// cacheIfCurrent caches rate unless SetRate ran for the pair after seen was read.
func (r *RateResolver) cacheIfCurrent(ctx context.Context, rate *entity.ExchangeRate, seen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.generations[pairKey(rate.FromCurrency, rate.ToCurrency)] != seen {
		return
	}
	if err := r.cache.Set(ctx, rate, r.ttl); err != nil {
		slog.Warn("Rate cache write failed", "from", rate.FromCurrency, "to", rate.ToCurrency, "error", err)
	}
}

// LatestRate returns the most recent rate from one currency to another.
// Identical currencies resolve to 1 without a lookup.
func (r *RateResolver) LatestRate(ctx context.Context, from, to string) (*entity.ExchangeRate, error) {
	from, to = entity.NormalizeCurrency(from), entity.NormalizeCurrency(to)
	if from == to {
		return entity.IdentityRate(from), nil
	}

	seen := r.generation(from, to)
	if r.cache != nil {
		rate, ok, err := r.cache.Get(ctx, from, to)
		if err != nil {
			slog.Warn("Rate cache read failed", "from", from, "to", to, "error", err)
		} else if ok {
			return rate, nil
		}
	}

	rate, err := r.repo.FindLatest(ctx, from, to)
	if err != nil {
		if errors.Is(err, domainerror.ErrRateUnavailable) {
			return nil, domainerror.NewExchangeRateError(
				domainerror.ErrCodeRateUnavailable,
				fmt.Sprintf("no exchange rate from %s to %s", from, to),
				err,
			)
		}
		return nil, fmt.Errorf("failed to load exchange rate: %w", err)
	}

	if r.cache != nil {
		r.cacheIfCurrent(ctx, rate, seen)
	}
	return rate, nil
}

// Convert converts amount and returns the rate it used. The result is rounded to
// the minor unit of the target currency.
func (r *RateResolver) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, *entity.ExchangeRate, error) {
	rate, err := r.LatestRate(ctx, from, to)
	if err != nil {
		return decimal.Zero, nil, err
	}
	return rate.Convert(amount), rate, nil
}

// RateFor returns the rate needed to move money between two currencies, or nil when
// they are equal. A missing rate is reported as an unresolvable currency mismatch.
func (r *RateResolver) RateFor(ctx context.Context, from, to string) (*entity.ExchangeRate, error) {
	if entity.NormalizeCurrency(from) == entity.NormalizeCurrency(to) {
		return nil, nil
	}
	rate, err := r.LatestRate(ctx, from, to)
	if err != nil {
		if errors.Is(err, domainerror.ErrRateUnavailable) {
			return nil, currencyMismatch(from, to)
		}
		return nil, err
	}
	return rate, nil
}

// SetRate stores a new rate and drops the cached one for the pair.
func (r *RateResolver) SetRate(ctx context.Context, from, to string, value decimal.Decimal, effectiveAt time.Time) (*entity.ExchangeRate, error) {
	from, to = entity.NormalizeCurrency(from), entity.NormalizeCurrency(to)
	if !entity.IsValidCurrency(from) || !entity.IsValidCurrency(to) {
		return nil, domainerror.NewExchangeRateError(
			domainerror.ErrCodeInvalidRateCurrency,
			fmt.Sprintf("unknown currency pair %s/%s", from, to),
			domainerror.ErrInvalidRateCurrency,
		)
	}
	if from == to {
		return nil, domainerror.NewExchangeRateError(domainerror.ErrCodeSameCurrencyRate, "currencies must differ", domainerror.ErrSameCurrencyRate)
	}
	if !value.IsPositive() {
		return nil, domainerror.NewExchangeRateError(domainerror.ErrCodeInvalidRate, "rate must be positive", domainerror.ErrInvalidRate)
	}
	if effectiveAt.IsZero() {
		effectiveAt = time.Now()
	}

	rate := entity.NewExchangeRate(from, to, value, effectiveAt)
	if err := r.repo.Create(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to store exchange rate: %w", err)
	}

	r.mu.Lock()
	r.generations[pairKey(from, to)]++
	if r.cache != nil {
		if err := r.cache.Invalidate(ctx, from, to); err != nil {
			slog.Warn("Rate cache invalidation failed", "from", from, "to", to, "error", err)
		}
	}
	r.mu.Unlock()

	slog.Info("Exchange rate stored", "from", from, "to", to, "rate", value.String())
	return rate, nil
}

// ListRates returns every stored rate, newest first.
func (r *RateResolver) ListRates(ctx context.Context) ([]*entity.ExchangeRate, error) {
	rates, err := r.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange rates: %w", err)
	}
	return rates, nil
}
