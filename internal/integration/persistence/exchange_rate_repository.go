package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

// exchangeRateRepository implements the adapter.ExchangeRateRepository interface.
type exchangeRateRepository struct {
	db *gorm.DB
}

// NewExchangeRateRepository creates a new exchange rate repository instance.
func NewExchangeRateRepository(db *gorm.DB) adapter.ExchangeRateRepository {
	return &exchangeRateRepository{
		db: db,
	}
}

// Create stores a new rate. Rates are append-only.
func (r *exchangeRateRepository) Create(ctx context.Context, rate *entity.ExchangeRate) error {
	return r.db.WithContext(ctx).Create(model.ExchangeRateFromEntity(rate)).Error
}

// FindLatest returns the rate with the latest effective time for the ordered pair.
func (r *exchangeRateRepository) FindLatest(ctx context.Context, from, to string) (*entity.ExchangeRate, error) {
	var rateModel model.ExchangeRateModel
	result := r.db.WithContext(ctx).
		Where("from_currency = ? AND to_currency = ?", from, to).
		Order("effective_at DESC, created_at DESC").
		First(&rateModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrRateUnavailable
		}
		return nil, result.Error
	}
	return rateModel.ToEntity(), nil
}

// FindAll returns every stored rate, newest first.
func (r *exchangeRateRepository) FindAll(ctx context.Context) ([]*entity.ExchangeRate, error) {
	var rateModels []model.ExchangeRateModel
	result := r.db.WithContext(ctx).
		Order("effective_at DESC, created_at DESC").
		Find(&rateModels)
	if result.Error != nil {
		return nil, result.Error
	}

	rates := make([]*entity.ExchangeRate, len(rateModels))
	for i := range rateModels {
		rates[i] = rateModels[i].ToEntity()
	}
	return rates, nil
}
