// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

// productDescriptiveColumns are the columns Update may change.
var productDescriptiveColumns = []string{
	"name", "institution_id", "closing_day", "due_day", "credit_limit", "shared_limit",
	"linked_product_id", "last_four_digits", "provider", "expiration_month",
	"expiration_year", "loan_principal", "loan_interest_rate", "updated_at",
}

// productRepository implements the adapter.ProductRepository interface.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository instance.
func NewProductRepository(db *gorm.DB) adapter.ProductRepository {
	return &productRepository{
		db: db,
	}
}

// Create creates a new product in the database.
func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Create(model.ProductFromEntity(product)).Error
}

// FindByID retrieves a product by its ID.
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productModel model.ProductModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&productModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrProductNotFound
		}
		return nil, result.Error
	}
	return productModel.ToEntity(), nil
}

// FindByUser retrieves all products for a given user ordered by name.
func (r *productRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Product, error) {
	var productModels []model.ProductModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&productModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toProducts(productModels), nil
}

// FindLinked retrieves the cards sharing the limit of the given parent card.
func (r *productRepository) FindLinked(ctx context.Context, parentID uuid.UUID) ([]*entity.Product, error) {
	var productModels []model.ProductModel
	result := r.db.WithContext(ctx).
		Where("linked_product_id = ? AND shared_limit = ?", parentID, true).
		Find(&productModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toProducts(productModels), nil
}

// FindCardsWithBillingCycle retrieves every credit card that has closing and due days.
func (r *productRepository) FindCardsWithBillingCycle(ctx context.Context) ([]*entity.Product, error) {
	var productModels []model.ProductModel
	result := r.db.WithContext(ctx).
		Where("type = ? AND closing_day IS NOT NULL AND due_day IS NOT NULL", string(entity.ProductTypeCreditCard)).
		Find(&productModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toProducts(productModels), nil
}

// Update persists descriptive fields. Balance and version are left untouched.
func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	product.UpdatedAt = time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&model.ProductModel{ID: product.ID}).
		Select(productDescriptiveColumns).
		Updates(model.ProductFromEntity(product))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrProductNotFound
	}
	return nil
}

// UpdateBalance writes balance if the stored version still equals expectedVersion.
func (r *productRepository) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal, expectedVersion int64) error {
	result := r.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(map[string]any{
			"balance":    balance,
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.NewConflictError(nil)
	}
	return nil
}

// Delete removes a product from the database.
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ProductModel{}).Error
}

func toProducts(productModels []model.ProductModel) []*entity.Product {
	products := make([]*entity.Product, len(productModels))
	for i := range productModels {
		products[i] = productModels[i].ToEntity()
	}
	return products
}
