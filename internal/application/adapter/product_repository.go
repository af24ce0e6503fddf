// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// ProductRepository defines the interface for financial product persistence operations.
type ProductRepository interface {
	// Create creates a new product in the database.
	Create(ctx context.Context, product *entity.Product) error

	// FindByID retrieves a product by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindByUser retrieves all products for a given user ordered by name.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Product, error)

	// FindLinked retrieves the cards sharing the limit of the given parent card.
	FindLinked(ctx context.Context, parentID uuid.UUID) ([]*entity.Product, error)

	// FindCardsWithBillingCycle retrieves every credit card that has closing and due days.
	FindCardsWithBillingCycle(ctx context.Context) ([]*entity.Product, error)

	// Update persists descriptive fields. Balance and version are left untouched.
	Update(ctx context.Context, product *entity.Product) error

	// UpdateBalance writes balance if the stored version still equals expectedVersion,
	// bumping the version. A stale version yields a conflict error.
	UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal, expectedVersion int64) error

	// Delete removes a product from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}
