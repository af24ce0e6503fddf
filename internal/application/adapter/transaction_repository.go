// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByInstallmentGroup retrieves every installment of a purchase ordered by number.
	FindByInstallmentGroup(ctx context.Context, groupID uuid.UUID) ([]*entity.Transaction, error)

	// FindByFilter retrieves transactions based on filter criteria with pagination.
	FindByFilter(ctx context.Context, filter entity.TransactionFilter) (*entity.TransactionListResult, error)

	// GetTotals calculates totals for transactions based on filter criteria.
	GetTotals(ctx context.Context, filter entity.TransactionFilter) (*entity.TransactionTotals, error)

	// FindUnattachedCharges returns charges raised on the card up to and including
	// until that are not part of any statement yet.
	FindUnattachedCharges(ctx context.Context, productID uuid.UUID, until time.Time) ([]*entity.Transaction, error)

	// CountByProduct counts transactions referencing the product on either side.
	CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error)

	// Update updates an existing transaction in the database.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete removes a transaction from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}
