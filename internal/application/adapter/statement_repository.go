// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// StatementRepository defines the interface for credit-card statement persistence.
// Statements are returned with their items and adjustments loaded.
type StatementRepository interface {
	// Create creates a new statement in the database.
	Create(ctx context.Context, statement *entity.Statement) error

	// FindByID retrieves a statement by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Statement, error)

	// FindOpenByProduct retrieves the OPEN statement of a card.
	// Returns ErrStatementNotFound when the card has none.
	FindOpenByProduct(ctx context.Context, productID uuid.UUID) (*entity.Statement, error)

	// FindByProduct retrieves every statement of a card, most recent closing date first.
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.Statement, error)

	// FindByPaymentTransaction returns the statement settled by the transaction, or nil.
	FindByPaymentTransaction(ctx context.Context, transactionID uuid.UUID) (*entity.Statement, error)

	// Update persists status, dates and amounts of a statement.
	Update(ctx context.Context, statement *entity.Statement) error

	// DeleteByProduct removes every statement of a card with its items and adjustments.
	DeleteByProduct(ctx context.Context, productID uuid.UUID) error

	// AddItem attaches a transaction to a statement.
	AddItem(ctx context.Context, item *entity.StatementItem) error

	// FindItemByTransaction returns the item of a transaction, or nil when it is not attached.
	FindItemByTransaction(ctx context.Context, transactionID uuid.UUID) (*entity.StatementItem, error)

	// RenameItem copies a new transaction description onto its item, if any.
	RenameItem(ctx context.Context, transactionID uuid.UUID, description string) error

	// DeleteItem removes an item.
	DeleteItem(ctx context.Context, id uuid.UUID) error

	// AddAdjustment stores a manual correction.
	AddAdjustment(ctx context.Context, adjustment *entity.StatementAdjustment) error

	// FindAdjustment retrieves an adjustment by its ID.
	FindAdjustment(ctx context.Context, id uuid.UUID) (*entity.StatementAdjustment, error)

	// DeleteAdjustment removes an adjustment.
	DeleteAdjustment(ctx context.Context, id uuid.UUID) error
}
