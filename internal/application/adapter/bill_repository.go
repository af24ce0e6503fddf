// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// BillRepository defines the interface for service bill persistence operations.
type BillRepository interface {
	// CreateIfAbsent stores the bill unless one exists for its service and period.
	// Reports whether a row was inserted.
	CreateIfAbsent(ctx context.Context, bill *entity.ServiceBill) (bool, error)

	// FindByID retrieves a bill by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ServiceBill, error)

	// FindByPeriod retrieves the bills of a user for (year, month) ordered by due date.
	FindByPeriod(ctx context.Context, userID uuid.UUID, year, month int) ([]*entity.ServiceBill, error)

	// FindPendingBefore retrieves pending bills of periods strictly before (year, month).
	FindPendingBefore(ctx context.Context, userID uuid.UUID, year, month int) ([]*entity.ServiceBill, error)

	// FindByTransaction returns the bill settled by the transaction, or nil.
	FindByTransaction(ctx context.Context, transactionID uuid.UUID) (*entity.ServiceBill, error)

	// Update updates an existing bill in the database.
	Update(ctx context.Context, bill *entity.ServiceBill) error

	// DeleteByService removes every bill of a service.
	DeleteByService(ctx context.Context, serviceID uuid.UUID) error
}
