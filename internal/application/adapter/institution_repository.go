// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// InstitutionRepository defines the interface for institution persistence operations.
type InstitutionRepository interface {
	Create(ctx context.Context, institution *entity.Institution) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Institution, error)
	FindAll(ctx context.Context) ([]*entity.Institution, error)
}
