// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// ServiceRepository defines the interface for recurring services and their payment rules.
type ServiceRepository interface {
	// Create creates a new service in the database.
	Create(ctx context.Context, service *entity.Service) error

	// FindByID retrieves a service by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error)

	// FindByUser retrieves all services of a user ordered by name.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Service, error)

	// FindActiveUserIDs lists the users that own at least one active service.
	FindActiveUserIDs(ctx context.Context) ([]uuid.UUID, error)

	// Update updates an existing service in the database.
	Update(ctx context.Context, service *entity.Service) error

	// Delete removes a service. Rules and bills must be removed first.
	Delete(ctx context.Context, id uuid.UUID) error

	// CreateRule stores a payment rule.
	CreateRule(ctx context.Context, rule *entity.ServicePaymentRule) error

	// FindRuleByID retrieves a payment rule by its ID.
	FindRuleByID(ctx context.Context, id uuid.UUID) (*entity.ServicePaymentRule, error)

	// FindRulesByService retrieves the rules of a service ordered by start period.
	FindRulesByService(ctx context.Context, serviceID uuid.UUID) ([]*entity.ServicePaymentRule, error)

	// DeleteRule removes a payment rule.
	DeleteRule(ctx context.Context, id uuid.UUID) error

	// DeleteRulesByService removes every rule of a service.
	DeleteRulesByService(ctx context.Context, serviceID uuid.UUID) error

	// ClearDefaultProduct unsets the default payment product on rules naming it.
	ClearDefaultProduct(ctx context.Context, productID uuid.UUID) error
}
