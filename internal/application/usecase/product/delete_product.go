package product

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
)

// DeleteProductInput represents the input for product deletion.
type DeleteProductInput struct {
	UserID    uuid.UUID
	ProductID uuid.UUID
}

// DeleteProductUseCase handles product deletion.
type DeleteProductUseCase struct {
	uow    adapter.UnitOfWork
	engine *ledger.Engine
}

// NewDeleteProductUseCase creates a new DeleteProductUseCase instance.
func NewDeleteProductUseCase(uow adapter.UnitOfWork, engine *ledger.Engine) *DeleteProductUseCase {
	return &DeleteProductUseCase{
		uow:    uow,
		engine: engine,
	}
}

// Execute deletes a product no transaction references.
func (uc *DeleteProductUseCase) Execute(ctx context.Context, input DeleteProductInput) error {
	err := uc.uow.Do(ctx, func(ctx context.Context, repos adapter.Repositories) error {
		return uc.engine.DeleteProduct(ctx, repos, input.UserID, input.ProductID)
	})
	if err != nil {
		return err
	}
	slog.Info("Product deleted", "userID", input.UserID, "productID", input.ProductID)
	return nil
}
