package persistence_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/persistence"
)

func TestProductUpdateBalanceChecksVersion(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewProductRepository(openDB(t))

	product := entity.NewProduct(uuid.New(), "Wallet", entity.ProductTypeCash, "usd", decimal.NewFromInt(100))
	if err := repo.Create(ctx, product); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.UpdateBalance(ctx, product.ID, decimal.NewFromInt(90), product.Version); err != nil {
		t.Fatalf("UpdateBalance with current version: %v", err)
	}

	err := repo.UpdateBalance(ctx, product.ID, decimal.NewFromInt(80), product.Version)
	if !errors.Is(err, domainerror.ErrConcurrentModification) {
		t.Fatalf("UpdateBalance with stale version = %v, want a conflict", err)
	}
	if !domainerror.IsRetryable(err) {
		t.Errorf("stale version error %v is not retryable", err)
	}

	stored, err := repo.FindByID(ctx, product.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if !stored.Balance.Equal(decimal.NewFromInt(90)) {
		t.Errorf("balance = %s, want 90", stored.Balance)
	}
	if stored.Version != product.Version+1 {
		t.Errorf("version = %d, want %d", stored.Version, product.Version+1)
	}
}

func TestUnitOfWorkRetriesLostBalanceUpdate(t *testing.T) {
	ctx := context.Background()
	uow := persistence.NewUnitOfWork(openDB(t), 3, 0)

	product := entity.NewProduct(uuid.New(), "Wallet", entity.ProductTypeCash, "usd", decimal.NewFromInt(100))
	if err := uow.Repositories().Products.Create(ctx, product); err != nil {
		t.Fatalf("Create: %v", err)
	}

	addTo := func(ctx context.Context, repos adapter.Repositories, current *entity.Product, delta int64) error {
		return repos.Products.UpdateBalance(ctx, current.ID, current.Balance.Add(decimal.NewFromInt(delta)), current.Version)
	}

	// The slow writer reads before the fast one commits.
	snapshot, err := uow.Repositories().Products.FindByID(ctx, product.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}

	err = uow.Do(ctx, func(ctx context.Context, repos adapter.Repositories) error {
		current, err := repos.Products.FindByID(ctx, product.ID)
		if err != nil {
			return err
		}
		return addTo(ctx, repos, current, 50)
	})
	if err != nil {
		t.Fatalf("fast writer: %v", err)
	}

	attempts := 0
	err = uow.Do(ctx, func(ctx context.Context, repos adapter.Repositories) error {
		attempts++
		current := snapshot
		if attempts > 1 {
			if current, err = repos.Products.FindByID(ctx, product.ID); err != nil {
				return err
			}
		}
		return addTo(ctx, repos, current, 25)
	})
	if err != nil {
		t.Fatalf("slow writer: %v", err)
	}
	if attempts != 2 {
		t.Errorf("slow writer attempts = %d, want 2", attempts)
	}

	stored, err := uow.Repositories().Products.FindByID(ctx, product.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if !stored.Balance.Equal(decimal.NewFromInt(175)) {
		t.Errorf("balance = %s, want 175", stored.Balance)
	}
	if stored.Version != product.Version+2 {
		t.Errorf("version = %d, want %d", stored.Version, product.Version+2)
	}
}
