package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// ApplyBalanceDelta adds delta to the product balance and returns the new balance.
// The product is re-read inside the unit so the write is checked against the
// version the delta was computed from.
func (e *Engine) ApplyBalanceDelta(ctx context.Context, repos adapter.Repositories, productID uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error) {
	product, err := repos.Products.FindByID(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}

	balance := product.Balance.Add(delta)
	if err := e.ValidateBalance(ctx, repos, product, balance); err != nil {
		return decimal.Zero, err
	}

	if err := repos.Products.UpdateBalance(ctx, product.ID, balance, product.Version); err != nil {
		return decimal.Zero, err
	}

	slog.Debug("Balance updated",
		"productID", product.ID,
		"delta", delta.String(),
		"balance", balance.String(),
	)

	return balance, nil
}

// ValidateBalance checks that balance is acceptable for product. Cards sharing a
// limit are checked together against the limit of the card they are linked to.
func (e *Engine) ValidateBalance(ctx context.Context, repos adapter.Repositories, product *entity.Product, balance decimal.Decimal) error {
	if !product.BalanceWithinBounds(balance) {
		return balanceOutOfBounds(product, balance)
	}

	if !product.IsCreditCard() {
		return nil
	}

	root := product
	if product.UsesGroupLimit() {
		parent, err := repos.Products.FindByID(ctx, *product.LinkedProductID)
		if err != nil {
			return fmt.Errorf("failed to load shared-limit parent: %w", err)
		}
		root = parent
	}
	if root.CreditLimit == nil {
		return nil
	}

	members, err := repos.Products.FindLinked(ctx, root.ID)
	if err != nil {
		return fmt.Errorf("failed to load shared-limit group: %w", err)
	}
	if len(members) == 0 {
		return nil
	}

	used := decimal.Zero
	for _, p := range append([]*entity.Product{root}, members...) {
		if p.ID == product.ID {
			used = used.Add(balance)
			continue
		}
		used = used.Add(p.Balance)
	}
	if used.LessThan(root.CreditLimit.Neg()) {
		return domainerror.NewProductError(
			domainerror.ErrCodeBalanceOutOfBounds,
			fmt.Sprintf("shared credit limit of %s exceeded", entity.FormatMoney(*root.CreditLimit, root.Currency)),
			domainerror.ErrBalanceOutOfBounds,
		)
	}
	return nil
}

func balanceOutOfBounds(product *entity.Product, balance decimal.Decimal) error {
	return domainerror.NewProductError(
		domainerror.ErrCodeBalanceOutOfBounds,
		fmt.Sprintf("balance %s is not allowed for %s product %q",
			entity.FormatMoney(balance, product.Currency), product.Type, product.Name),
		domainerror.ErrBalanceOutOfBounds,
	)
}
