package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// TransactionPatch lists the fields to change on a transaction. Nil fields are kept.
type TransactionPatch struct {
	Amount        *decimal.Decimal
	Date          *time.Time
	Description   *string
	Notes         *string
	CategoryID    *uuid.UUID
	ClearCategory bool
	ProductID     *uuid.UUID
}

func (p TransactionPatch) touchesBalance() bool {
	return p.Amount != nil || p.Date != nil || p.ProductID != nil
}

// UpdateTransaction applies patch. Changes to amount, date or product reverse the
// previous effects and post the new ones in the same unit.
func (e *Engine) UpdateTransaction(ctx context.Context, repos adapter.Repositories, userID, transactionID uuid.UUID, patch TransactionPatch) (*entity.Transaction, error) {
	txn, err := e.LoadTransaction(ctx, repos, userID, transactionID)
	if err != nil {
		return nil, err
	}

	if patch.touchesBalance() {
		if txn.IsInstallment() {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeInstallmentEditNotAllowed,
				"delete the purchase and record it again to change amount, date or product of installments",
				domainerror.ErrInstallmentEditNotAllowed,
			)
		}
		if err := e.rejectStatementPayment(ctx, repos, txn); err != nil {
			return nil, err
		}
		if err := e.unpost(ctx, repos, txn); err != nil {
			return nil, err
		}
	}

	if err := e.applyPatch(ctx, repos, txn, patch); err != nil {
		return nil, err
	}
	txn.UpdatedAt = time.Now().UTC()

	if err := repos.Transactions.Update(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	if patch.touchesBalance() {
		if err := e.post(ctx, repos, txn); err != nil {
			return nil, err
		}
	} else if patch.Description != nil {
		if err := repos.Statements.RenameItem(ctx, txn.ID, txn.Description); err != nil {
			return nil, fmt.Errorf("failed to update statement item: %w", err)
		}
	}
	return txn, nil
}

func (e *Engine) applyPatch(ctx context.Context, repos adapter.Repositories, txn *entity.Transaction, patch TransactionPatch) error {
	description, notes, date := txn.Description, txn.Notes, txn.Date
	if patch.Description != nil {
		description = strings.TrimSpace(*patch.Description)
	}
	if patch.Notes != nil {
		notes = *patch.Notes
	}
	if patch.Date != nil {
		date = *patch.Date
	}
	amount := txn.Amount
	if patch.Amount != nil {
		amount = *patch.Amount
	}
	if err := validateMovement(amount, description, notes, date); err != nil {
		return err
	}

	if patch.ProductID != nil {
		if err := e.moveTransaction(ctx, repos, txn, *patch.ProductID); err != nil {
			return err
		}
	}

	if patch.ClearCategory {
		txn.CategoryID = nil
	} else if patch.CategoryID != nil {
		if err := e.checkCategory(ctx, repos, txn.UserID, patch.CategoryID, txn.Type); err != nil {
			return err
		}
		txn.CategoryID = patch.CategoryID
	}

	if patch.Amount != nil && txn.Type == entity.TransactionTypeTransfer && txn.ExchangeRate != nil {
		to, err := repos.Products.FindByID(ctx, *txn.DestinationProductID)
		if err != nil {
			return err
		}
		credited := entity.RoundToCurrency(amount.Mul(*txn.ExchangeRate), to.Currency)
		txn.DestinationAmount = &credited
	}

	txn.Amount = amount
	txn.Description = description
	txn.Notes = notes
	txn.Date = entity.DateOf(date)
	return nil
}

// moveTransaction points an income or expense at another product of the same currency.
func (e *Engine) moveTransaction(ctx context.Context, repos adapter.Repositories, txn *entity.Transaction, productID uuid.UUID) error {
	if txn.Type == entity.TransactionTypeTransfer {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeProductTypeNotEligible,
			"delete the transfer and record it again to change its products",
			domainerror.ErrProductTypeNotEligible,
		)
	}

	product, err := e.LoadProduct(ctx, repos, txn.UserID, productID)
	if err != nil {
		return err
	}

	var current uuid.UUID
	if txn.Type == entity.TransactionTypeIncome {
		current = *txn.DestinationProductID
		if !product.Type.CanReceiveIncome() {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeProductTypeNotEligible,
				fmt.Sprintf("%s products cannot receive income", product.Type),
				domainerror.ErrProductTypeNotEligible,
			)
		}
	} else {
		current = *txn.OriginProductID
	}

	previous, err := repos.Products.FindByID(ctx, current)
	if err != nil {
		return err
	}
	if previous.Currency != product.Currency {
		return currencyMismatch(previous.Currency, product.Currency)
	}

	if txn.Type == entity.TransactionTypeIncome {
		txn.DestinationProductID = &product.ID
	} else {
		txn.OriginProductID = &product.ID
	}
	return nil
}

// DeleteTransaction removes a transaction and reverses its effects. Deleting one
// installment removes the whole purchase. A bill settled by a deleted transaction
// goes back to pending. Statement payments cannot be deleted.
func (e *Engine) DeleteTransaction(ctx context.Context, repos adapter.Repositories, userID, transactionID uuid.UUID) ([]*entity.Transaction, error) {
	txn, err := e.LoadTransaction(ctx, repos, userID, transactionID)
	if err != nil {
		return nil, err
	}

	rows := []*entity.Transaction{txn}
	if txn.IsInstallment() {
		rows, err = repos.Transactions.FindByInstallmentGroup(ctx, *txn.InstallmentGroupID)
		if err != nil {
			return nil, fmt.Errorf("failed to load installments: %w", err)
		}
	}

	for _, row := range rows {
		if err := e.rejectStatementPayment(ctx, repos, row); err != nil {
			return nil, err
		}
		if err := e.unpost(ctx, repos, row); err != nil {
			return nil, err
		}
		if err := e.releaseBill(ctx, repos, row); err != nil {
			return nil, err
		}
		if err := repos.Transactions.Delete(ctx, row.ID); err != nil {
			return nil, fmt.Errorf("failed to delete transaction: %w", err)
		}
	}
	return rows, nil
}

func (e *Engine) rejectStatementPayment(ctx context.Context, repos adapter.Repositories, txn *entity.Transaction) error {
	if txn.Type != entity.TransactionTypeTransfer {
		return nil
	}
	statement, err := repos.Statements.FindByPaymentTransaction(ctx, txn.ID)
	if err != nil {
		return err
	}
	if statement != nil {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionSettlesStatement,
			fmt.Sprintf("transaction pays the statement closed on %s", statement.ClosingDate.Format("2006-01-02")),
			domainerror.ErrTransactionSettlesStatement,
		)
	}
	return nil
}

func (e *Engine) releaseBill(ctx context.Context, repos adapter.Repositories, txn *entity.Transaction) error {
	bill, err := repos.Bills.FindByTransaction(ctx, txn.ID)
	if err != nil {
		return err
	}
	if bill == nil {
		return nil
	}
	bill.Reopen()
	if err := repos.Bills.Update(ctx, bill); err != nil {
		return fmt.Errorf("failed to reopen bill: %w", err)
	}
	return nil
}
