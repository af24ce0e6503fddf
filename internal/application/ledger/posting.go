package ledger

import (
	"context"
	"fmt"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// post applies the balance effects of a stored transaction and attaches it to the
// statement of the card it is charged on.
func (e *Engine) post(ctx context.Context, repos adapter.Repositories, txn *entity.Transaction) error {
	for _, effect := range txn.BalanceEffects() {
		if _, err := e.ApplyBalanceDelta(ctx, repos, effect.ProductID, effect.Delta); err != nil {
			return err
		}
	}

	cardID := txn.ChargedProductID()
	if cardID == nil {
		return nil
	}
	card, err := repos.Products.FindByID(ctx, *cardID)
	if err != nil {
		return err
	}
	if !card.HasBillingCycle() {
		return nil
	}
	return e.attachCharge(ctx, repos, card, txn)
}

// unpost removes the statement contribution of a transaction and reverses its
// balance effects.
func (e *Engine) unpost(ctx context.Context, repos adapter.Repositories, txn *entity.Transaction) error {
	if err := e.detachCharge(ctx, repos, txn); err != nil {
		return err
	}

	effects := txn.BalanceEffects()
	for i := len(effects) - 1; i >= 0; i-- {
		if _, err := e.ApplyBalanceDelta(ctx, repos, effects[i].ProductID, effects[i].Delta.Neg()); err != nil {
			return err
		}
	}
	return nil
}

// attachCharge adds txn to the card's OPEN statement once the card is rolled
// forward to today. Charges dated after the open period wait for their period.
func (e *Engine) attachCharge(ctx context.Context, repos adapter.Repositories, card *entity.Product, txn *entity.Transaction) error {
	open, _, err := e.rollForward(ctx, repos, card, e.Today())
	if err != nil {
		return err
	}
	if entity.DateOf(txn.Date).After(open.ClosingDate) {
		return nil
	}
	for _, item := range open.Items {
		if item.TransactionID == txn.ID {
			return nil
		}
	}
	return e.addItem(ctx, repos, open, txn)
}

func (e *Engine) addItem(ctx context.Context, repos adapter.Repositories, statement *entity.Statement, txn *entity.Transaction) error {
	item := statement.NewItem(txn)
	if err := repos.Statements.AddItem(ctx, item); err != nil {
		return fmt.Errorf("failed to add statement item: %w", err)
	}
	statement.Items = append(statement.Items, item)
	statement.Recompute()
	if err := repos.Statements.Update(ctx, statement); err != nil {
		return fmt.Errorf("failed to update statement: %w", err)
	}
	return nil
}

// detachCharge removes the item of txn from its statement. Items of a PAID
// statement cannot be removed. A CLOSED statement gives the item up and its total
// is recomputed; post then attaches the charge to the OPEN statement as late.
func (e *Engine) detachCharge(ctx context.Context, repos adapter.Repositories, txn *entity.Transaction) error {
	item, err := repos.Statements.FindItemByTransaction(ctx, txn.ID)
	if err != nil {
		return err
	}
	if item == nil {
		return nil
	}

	statement, err := repos.Statements.FindByID(ctx, item.StatementID)
	if err != nil {
		return err
	}
	if !statement.IsMutable() {
		return domainerror.NewStatementError(
			domainerror.ErrCodeStatementPaid,
			fmt.Sprintf("transaction belongs to the statement closed on %s, which is already paid", statement.ClosingDate.Format("2006-01-02")),
			domainerror.ErrStatementPaid,
		)
	}

	if err := repos.Statements.DeleteItem(ctx, item.ID); err != nil {
		return fmt.Errorf("failed to delete statement item: %w", err)
	}
	kept := statement.Items[:0]
	for _, it := range statement.Items {
		if it.ID != item.ID {
			kept = append(kept, it)
		}
	}
	statement.Items = kept
	statement.Recompute()
	if err := repos.Statements.Update(ctx, statement); err != nil {
		return fmt.Errorf("failed to update statement: %w", err)
	}
	return nil
}
