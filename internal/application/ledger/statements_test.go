package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// closedStatement charges amount on a fresh card and moves the clock past closing.
func closedStatement(f *fixture, amount string) (*entity.Product, *entity.Statement, *entity.Transaction) {
	f.t.Helper()
	card := f.card("Visa", 10, 20, "")
	rows := f.mustExpense(ledger.ExpenseSpec{ProductID: card.ID, Amount: dec(amount), Date: f.now})

	f.now = f.now.AddDate(0, 0, 10)
	_, closed := f.currentStatement(card)
	if len(closed) != 1 {
		f.t.Fatalf("expected one closed statement, got %d", len(closed))
	}
	return card, closed[0], rows[0]
}

func TestPayStatement(t *testing.T) {
	f := newFixture(t, day(2025, time.March, 5))
	checking := f.account("Checking", entity.ProductTypeCheckingAccount, "ARS", "1000")
	card, statement, charge := closedStatement(f, "250")

	if !statement.DueDate.Equal(day(2025, time.March, 20)) {
		t.Errorf("expected due date 2025-03-20, got %s", statement.DueDate.Format("2006-01-02"))
	}

	pay := func() (*entity.Statement, *entity.Transaction, error) {
		var (
			paid *entity.Statement
			txn  *entity.Transaction
		)
		err := f.do(func(ctx context.Context, repos adapter.Repositories) error {
			var err error
			paid, txn, err = f.engine.PayStatement(ctx, repos, ledger.PayStatementSpec{
				UserID:          f.userID,
				StatementID:     statement.ID,
				SourceProductID: checking.ID,
			})
			return err
		})
		return paid, txn, err
	}

	paid, payment, err := pay()
	if err != nil {
		t.Fatalf("pay statement: %v", err)
	}
	if paid.Status != entity.StatementStatusPaid || paid.PaymentTransactionID == nil || *paid.PaymentTransactionID != payment.ID {
		t.Errorf("expected statement PAID and linked to the payment")
	}
	if !payment.Amount.Equal(dec("250")) {
		t.Errorf("expected payment of 250, got %s", payment.Amount)
	}
	f.expectBalance(checking.ID, "750")
	f.expectBalance(card.ID, "0")

	t.Run("a paid statement cannot be paid again", func(t *testing.T) {
		if _, _, err := pay(); !errors.Is(err, domainerror.ErrStatementPaid) {
			t.Errorf("expected statement paid, got %v", err)
		}
	})

	t.Run("charges of a paid statement cannot be deleted", func(t *testing.T) {
		if _, err := f.deleteTransaction(charge.ID); !errors.Is(err, domainerror.ErrStatementPaid) {
			t.Errorf("expected statement paid, got %v", err)
		}
		f.expectBalance(card.ID, "0")
	})

	t.Run("the payment cannot be deleted", func(t *testing.T) {
		_, err := f.deleteTransaction(payment.ID)
		if !errors.Is(err, domainerror.ErrTransactionSettlesStatement) {
			t.Errorf("expected transaction settles statement, got %v", err)
		}
		f.expectBalance(checking.ID, "750")
	})

	t.Run("a paid statement takes no adjustments", func(t *testing.T) {
		err := f.do(func(ctx context.Context, repos adapter.Repositories) error {
			_, _, err := f.engine.AddAdjustment(ctx, repos, ledger.AdjustmentSpec{
				UserID:      f.userID,
				StatementID: statement.ID,
				Kind:        entity.AdjustmentKindFee,
				Amount:      dec("5"),
			})
			return err
		})
		if !errors.Is(err, domainerror.ErrStatementPaid) {
			t.Errorf("expected statement paid, got %v", err)
		}
	})
}

func TestPayOpenStatementIsRejected(t *testing.T) {
	f := newFixture(t, day(2025, time.March, 5))
	checking := f.account("Checking", entity.ProductTypeCheckingAccount, "ARS", "1000")
	card := f.card("Visa", 10, 20, "")
	f.mustExpense(ledger.ExpenseSpec{ProductID: card.ID, Amount: dec("100"), Date: f.now})
	open, _ := f.currentStatement(card)

	err := f.do(func(ctx context.Context, repos adapter.Repositories) error {
		_, _, err := f.engine.PayStatement(ctx, repos, ledger.PayStatementSpec{
			UserID:          f.userID,
			StatementID:     open.ID,
			SourceProductID: checking.ID,
		})
		return err
	})
	if !errors.Is(err, domainerror.ErrStatementNotClosed) {
		t.Errorf("expected statement not closed, got %v", err)
	}
}

func TestPayStatementFromAnotherCurrency(t *testing.T) {
	f := newFixture(t, day(2025, time.March, 5))
	dollars := f.account("Dollars", entity.ProductTypeSavingsAccount, "USD", "100")
	card, statement, _ := closedStatement(f, "13500")

	rate := entity.NewExchangeRate("USD", "ARS", dec("1350"), day(2025, time.March, 1))
	err := f.do(func(ctx context.Context, repos adapter.Repositories) error {
		_, _, err := f.engine.PayStatement(ctx, repos, ledger.PayStatementSpec{
			UserID:          f.userID,
			StatementID:     statement.ID,
			SourceProductID: dollars.ID,
			Rate:            rate,
		})
		return err
	})
	if err != nil {
		t.Fatalf("pay statement: %v", err)
	}
	f.expectBalance(dollars.ID, "90")
	f.expectBalance(card.ID, "0")
}

func TestAdjustments(t *testing.T) {
	f := newFixture(t, day(2025, time.March, 5))
	card, statement, _ := closedStatement(f, "100")

	var adjustment *entity.StatementAdjustment
	err := f.do(func(ctx context.Context, repos adapter.Repositories) error {
		var err error
		statement, adjustment, err = f.engine.AddAdjustment(ctx, repos, ledger.AdjustmentSpec{
			UserID:      f.userID,
			StatementID: statement.ID,
			Kind:        entity.AdjustmentKindInterest,
			Amount:      dec("12.50"),
			Description: "Late interest",
		})
		return err
	})
	if err != nil {
		t.Fatalf("add adjustment: %v", err)
	}
	if !statement.TotalAmount.Equal(dec("112.50")) || !statement.AdjustmentsAmount.Equal(dec("12.50")) {
		t.Errorf("expected total 112.50 with 12.50 of adjustments, got %s and %s", statement.TotalAmount, statement.AdjustmentsAmount)
	}
	f.expectBalance(card.ID, "-112.5")

	t.Run("rejects invalid input", func(t *testing.T) {
		tests := []struct {
			name string
			spec ledger.AdjustmentSpec
			want error
		}{
			{"unknown kind", ledger.AdjustmentSpec{Kind: "BONUS", Amount: dec("1")}, domainerror.ErrInvalidAdjustmentKind},
			{"zero amount", ledger.AdjustmentSpec{Kind: entity.AdjustmentKindFee, Amount: dec("0")}, domainerror.ErrInvalidAdjustmentAmount},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				tt.spec.UserID = f.userID
				tt.spec.StatementID = statement.ID
				err := f.do(func(ctx context.Context, repos adapter.Repositories) error {
					_, _, err := f.engine.AddAdjustment(ctx, repos, tt.spec)
					return err
				})
				if !errors.Is(err, tt.want) {
					t.Errorf("expected %v, got %v", tt.want, err)
				}
			})
		}
	})

	t.Run("removing gives the balance back", func(t *testing.T) {
		err := f.do(func(ctx context.Context, repos adapter.Repositories) error {
			var err error
			statement, err = f.engine.RemoveAdjustment(ctx, repos, f.userID, statement.ID, adjustment.ID)
			return err
		})
		if err != nil {
			t.Fatalf("remove adjustment: %v", err)
		}
		if !statement.TotalAmount.Equal(dec("100")) {
			t.Errorf("expected total 100, got %s", statement.TotalAmount)
		}
		f.expectBalance(card.ID, "-100")
	})
}

func TestLateChargeLandsOnOpenStatement(t *testing.T) {
	f := newFixture(t, day(2025, time.March, 5))
	card, closed, _ := closedStatement(f, "100")

	// Dated inside the closed period but recorded after it closed.
	f.mustExpense(ledger.ExpenseSpec{ProductID: card.ID, Amount: dec("40"), Date: day(2025, time.March, 8)})

	open, _ := f.currentStatement(card)
	if len(open.Items) != 1 || !open.Items[0].LateCharge {
		t.Fatalf("expected the charge flagged late on the open statement")
	}
	reloaded, err := f.repos.Statements.FindByID(f.ctx, closed.ID)
	if err != nil {
		t.Fatalf("reload statement: %v", err)
	}
	if !reloaded.TotalAmount.Equal(dec("100")) {
		t.Errorf("expected the closed statement to stay at 100, got %s", reloaded.TotalAmount)
	}
}

func TestCloseDue(t *testing.T) {
	f := newFixture(t, day(2025, time.January, 15))
	card := f.card("Visa", 31, 10, "")
	f.mustExpense(ledger.ExpenseSpec{ProductID: card.ID, Amount: dec("10"), Date: f.now})

	var closed []*entity.Statement
	err := f.do(func(ctx context.Context, repos adapter.Repositories) error {
		var err error
		closed, err = f.engine.CloseDue(ctx, repos, card, day(2025, time.March, 1))
		return err
	})
	if err != nil {
		t.Fatalf("close due: %v", err)
	}
	if len(closed) != 2 {
		t.Fatalf("expected January and February closed, got %d", len(closed))
	}
	if !closed[1].ClosingDate.Equal(day(2025, time.February, 28)) {
		t.Errorf("expected February to close on the 28th, got %s", closed[1].ClosingDate.Format("2006-01-02"))
	}
	if !closed[0].DueDate.Equal(day(2025, time.February, 10)) {
		t.Errorf("expected January due on 2025-02-10, got %s", closed[0].DueDate.Format("2006-01-02"))
	}
}

func TestEditChargeOnClosedStatement(t *testing.T) {
	update := func(f *fixture, id uuid.UUID, patch ledger.TransactionPatch) {
		f.t.Helper()
		err := f.do(func(ctx context.Context, repos adapter.Repositories) error {
			_, err := f.engine.UpdateTransaction(ctx, repos, f.userID, id, patch)
			return err
		})
		if err != nil {
			f.t.Fatalf("update transaction: %v", err)
		}
	}

	t.Run("description is copied to the item", func(t *testing.T) {
		f := newFixture(t, day(2025, time.March, 5))
		_, closed, charge := closedStatement(f, "100")

		description := "Supermarket"
		update(f, charge.ID, ledger.TransactionPatch{Description: &description})

		reloaded, err := f.repos.Statements.FindByID(f.ctx, closed.ID)
		if err != nil {
			t.Fatalf("reload statement: %v", err)
		}
		if len(reloaded.Items) != 1 || reloaded.Items[0].Description != description {
			t.Fatalf("expected the item to read %q, got %+v", description, reloaded.Items)
		}
		if !reloaded.TotalAmount.Equal(dec("100")) {
			t.Errorf("expected the total to stay at 100, got %s", reloaded.TotalAmount)
		}
	})

	t.Run("amount change moves the charge to the open statement", func(t *testing.T) {
		f := newFixture(t, day(2025, time.March, 5))
		card, closed, charge := closedStatement(f, "100")

		amount := dec("120")
		update(f, charge.ID, ledger.TransactionPatch{Amount: &amount})

		reloaded, err := f.repos.Statements.FindByID(f.ctx, closed.ID)
		if err != nil {
			t.Fatalf("reload statement: %v", err)
		}
		if len(reloaded.Items) != 0 || !reloaded.TotalAmount.IsZero() {
			t.Errorf("expected the closed statement emptied, got %d items totalling %s", len(reloaded.Items), reloaded.TotalAmount)
		}

		open, _ := f.currentStatement(card)
		if len(open.Items) != 1 || !open.Items[0].LateCharge || !open.Items[0].Amount.Equal(amount) {
			t.Fatalf("expected a late charge of 120 on the open statement, got %+v", open.Items)
		}
		f.expectBalance(card.ID, "-120")
	})
}
