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

func (f *fixture) service(name, amount string, dueDay int, productID *uuid.UUID) *entity.Service {
	f.t.Helper()
	service := entity.NewService(f.userID, name, dec(amount), "ARS", nil)
	if err := f.repos.Services.Create(f.ctx, service); err != nil {
		f.t.Fatalf("create service: %v", err)
	}
	rule := &entity.ServicePaymentRule{
		ID:               uuid.New(),
		ServiceID:        service.ID,
		UserID:           f.userID,
		DueDay:           dueDay,
		DefaultProductID: productID,
		StartYear:        2025,
		StartMonth:       1,
		CreatedAt:        time.Now().UTC(),
	}
	if err := f.repos.Services.CreateRule(f.ctx, rule); err != nil {
		f.t.Fatalf("create rule: %v", err)
	}
	return service
}

func (f *fixture) generate(year, month int) []*entity.ServiceBill {
	f.t.Helper()
	var bills []*entity.ServiceBill
	err := f.do(func(ctx context.Context, repos adapter.Repositories) error {
		var err error
		bills, err = f.engine.GenerateBills(ctx, repos, f.userID, year, month)
		return err
	})
	if err != nil {
		f.t.Fatalf("generate bills: %v", err)
	}
	return bills
}

func TestGenerateBills(t *testing.T) {
	f := newFixture(t, day(2025, time.February, 3))
	f.service("Internet", "9000", 31, nil)
	f.service("Gym", "15000", 5, nil)

	created := f.generate(2025, 2)
	if len(created) != 2 {
		t.Fatalf("expected 2 bills, got %d", len(created))
	}
	for _, bill := range created {
		if bill.Status != entity.BillStatusPending {
			t.Errorf("expected new bills to be pending")
		}
		if bill.DueDate.After(day(2025, time.February, 28)) {
			t.Errorf("due date %s falls outside February", bill.DueDate.Format("2006-01-02"))
		}
	}

	t.Run("generation is idempotent", func(t *testing.T) {
		if again := f.generate(2025, 2); len(again) != 0 {
			t.Errorf("expected no new bills, got %d", len(again))
		}
		bills, err := f.repos.Bills.FindByPeriod(f.ctx, f.userID, 2025, 2)
		if err != nil {
			t.Fatalf("list bills: %v", err)
		}
		if len(bills) != 2 {
			t.Errorf("expected 2 stored bills, got %d", len(bills))
		}
	})

	t.Run("months before the rule get nothing", func(t *testing.T) {
		if bills := f.generate(2024, 12); len(bills) != 0 {
			t.Errorf("expected no bills before the rule starts, got %d", len(bills))
		}
	})

	t.Run("invalid periods are rejected", func(t *testing.T) {
		err := f.do(func(ctx context.Context, repos adapter.Repositories) error {
			_, err := f.engine.GenerateBills(ctx, repos, f.userID, 2025, 13)
			return err
		})
		if !errors.Is(err, domainerror.ErrInvalidBillPeriod) {
			t.Errorf("expected invalid bill period, got %v", err)
		}
	})
}

func TestPayBill(t *testing.T) {
	f := newFixture(t, day(2025, time.February, 3))
	checking := f.account("Checking", entity.ProductTypeCheckingAccount, "ARS", "20000")
	f.service("Internet", "9000", 10, &checking.ID)
	bill := f.generate(2025, 2)[0]

	pay := func(amount *string) (*entity.ServiceBill, *entity.Transaction, error) {
		spec := ledger.PayBillSpec{UserID: f.userID, BillID: bill.ID}
		if amount != nil {
			a := dec(*amount)
			spec.Amount = &a
		}
		var (
			paid *entity.ServiceBill
			txn  *entity.Transaction
		)
		err := f.do(func(ctx context.Context, repos adapter.Repositories) error {
			var err error
			paid, txn, err = f.engine.PayBill(ctx, repos, spec)
			return err
		})
		return paid, txn, err
	}

	actual := "9500"
	paid, txn, err := pay(&actual)
	if err != nil {
		t.Fatalf("pay bill: %v", err)
	}
	if paid.Status != entity.BillStatusPaid || paid.TransactionID == nil || *paid.TransactionID != txn.ID {
		t.Errorf("expected bill PAID and linked to the expense")
	}
	if !paid.Amount.Equal(dec("9500")) {
		t.Errorf("expected bill amount to take the paid amount, got %s", paid.Amount)
	}
	if !txn.Date.Equal(day(2025, time.February, 3)) {
		t.Errorf("expected payment dated today, got %s", txn.Date.Format("2006-01-02"))
	}
	f.expectBalance(checking.ID, "10500")

	t.Run("a paid bill cannot be paid again", func(t *testing.T) {
		if _, _, err := pay(nil); !errors.Is(err, domainerror.ErrBillAlreadyPaid) {
			t.Errorf("expected bill already paid, got %v", err)
		}
	})

	t.Run("deleting the payment reopens the bill", func(t *testing.T) {
		if _, err := f.deleteTransaction(txn.ID); err != nil {
			t.Fatalf("delete payment: %v", err)
		}
		reopened, err := f.repos.Bills.FindByID(f.ctx, bill.ID)
		if err != nil {
			t.Fatalf("reload bill: %v", err)
		}
		if reopened.Status != entity.BillStatusPending || reopened.TransactionID != nil || reopened.PaidDate != nil {
			t.Errorf("expected the bill back to pending")
		}
		f.expectBalance(checking.ID, "20000")
	})

	t.Run("a pending bill shows as overdue the next month", func(t *testing.T) {
		overdue, err := f.repos.Bills.FindPendingBefore(f.ctx, f.userID, 2025, 3)
		if err != nil {
			t.Fatalf("list overdue: %v", err)
		}
		if len(overdue) != 1 || overdue[0].ID != bill.ID {
			t.Fatalf("expected the February bill overdue in March, got %d bills", len(overdue))
		}
		if !overdue[0].IsOverdue(2025, 3) || overdue[0].IsOverdue(2025, 2) {
			t.Errorf("overdue is relative to the viewed period")
		}
	})
}

func TestLinkBill(t *testing.T) {
	f := newFixture(t, day(2025, time.February, 3))
	wallet := f.account("Wallet", entity.ProductTypeCash, "ARS", "0")
	f.service("Cleaning", "3000", 15, nil)
	bill := f.generate(2025, 2)[0]

	income := f.income(wallet.ID, "5000", day(2025, time.February, 1))
	expense := f.mustExpense(ledger.ExpenseSpec{ProductID: wallet.ID, Amount: dec("3000"), Date: day(2025, time.February, 2)})[0]

	link := func(billID, transactionID uuid.UUID) error {
		return f.do(func(ctx context.Context, repos adapter.Repositories) error {
			_, err := f.engine.LinkBill(ctx, repos, f.userID, billID, transactionID)
			return err
		})
	}

	t.Run("only expenses settle bills", func(t *testing.T) {
		if err := link(bill.ID, income.ID); !errors.Is(err, domainerror.ErrBillTransactionInvalid) {
			t.Errorf("expected bill transaction invalid, got %v", err)
		}
	})

	if err := link(bill.ID, expense.ID); err != nil {
		t.Fatalf("link bill: %v", err)
	}

	t.Run("an expense settles one bill", func(t *testing.T) {
		f.service("Laundry", "1000", 20, nil)
		var other *entity.ServiceBill
		for _, b := range f.generate(2025, 2) {
			other = b
		}
		if other == nil {
			t.Fatal("expected a bill for the new service")
		}
		if err := link(other.ID, expense.ID); !errors.Is(err, domainerror.ErrBillTransactionInvalid) {
			t.Errorf("expected bill transaction invalid, got %v", err)
		}
	})

	t.Run("no default product without a product is rejected", func(t *testing.T) {
		f.service("Water", "800", 12, nil)
		water := f.generate(2025, 2)[0]
		err := f.do(func(ctx context.Context, repos adapter.Repositories) error {
			_, _, err := f.engine.PayBill(ctx, repos, ledger.PayBillSpec{UserID: f.userID, BillID: water.ID})
			return err
		})
		if !errors.Is(err, domainerror.ErrNoPaymentProduct) {
			t.Errorf("expected no payment product, got %v", err)
		}
	})
}

func TestDeleteService(t *testing.T) {
	f := newFixture(t, day(2025, time.February, 3))
	checking := f.account("Checking", entity.ProductTypeCheckingAccount, "ARS", "20000")
	service := f.service("Internet", "9000", 10, &checking.ID)
	bill := f.generate(2025, 2)[0]

	var txn *entity.Transaction
	err := f.do(func(ctx context.Context, repos adapter.Repositories) error {
		var err error
		_, txn, err = f.engine.PayBill(ctx, repos, ledger.PayBillSpec{UserID: f.userID, BillID: bill.ID})
		return err
	})
	if err != nil {
		t.Fatalf("pay bill: %v", err)
	}

	err = f.do(func(ctx context.Context, repos adapter.Repositories) error {
		return f.engine.DeleteService(ctx, repos, f.userID, service.ID)
	})
	if err != nil {
		t.Fatalf("delete service: %v", err)
	}

	if _, err := f.repos.Bills.FindByID(f.ctx, bill.ID); !errors.Is(err, domainerror.ErrBillNotFound) {
		t.Errorf("expected bills removed with the service, got %v", err)
	}
	if _, err := f.repos.Transactions.FindByID(f.ctx, txn.ID); err != nil {
		t.Errorf("expected the payment to survive, got %v", err)
	}
	f.expectBalance(checking.ID, "11000")
}
