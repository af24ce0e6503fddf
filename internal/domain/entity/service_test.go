package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func intPtr(v int) *int { return &v }

func TestSelectRule(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	open := &ServicePaymentRule{ID: uuid.New(), DueDay: 10, StartYear: 2025, StartMonth: 1, CreatedAt: base}
	summer := &ServicePaymentRule{ID: uuid.New(), DueDay: 20, StartYear: 2025, StartMonth: 6, EndYear: intPtr(2025), EndMonth: intPtr(8), CreatedAt: base}
	rules := []*ServicePaymentRule{open, summer}

	tests := []struct {
		name  string
		year  int
		month int
		want  *ServicePaymentRule
	}{
		{"before every rule", 2024, 12, nil},
		{"first rule", 2025, 3, open},
		{"latest start wins", 2025, 7, summer},
		{"ended rule no longer applies", 2025, 9, open},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SelectRule(rules, tt.year, tt.month); got != tt.want {
				t.Errorf("SelectRule(%d-%02d) picked %v, want %v", tt.year, tt.month, got, tt.want)
			}
		})
	}

	t.Run("same start goes to the newest rule", func(t *testing.T) {
		newer := &ServicePaymentRule{ID: uuid.New(), DueDay: 5, StartYear: 2025, StartMonth: 1, CreatedAt: base.Add(time.Hour)}
		if got := SelectRule([]*ServicePaymentRule{open, newer}, 2025, 2); got != newer {
			t.Error("expected the most recently created rule")
		}
	})
}

func TestServiceBill(t *testing.T) {
	service := NewService(uuid.New(), "Internet", decimal.NewFromInt(45), "usd", nil)
	rule := &ServicePaymentRule{DueDay: 31, StartYear: 2025, StartMonth: 1}

	bill := NewServiceBill(service, rule, 2025, 2)
	if !bill.DueDate.Equal(time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected due date clamped to 2025-02-28, got %s", bill.DueDate.Format("2006-01-02"))
	}
	if bill.Currency != "USD" || !bill.Amount.Equal(decimal.NewFromInt(45)) || bill.Status != BillStatusPending {
		t.Errorf("unexpected bill %+v", bill)
	}

	t.Run("overdue only when viewing a later period", func(t *testing.T) {
		if bill.IsOverdue(2025, 2) {
			t.Error("bill of the viewed period must not be overdue")
		}
		if !bill.IsOverdue(2025, 3) {
			t.Error("pending bill of an earlier period must be overdue")
		}
		if bill.IsOverdue(2025, 1) {
			t.Error("bill of a future period must not be overdue")
		}
	})

	t.Run("paid bills are never overdue", func(t *testing.T) {
		txnID := uuid.New()
		bill.MarkPaid(txnID, time.Date(2025, 3, 2, 15, 0, 0, 0, time.UTC))
		if bill.IsOverdue(2026, 1) {
			t.Error("paid bill reported overdue")
		}
		if bill.TransactionID == nil || *bill.TransactionID != txnID {
			t.Error("expected settling transaction to be linked")
		}
		if !bill.PaidDate.Equal(time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("expected paid date truncated, got %v", bill.PaidDate)
		}
	})

	t.Run("reopen clears the payment", func(t *testing.T) {
		bill.Reopen()
		if bill.Status != BillStatusPending || bill.TransactionID != nil || bill.PaidDate != nil {
			t.Errorf("unexpected reopened bill %+v", bill)
		}
	})
}

func TestStatementRecompute(t *testing.T) {
	closing, due := 10, 20
	card := &Product{ID: uuid.New(), UserID: uuid.New(), Type: ProductTypeCreditCard, ClosingDay: &closing, DueDay: &due}
	statement := NewStatement(card, card.PeriodFor(time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)))

	late := &Transaction{ID: uuid.New(), Amount: decimal.NewFromInt(100), Date: time.Date(2025, 1, 30, 0, 0, 0, 0, time.UTC)}
	current := &Transaction{ID: uuid.New(), Amount: decimal.NewFromInt(50), Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)}
	lateItem, currentItem := statement.NewItem(late), statement.NewItem(current)
	if !lateItem.LateCharge || currentItem.LateCharge {
		t.Errorf("late flags: late=%v current=%v", lateItem.LateCharge, currentItem.LateCharge)
	}

	statement.Items = []*StatementItem{lateItem, currentItem}
	statement.Adjustments = []*StatementAdjustment{{Kind: AdjustmentKindFee, Amount: decimal.NewFromInt(5)}}
	statement.Recompute()

	if !statement.CalculatedAmount.Equal(decimal.NewFromInt(150)) {
		t.Errorf("expected calculated 150, got %s", statement.CalculatedAmount)
	}
	if !statement.TotalAmount.Equal(statement.CalculatedAmount.Add(statement.AdjustmentsAmount)) {
		t.Error("total must equal calculated plus adjustments")
	}
	if !statement.TotalAmount.Equal(decimal.NewFromInt(155)) {
		t.Errorf("expected total 155, got %s", statement.TotalAmount)
	}
}
