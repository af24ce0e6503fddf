package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestSplitInstallments(t *testing.T) {
	tests := []struct {
		name     string
		total    string
		n        int
		currency string
		want     []string
	}{
		{"even split", "300", 3, "USD", []string{"100", "100", "100"}},
		{"first part absorbs remainder", "100", 3, "USD", []string{"33.34", "33.33", "33.33"}},
		{"zero decimal currency", "1000", 3, "JPY", []string{"334", "333", "333"}},
		{"single installment", "99.99", 1, "ARS", []string{"99.99"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts := SplitInstallments(decimal.RequireFromString(tt.total), tt.n, tt.currency)
			if len(parts) != len(tt.want) {
				t.Fatalf("expected %d parts, got %d", len(tt.want), len(parts))
			}
			sum := decimal.Zero
			for i, part := range parts {
				if !part.Equal(decimal.RequireFromString(tt.want[i])) {
					t.Errorf("part %d = %s, want %s", i, part, tt.want[i])
				}
				sum = sum.Add(part)
			}
			if !sum.Equal(decimal.RequireFromString(tt.total)) {
				t.Errorf("parts add up to %s, want %s", sum, tt.total)
			}
		})
	}

	if parts := SplitInstallments(decimal.NewFromInt(10), 0, "USD"); parts != nil {
		t.Errorf("expected nil for zero installments, got %v", parts)
	}
}

func TestBalanceEffects(t *testing.T) {
	from, to := uuid.New(), uuid.New()
	credited := decimal.NewFromInt(1350)

	transfer := &Transaction{
		Type:                 TransactionTypeTransfer,
		Amount:               decimal.NewFromInt(1),
		OriginProductID:      &from,
		DestinationProductID: &to,
		DestinationAmount:    &credited,
	}
	effects := transfer.BalanceEffects()
	if len(effects) != 2 {
		t.Fatalf("expected 2 effects, got %d", len(effects))
	}
	if effects[0].ProductID != from || !effects[0].Delta.Equal(decimal.NewFromInt(-1)) {
		t.Errorf("unexpected origin effect %+v", effects[0])
	}
	if effects[1].ProductID != to || !effects[1].Delta.Equal(credited) {
		t.Errorf("unexpected destination effect %+v", effects[1])
	}

	income := &Transaction{Type: TransactionTypeIncome, Amount: decimal.NewFromInt(5), DestinationProductID: &to}
	if effects := income.BalanceEffects(); len(effects) != 1 || !effects[0].Delta.Equal(decimal.NewFromInt(5)) {
		t.Errorf("unexpected income effects %+v", effects)
	}
	if income.ChargedProductID() != nil {
		t.Error("income must not be a statement charge")
	}
}
