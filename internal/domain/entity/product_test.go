package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestProductBalanceWithinBounds(t *testing.T) {
	limit := decimal.NewFromInt(1000)
	linked := uuid.New()

	tests := []struct {
		name    string
		product *Product
		balance string
		want    bool
	}{
		{"cash cannot go negative", &Product{Type: ProductTypeCash}, "-0.01", false},
		{"cash at zero", &Product{Type: ProductTypeCash}, "0", true},
		{"savings cannot go negative", &Product{Type: ProductTypeSavingsAccount}, "-1", false},
		{"debit card cannot go negative", &Product{Type: ProductTypeDebitCard}, "-1", false},
		{"checking may overdraw", &Product{Type: ProductTypeCheckingAccount}, "-500", true},
		{"card within limit", &Product{Type: ProductTypeCreditCard, CreditLimit: &limit}, "-1000", true},
		{"card over limit", &Product{Type: ProductTypeCreditCard, CreditLimit: &limit}, "-1000.01", false},
		{"card without limit", &Product{Type: ProductTypeCreditCard}, "-99999", true},
		{"shared-limit card checked by group", &Product{Type: ProductTypeCreditCard, CreditLimit: &limit, SharedLimit: true, LinkedProductID: &linked}, "-5000", true},
		{"loan stays non-positive", &Product{Type: ProductTypeLoan}, "0.01", false},
		{"loan debt", &Product{Type: ProductTypeLoan}, "-20000", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.product.BalanceWithinBounds(decimal.RequireFromString(tt.balance)); got != tt.want {
				t.Errorf("BalanceWithinBounds(%s) = %v, want %v", tt.balance, got, tt.want)
			}
		})
	}
}

func TestProductAvailableCredit(t *testing.T) {
	limit := decimal.NewFromInt(1000)
	card := NewProduct(uuid.New(), "Visa", ProductTypeCreditCard, "ars", decimal.NewFromInt(-250))
	card.CreditLimit = &limit

	if card.Currency != "ARS" {
		t.Errorf("expected currency ARS, got %s", card.Currency)
	}
	available := card.AvailableCredit()
	if available == nil || !available.Equal(decimal.NewFromInt(750)) {
		t.Errorf("expected available credit 750, got %v", available)
	}

	cash := NewProduct(uuid.New(), "Wallet", ProductTypeCash, "ARS", decimal.Zero)
	if cash.AvailableCredit() != nil {
		t.Error("expected no available credit for cash")
	}
}

func TestProductTypeRules(t *testing.T) {
	if !ProductTypeCreditCard.RequiresInstitution() || ProductTypeCash.RequiresInstitution() {
		t.Error("unexpected institution requirement")
	}
	if ProductTypeCreditCard.CanReceiveIncome() || ProductTypeLoan.CanReceiveIncome() {
		t.Error("credit cards and loans must not receive income")
	}
	if !ProductTypeCheckingAccount.CanReceiveIncome() {
		t.Error("checking accounts must receive income")
	}
	if ProductType("WALLET").IsValid() {
		t.Error("unknown type reported valid")
	}
}
