package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestIsValidCurrency(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"USD", true},
		{"ARS", true},
		{"EUR", true},
		{"BTC", true},
		{"usd", false},
		{"", false},
		{"ZZZ", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := IsValidCurrency(tt.code); got != tt.want {
				t.Errorf("IsValidCurrency(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestRoundToCurrency(t *testing.T) {
	tests := []struct {
		amount   string
		currency string
		want     string
	}{
		{"1.005", "USD", "1.01"},
		{"-1.005", "USD", "-1.01"},
		{"1.004", "USD", "1"},
		{"1.5", "JPY", "2"},
		{"0.123456789", "BTC", "0.12345679"},
	}

	for _, tt := range tests {
		t.Run(tt.amount+" "+tt.currency, func(t *testing.T) {
			got := RoundToCurrency(decimal.RequireFromString(tt.amount), tt.currency)
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("RoundToCurrency(%s, %s) = %s, want %s", tt.amount, tt.currency, got, tt.want)
			}
		})
	}
}

func TestExchangeRateConvert(t *testing.T) {
	rate := NewExchangeRate("usd", "ars", decimal.NewFromInt(1350), date(2025, time.January, 1))

	if rate.FromCurrency != "USD" || rate.ToCurrency != "ARS" {
		t.Fatalf("expected normalized pair USD/ARS, got %s/%s", rate.FromCurrency, rate.ToCurrency)
	}
	if got := rate.Convert(decimal.RequireFromString("10.555")); !got.Equal(decimal.RequireFromString("14249.25")) {
		t.Errorf("expected 14249.25, got %s", got)
	}
	if got := IdentityRate("ars").Convert(decimal.NewFromInt(7)); !got.Equal(decimal.NewFromInt(7)) {
		t.Errorf("identity rate changed the amount: %s", got)
	}
}
