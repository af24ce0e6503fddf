package entity

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// cryptoCurrencies lists the crypto assets the ledger accepts and their minor-unit precision.
var cryptoCurrencies = map[string]int{
	"BTC":  8,
	"ETH":  8,
	"USDT": 6,
}

func init() {
	for code, fraction := range cryptoCurrencies {
		if money.GetCurrency(code) == nil {
			money.AddCurrency(code, code, "1 $", ".", ",", fraction)
		}
	}
}

// NormalizeCurrency upper-cases and trims a currency code.
func NormalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsValidCurrency reports whether code is a known ISO 4217 or supported crypto code.
func IsValidCurrency(code string) bool {
	if code == "" || code != NormalizeCurrency(code) {
		return false
	}
	return money.GetCurrency(code) != nil
}

// IsCryptoCurrency reports whether code is one of the supported crypto assets.
func IsCryptoCurrency(code string) bool {
	_, ok := cryptoCurrencies[NormalizeCurrency(code)]
	return ok
}

// CurrencyFraction returns the number of minor-unit digits for code, defaulting to 2.
func CurrencyFraction(code string) int32 {
	cur := money.GetCurrency(NormalizeCurrency(code))
	if cur == nil {
		return 2
	}
	return int32(cur.Fraction)
}

// RoundToCurrency rounds amount half away from zero to the minor unit of code.
func RoundToCurrency(amount decimal.Decimal, code string) decimal.Decimal {
	return amount.Round(CurrencyFraction(code))
}

// FormatMoney renders amount using the currency's grapheme and separators.
func FormatMoney(amount decimal.Decimal, code string) string {
	cur := money.GetCurrency(NormalizeCurrency(code))
	if cur == nil {
		return amount.StringFixed(2) + " " + code
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}
