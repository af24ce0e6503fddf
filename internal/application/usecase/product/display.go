package product

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// ProductView is a product with its balance optionally expressed in a display
// currency. DisplayBalance is nil when no rate exists for the pair.
type ProductView struct {
	Product         *entity.Product
	DisplayCurrency string
	DisplayBalance  *decimal.Decimal
	Rate            *entity.ExchangeRate
}

// Converted reports whether the balance could be expressed in the display currency.
func (v ProductView) Converted() bool {
	return v.DisplayBalance != nil
}

// toView converts the balance when a display currency is requested. A missing rate
// leaves the view unconverted; other failures are returned.
func toView(ctx context.Context, rates *ledger.RateResolver, product *entity.Product, currency string) (ProductView, error) {
	view := ProductView{Product: product}
	if currency == "" {
		return view, nil
	}
	view.DisplayCurrency = currency

	converted, rate, err := rates.Convert(ctx, product.Balance, product.Currency, currency)
	if err != nil {
		if errors.Is(err, domainerror.ErrRateUnavailable) {
			return view, nil
		}
		return view, err
	}
	view.DisplayBalance = &converted
	view.Rate = rate
	return view, nil
}

func validateDisplayCurrency(currency string) (string, error) {
	if currency == "" {
		return "", nil
	}
	code := entity.NormalizeCurrency(currency)
	if !entity.IsValidCurrency(code) {
		return "", domainerror.NewExchangeRateError(
			domainerror.ErrCodeInvalidRateCurrency,
			"unknown display currency "+currency,
			domainerror.ErrInvalidRateCurrency,
		)
	}
	return code, nil
}
