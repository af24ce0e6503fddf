package entity

import (
	"time"

	"github.com/google/uuid"
)

// Institution is an issuer of financial products (bank, card network, lender).
// Empty allow-lists accept every product type or currency.
type Institution struct {
	ID                  uuid.UUID
	Name                string
	AllowedProductTypes []ProductType
	AllowedCurrencies   []string
	CreatedAt           time.Time
}

// NewInstitution creates a new Institution entity.
func NewInstitution(name string, types []ProductType, currencies []string) *Institution {
	normalized := make([]string, 0, len(currencies))
	for _, c := range currencies {
		normalized = append(normalized, NormalizeCurrency(c))
	}

	return &Institution{
		ID:                  uuid.New(),
		Name:                name,
		AllowedProductTypes: types,
		AllowedCurrencies:   normalized,
		CreatedAt:           time.Now().UTC(),
	}
}

// AllowsProductType reports whether the institution offers products of type t.
func (i *Institution) AllowsProductType(t ProductType) bool {
	if len(i.AllowedProductTypes) == 0 {
		return true
	}
	for _, allowed := range i.AllowedProductTypes {
		if allowed == t {
			return true
		}
	}
	return false
}

// AllowsCurrency reports whether the institution offers products in currency.
func (i *Institution) AllowsCurrency(currency string) bool {
	if len(i.AllowedCurrencies) == 0 {
		return true
	}
	currency = NormalizeCurrency(currency)
	for _, allowed := range i.AllowedCurrencies {
		if allowed == currency {
			return true
		}
	}
	return false
}
