package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// RequiresInstitution reports whether products of type t must reference an institution.
func RequiresInstitution(t entity.ProductType) bool {
	return t.RequiresInstitution()
}

// IsProductTypeAllowedForInstitution reports whether institution issues products of type t.
func IsProductTypeAllowedForInstitution(institution *entity.Institution, t entity.ProductType) bool {
	return institution.AllowsProductType(t)
}

// IsCurrencyAllowedForInstitution reports whether institution issues products in currency.
func IsCurrencyAllowedForInstitution(institution *entity.Institution, currency string) bool {
	return institution.AllowsCurrency(currency)
}

// IsCurrencyAllowedForCash reports whether a cash wallet may hold currency.
// Crypto assets cannot be held as cash.
func IsCurrencyAllowedForCash(currency string) bool {
	return entity.IsValidCurrency(currency) && !entity.IsCryptoCurrency(currency)
}

// CreateProduct validates and stores a new product.
func (e *Engine) CreateProduct(ctx context.Context, repos adapter.Repositories, product *entity.Product) error {
	if err := e.ValidateProduct(ctx, repos, product); err != nil {
		return err
	}
	if err := repos.Products.Create(ctx, product); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	// Group limits can only be checked once the card is part of its group.
	return e.ValidateBalance(ctx, repos, product, product.Balance)
}

// UpdateProduct validates and stores descriptive changes of a product.
// The current balance must stay within the bounds implied by the new fields.
func (e *Engine) UpdateProduct(ctx context.Context, repos adapter.Repositories, product *entity.Product) error {
	if err := e.ValidateProduct(ctx, repos, product); err != nil {
		return err
	}
	if err := e.ValidateBalance(ctx, repos, product, product.Balance); err != nil {
		return err
	}
	if err := repos.Products.Update(ctx, product); err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

// DeleteProduct removes a product that no transaction references, together with
// its statements. Payment rules naming it as default product lose that default.
func (e *Engine) DeleteProduct(ctx context.Context, repos adapter.Repositories, userID, productID uuid.UUID) error {
	product, err := e.LoadProduct(ctx, repos, userID, productID)
	if err != nil {
		return err
	}

	count, err := repos.Transactions.CountByProduct(ctx, product.ID)
	if err != nil {
		return fmt.Errorf("failed to count product transactions: %w", err)
	}
	if count > 0 {
		return domainerror.NewProductError(
			domainerror.ErrCodeProductHasTransactions,
			fmt.Sprintf("product has %d transactions", count),
			domainerror.ErrProductHasTransactions,
		)
	}

	if product.IsCreditCard() {
		linked, err := repos.Products.FindLinked(ctx, product.ID)
		if err != nil {
			return fmt.Errorf("failed to load linked cards: %w", err)
		}
		if len(linked) > 0 {
			return domainerror.NewProductError(
				domainerror.ErrCodeInvalidSharedLimit,
				"other cards share this card's limit",
				domainerror.ErrInvalidSharedLimit,
			)
		}
		if err := repos.Statements.DeleteByProduct(ctx, product.ID); err != nil {
			return fmt.Errorf("failed to delete statements: %w", err)
		}
	}

	if err := repos.Services.ClearDefaultProduct(ctx, product.ID); err != nil {
		return fmt.Errorf("failed to clear payment rules: %w", err)
	}
	if err := repos.Products.Delete(ctx, product.ID); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// ValidateProduct checks every product rule except balance bounds.
func (e *Engine) ValidateProduct(ctx context.Context, repos adapter.Repositories, product *entity.Product) error {
	if strings.TrimSpace(product.Name) == "" {
		return domainerror.NewProductError(domainerror.ErrCodeMissingProductName, "name is required", domainerror.ErrMissingProductName)
	}
	if len(product.Name) > MaxDescriptionLength {
		return domainerror.NewProductError(
			domainerror.ErrCodeMissingProductName,
			fmt.Sprintf("name must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrMissingProductName,
		)
	}
	if !product.Type.IsValid() {
		return domainerror.NewProductError(
			domainerror.ErrCodeInvalidProductType,
			fmt.Sprintf("unknown product type %q", product.Type),
			domainerror.ErrInvalidProductType,
		)
	}
	if !entity.IsValidCurrency(product.Currency) {
		return domainerror.NewProductError(
			domainerror.ErrCodeInvalidCurrency,
			fmt.Sprintf("unknown currency %q", product.Currency),
			domainerror.ErrInvalidCurrency,
		)
	}
	if product.Type == entity.ProductTypeCash && !IsCurrencyAllowedForCash(product.Currency) {
		return domainerror.NewProductError(
			domainerror.ErrCodeCurrencyNotAllowedForCash,
			fmt.Sprintf("cash cannot hold %s", product.Currency),
			domainerror.ErrCurrencyNotAllowedForCash,
		)
	}

	if err := e.validateInstitution(ctx, repos, product); err != nil {
		return err
	}

	switch product.Type {
	case entity.ProductTypeCreditCard:
		if err := e.ValidateCreditCardFields(ctx, repos, product); err != nil {
			return err
		}
	case entity.ProductTypeLoan:
		if err := ValidateLoanFields(product); err != nil {
			return err
		}
	default:
		if product.ClosingDay != nil || product.DueDay != nil || product.CreditLimit != nil || product.SharedLimit || product.LinkedProductID != nil {
			return domainerror.NewProductError(
				domainerror.ErrCodeInvalidCardMetadata,
				fmt.Sprintf("billing fields are only allowed on credit cards, not %s", product.Type),
				domainerror.ErrInvalidCardMetadata,
			)
		}
	}

	return validateCardMetadata(product)
}

func (e *Engine) validateInstitution(ctx context.Context, repos adapter.Repositories, product *entity.Product) error {
	if product.InstitutionID == nil {
		if RequiresInstitution(product.Type) {
			return domainerror.NewProductError(
				domainerror.ErrCodeInstitutionRequired,
				fmt.Sprintf("%s products require an institution", product.Type),
				domainerror.ErrInstitutionRequired,
			)
		}
		return nil
	}

	institution, err := repos.Institutions.FindByID(ctx, *product.InstitutionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrInstitutionNotFound) {
			return domainerror.NewProductError(domainerror.ErrCodeInstitutionNotFound, "institution not found", err)
		}
		return err
	}
	if !IsProductTypeAllowedForInstitution(institution, product.Type) {
		return domainerror.NewProductError(
			domainerror.ErrCodeTypeNotAllowedForInstitution,
			fmt.Sprintf("%s does not offer %s products", institution.Name, product.Type),
			domainerror.ErrProductTypeNotAllowedForInstitution,
		)
	}
	if !IsCurrencyAllowedForInstitution(institution, product.Currency) {
		return domainerror.NewProductError(
			domainerror.ErrCodeCurrencyNotAllowedForInstitution,
			fmt.Sprintf("%s does not offer products in %s", institution.Name, product.Currency),
			domainerror.ErrCurrencyNotAllowedForInstitution,
		)
	}
	return nil
}

// ValidateCreditCardFields checks billing days, limit and shared-limit linkage.
func (e *Engine) ValidateCreditCardFields(ctx context.Context, repos adapter.Repositories, product *entity.Product) error {
	if product.ClosingDay == nil || *product.ClosingDay < 1 || *product.ClosingDay > 31 {
		return domainerror.NewProductError(domainerror.ErrCodeInvalidClosingDay, "closing day must be between 1 and 31", domainerror.ErrInvalidClosingDay)
	}
	if product.DueDay == nil || *product.DueDay < 1 || *product.DueDay > 31 {
		return domainerror.NewProductError(domainerror.ErrCodeInvalidDueDay, "due day must be between 1 and 31", domainerror.ErrInvalidDueDay)
	}
	if product.CreditLimit != nil && product.CreditLimit.IsNegative() {
		return domainerror.NewProductError(domainerror.ErrCodeNegativeCreditLimit, "credit limit must not be negative", domainerror.ErrNegativeCreditLimit)
	}

	if !product.SharedLimit {
		if product.LinkedProductID != nil {
			return invalidSharedLimit("a linked card requires the shared limit flag")
		}
		return nil
	}
	if product.LinkedProductID == nil {
		return invalidSharedLimit("a shared limit requires a linked card")
	}
	if *product.LinkedProductID == product.ID {
		return invalidSharedLimit("a card cannot share its own limit")
	}

	linked, err := repos.Products.FindByID(ctx, *product.LinkedProductID)
	if err != nil && !errors.Is(err, domainerror.ErrProductNotFound) {
		return err
	}
	if err != nil || linked.UserID != product.UserID {
		return domainerror.NewProductError(domainerror.ErrCodeLinkedProductNotFound, "linked card not found", domainerror.ErrLinkedProductNotFound)
	}
	if !linked.IsCreditCard() {
		return invalidSharedLimit("the linked product is not a credit card")
	}
	if linked.LinkedProductID != nil {
		return invalidSharedLimit("the linked card shares another card's limit")
	}
	if linked.Currency != product.Currency {
		return invalidSharedLimit("cards sharing a limit must use the same currency")
	}

	// Groups are one level deep: a card that others link to stays a root.
	members, err := repos.Products.FindLinked(ctx, product.ID)
	if err != nil {
		return fmt.Errorf("failed to load linked cards: %w", err)
	}
	if len(members) > 0 {
		return invalidSharedLimit("other cards share this card's limit")
	}
	return nil
}

// ValidateLoanFields checks principal, interest rate and due day of a loan.
func ValidateLoanFields(product *entity.Product) error {
	if product.LoanPrincipal != nil && product.LoanPrincipal.IsNegative() {
		return domainerror.NewProductError(domainerror.ErrCodeInvalidLoanFields, "principal must not be negative", domainerror.ErrInvalidLoanFields)
	}
	if product.LoanInterestRate != nil && product.LoanInterestRate.IsNegative() {
		return domainerror.NewProductError(domainerror.ErrCodeInvalidLoanFields, "interest rate must not be negative", domainerror.ErrInvalidLoanFields)
	}
	if product.DueDay != nil && (*product.DueDay < 0 || *product.DueDay > 31) {
		return domainerror.NewProductError(domainerror.ErrCodeInvalidDueDay, "due day must be between 1 and 31", domainerror.ErrInvalidDueDay)
	}
	if product.ClosingDay != nil || product.CreditLimit != nil || product.SharedLimit || product.LinkedProductID != nil {
		return domainerror.NewProductError(domainerror.ErrCodeInvalidLoanFields, "loans have no statement fields", domainerror.ErrInvalidLoanFields)
	}
	return nil
}

func validateCardMetadata(product *entity.Product) error {
	if product.LastFourDigits != "" {
		if len(product.LastFourDigits) != 4 || strings.IndexFunc(product.LastFourDigits, func(r rune) bool { return !unicode.IsDigit(r) }) >= 0 {
			return domainerror.NewProductError(domainerror.ErrCodeInvalidCardMetadata, "last four digits must be 4 digits", domainerror.ErrInvalidCardMetadata)
		}
	}
	if product.ExpirationMonth != nil && (*product.ExpirationMonth < 1 || *product.ExpirationMonth > 12) {
		return domainerror.NewProductError(domainerror.ErrCodeInvalidCardMetadata, "expiration month must be between 1 and 12", domainerror.ErrInvalidCardMetadata)
	}
	if product.ExpirationYear != nil && *product.ExpirationYear < 2000 {
		return domainerror.NewProductError(domainerror.ErrCodeInvalidCardMetadata, "expiration year is invalid", domainerror.ErrInvalidCardMetadata)
	}
	return nil
}

func invalidSharedLimit(message string) error {
	return domainerror.NewProductError(domainerror.ErrCodeInvalidSharedLimit, message, domainerror.ErrInvalidSharedLimit)
}
