package error

import "errors"

// Product domain errors.
var (
	// ErrProductNotFound is returned when a product is not found for the user.
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidProductType is returned when the product type is unknown.
	ErrInvalidProductType = errors.New("invalid product type")

	// ErrInvalidCurrency is returned when a currency code is not recognised.
	ErrInvalidCurrency = errors.New("invalid currency")

	// ErrMissingProductName is returned when the product name is blank.
	ErrMissingProductName = errors.New("product name is required")

	// ErrInvalidClosingDay is returned when a closing day is outside 1..31.
	ErrInvalidClosingDay = errors.New("closing day must be between 1 and 31")

	// ErrInvalidDueDay is returned when a due day is outside 1..31.
	ErrInvalidDueDay = errors.New("due day must be between 1 and 31")

	// ErrNegativeCreditLimit is returned when a credit limit is negative.
	ErrNegativeCreditLimit = errors.New("credit limit must not be negative")

	// ErrInvalidLoanFields is returned when loan principal or rate are invalid.
	ErrInvalidLoanFields = errors.New("invalid loan fields")

	// ErrInvalidCardMetadata is returned when last four digits or expiration are malformed.
	ErrInvalidCardMetadata = errors.New("invalid card metadata")

	// ErrInstitutionNotFound is returned when an institution does not exist.
	ErrInstitutionNotFound = errors.New("institution not found")

	// ErrLinkedProductNotFound is returned when a shared-limit card links to a missing product.
	ErrLinkedProductNotFound = errors.New("linked product not found")

	// ErrInstitutionRequired is returned when a card or loan has no institution.
	ErrInstitutionRequired = errors.New("institution is required for this product type")

	// ErrProductTypeNotAllowedForInstitution is returned when the institution does not offer the type.
	ErrProductTypeNotAllowedForInstitution = errors.New("product type not allowed for institution")

	// ErrCurrencyNotAllowedForInstitution is returned when the institution does not offer the currency.
	ErrCurrencyNotAllowedForInstitution = errors.New("currency not allowed for institution")

	// ErrCurrencyNotAllowedForCash is returned when cash is opened in a currency without notes.
	ErrCurrencyNotAllowedForCash = errors.New("currency not allowed for cash")

	// ErrBalanceOutOfBounds is returned when a balance delta breaks the product's bounds.
	ErrBalanceOutOfBounds = errors.New("balance out of bounds")

	// ErrProductHasTransactions is returned when deleting a product that still has movements.
	ErrProductHasTransactions = errors.New("product has transactions")

	// ErrInvalidSharedLimit is returned when the shared-limit link is not acceptable.
	ErrInvalidSharedLimit = errors.New("invalid shared limit")
)

// ProductErrorCode defines error codes for product errors.
// Format: PRD-XXYYYY where XX is the kind and YYYY is the specific error.
type ProductErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidProductType   ProductErrorCode = "PRD-010001"
	ErrCodeInvalidCurrency      ProductErrorCode = "PRD-010002"
	ErrCodeMissingProductName   ProductErrorCode = "PRD-010003"
	ErrCodeInvalidClosingDay    ProductErrorCode = "PRD-010004"
	ErrCodeInvalidDueDay        ProductErrorCode = "PRD-010005"
	ErrCodeNegativeCreditLimit  ProductErrorCode = "PRD-010006"
	ErrCodeInvalidLoanFields    ProductErrorCode = "PRD-010007"
	ErrCodeInvalidCardMetadata  ProductErrorCode = "PRD-010008"
	ErrCodeMissingProductFields ProductErrorCode = "PRD-010009"

	// Not found errors (02XXXX)
	ErrCodeProductNotFound       ProductErrorCode = "PRD-020001"
	ErrCodeInstitutionNotFound   ProductErrorCode = "PRD-020002"
	ErrCodeLinkedProductNotFound ProductErrorCode = "PRD-020003"

	// Policy violations (03XXXX)
	ErrCodeInstitutionRequired             ProductErrorCode = "PRD-030001"
	ErrCodeTypeNotAllowedForInstitution    ProductErrorCode = "PRD-030002"
	ErrCodeCurrencyNotAllowedForInstitution ProductErrorCode = "PRD-030003"
	ErrCodeCurrencyNotAllowedForCash       ProductErrorCode = "PRD-030004"
	ErrCodeBalanceOutOfBounds              ProductErrorCode = "PRD-030005"
	ErrCodeProductHasTransactions          ProductErrorCode = "PRD-030006"
	ErrCodeInvalidSharedLimit              ProductErrorCode = "PRD-030007"
)

// ProductError represents a product error with code and message.
type ProductError struct {
	Code    ProductErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ProductError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ProductError) Unwrap() error {
	return e.Err
}

// Kind returns the error kind encoded in the code.
func (e *ProductError) Kind() Kind {
	return kindFromCode(string(e.Code))
}

// ErrorCode returns the code as a string.
func (e *ProductError) ErrorCode() string {
	return string(e.Code)
}

// ErrorMessage returns the message without the wrapped cause.
func (e *ProductError) ErrorMessage() string {
	return e.Message
}

// NewProductError creates a new ProductError with the given code and message.
func NewProductError(code ProductErrorCode, message string, err error) *ProductError {
	return &ProductError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
