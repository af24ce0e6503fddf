package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found for the user.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidTransactionAmount is returned when an amount is zero or negative.
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")

	// ErrMissingDescription is returned when the description is blank.
	ErrMissingDescription = errors.New("description is required")

	// ErrInvalidTransactionDate is returned when the transaction date is missing.
	ErrInvalidTransactionDate = errors.New("invalid transaction date")

	// ErrInvalidInstallments is returned when an installment count is out of range.
	ErrInvalidInstallments = errors.New("invalid installments")

	// ErrInvalidTransactionType is returned when the transaction type is unknown.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrSameProductTransfer is returned when a transfer has the same origin and destination.
	ErrSameProductTransfer = errors.New("origin and destination must differ")

	// ErrDescriptionTooLong is returned when the description exceeds the maximum length.
	ErrDescriptionTooLong = errors.New("description too long")

	// ErrNotesTooLong is returned when the notes exceed the maximum length.
	ErrNotesTooLong = errors.New("notes too long")

	// ErrCategoryNotFoundForTransaction is returned when the category does not exist for the user.
	ErrCategoryNotFoundForTransaction = errors.New("category not found")

	// ErrProductTypeNotEligible is returned when the product type cannot take part in the movement.
	ErrProductTypeNotEligible = errors.New("product type not eligible")

	// ErrCategoryTypeMismatch is returned when an income category is used for an expense or vice versa.
	ErrCategoryTypeMismatch = errors.New("category type does not match transaction type")

	// ErrCurrencyMismatchUnresolvable is returned when a cross-currency movement has no rate.
	ErrCurrencyMismatchUnresolvable = errors.New("no exchange rate for currency pair")

	// ErrInstallmentEditNotAllowed is returned when financial fields of an installment are edited.
	ErrInstallmentEditNotAllowed = errors.New("installment purchases cannot be edited")

	// ErrTransactionSettlesStatement is returned when a statement payment is edited or deleted.
	ErrTransactionSettlesStatement = errors.New("transaction settles a statement")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is the kind and YYYY is the specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionAmount TransactionErrorCode = "TXN-010001"
	ErrCodeMissingDescription       TransactionErrorCode = "TXN-010002"
	ErrCodeInvalidTransactionDate   TransactionErrorCode = "TXN-010003"
	ErrCodeInvalidInstallments      TransactionErrorCode = "TXN-010004"
	ErrCodeInvalidTransactionType   TransactionErrorCode = "TXN-010005"
	ErrCodeSameProductTransfer      TransactionErrorCode = "TXN-010006"
	ErrCodeDescriptionTooLong       TransactionErrorCode = "TXN-010007"
	ErrCodeNotesTooLong             TransactionErrorCode = "TXN-010008"
	ErrCodeMissingTransactionFields TransactionErrorCode = "TXN-010009"

	// Not found errors (02XXXX)
	ErrCodeTransactionNotFound TransactionErrorCode = "TXN-020001"
	ErrCodeTxnCategoryNotFound TransactionErrorCode = "TXN-020002"

	// Policy violations (03XXXX)
	ErrCodeProductTypeNotEligible       TransactionErrorCode = "TXN-030001"
	ErrCodeCategoryTypeMismatch         TransactionErrorCode = "TXN-030002"
	ErrCodeCurrencyMismatchUnresolvable TransactionErrorCode = "TXN-030003"
	ErrCodeInstallmentEditNotAllowed    TransactionErrorCode = "TXN-030004"
	ErrCodeTransactionSettlesStatement  TransactionErrorCode = "TXN-030005"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// Kind returns the error kind encoded in the code.
func (e *TransactionError) Kind() Kind {
	return kindFromCode(string(e.Code))
}

// ErrorCode returns the code as a string.
func (e *TransactionError) ErrorCode() string {
	return string(e.Code)
}

// ErrorMessage returns the message without the wrapped cause.
func (e *TransactionError) ErrorMessage() string {
	return e.Message
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
