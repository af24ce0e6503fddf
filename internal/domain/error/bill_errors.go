package error

import "errors"

// Service and bill domain errors.
var (
	ErrServiceNotFound        = errors.New("service not found")
	ErrPaymentRuleNotFound    = errors.New("payment rule not found")
	ErrBillNotFound           = errors.New("bill not found")
	ErrMissingServiceName     = errors.New("service name is required")
	ErrInvalidBillAmount      = errors.New("amount must be positive")
	ErrInvalidBillDueDay      = errors.New("due day must be between 1 and 31")
	ErrInvalidBillPeriod      = errors.New("invalid billing period")
	ErrBillAlreadyPaid        = errors.New("bill already paid")
	ErrBillTransactionInvalid = errors.New("transaction cannot settle this bill")
	ErrNoPaymentProduct       = errors.New("no payment product for bill")
)

// BillErrorCode defines error codes for service and bill errors.
// Format: BIL-XXYYYY where XX is the kind and YYYY is the specific error.
type BillErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingServiceName BillErrorCode = "BIL-010001"
	ErrCodeInvalidBillAmount  BillErrorCode = "BIL-010002"
	ErrCodeInvalidBillDueDay  BillErrorCode = "BIL-010003"
	ErrCodeInvalidBillPeriod  BillErrorCode = "BIL-010004"
	ErrCodeMissingBillFields  BillErrorCode = "BIL-010005"

	// Not found errors (02XXXX)
	ErrCodeServiceNotFound     BillErrorCode = "BIL-020001"
	ErrCodePaymentRuleNotFound BillErrorCode = "BIL-020002"
	ErrCodeBillNotFound        BillErrorCode = "BIL-020003"

	// Policy violations (03XXXX)
	ErrCodeBillAlreadyPaid        BillErrorCode = "BIL-030001"
	ErrCodeBillTransactionInvalid BillErrorCode = "BIL-030002"
	ErrCodeNoPaymentProduct       BillErrorCode = "BIL-030003"
)

// BillError represents a service or bill error with code and message.
type BillError struct {
	Code    BillErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BillError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BillError) Unwrap() error {
	return e.Err
}

// Kind returns the error kind encoded in the code.
func (e *BillError) Kind() Kind {
	return kindFromCode(string(e.Code))
}

// ErrorCode returns the code as a string.
func (e *BillError) ErrorCode() string {
	return string(e.Code)
}

// ErrorMessage returns the message without the wrapped cause.
func (e *BillError) ErrorMessage() string {
	return e.Message
}

// NewBillError creates a new BillError with the given code and message.
func NewBillError(code BillErrorCode, message string, err error) *BillError {
	return &BillError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
