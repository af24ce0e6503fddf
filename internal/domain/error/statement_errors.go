package error

import "errors"

// Statement domain errors.
var (
	ErrStatementNotFound       = errors.New("statement not found")
	ErrAdjustmentNotFound      = errors.New("adjustment not found")
	ErrInvalidAdjustmentAmount = errors.New("adjustment amount must not be zero")
	ErrInvalidAdjustmentKind   = errors.New("invalid adjustment kind")
	ErrNotCreditCard           = errors.New("product is not a credit card")
	ErrStatementNotClosed      = errors.New("statement is not closed")
	ErrStatementPaid           = errors.New("statement is paid")
	ErrNothingToPay            = errors.New("statement total is not positive")
)

// StatementErrorCode defines error codes for statement errors.
// Format: STM-XXYYYY where XX is the kind and YYYY is the specific error.
type StatementErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidAdjustmentAmount StatementErrorCode = "STM-010001"
	ErrCodeInvalidAdjustmentKind   StatementErrorCode = "STM-010002"
	ErrCodeMissingAdjustmentFields StatementErrorCode = "STM-010003"

	// Not found errors (02XXXX)
	ErrCodeStatementNotFound  StatementErrorCode = "STM-020001"
	ErrCodeAdjustmentNotFound StatementErrorCode = "STM-020002"

	// Policy violations (03XXXX)
	ErrCodeNotCreditCard      StatementErrorCode = "STM-030001"
	ErrCodeStatementNotClosed StatementErrorCode = "STM-030002"
	ErrCodeStatementPaid      StatementErrorCode = "STM-030003"
	ErrCodeNothingToPay       StatementErrorCode = "STM-030004"
)

// StatementError represents a statement error with code and message.
type StatementError struct {
	Code    StatementErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *StatementError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *StatementError) Unwrap() error {
	return e.Err
}

// Kind returns the error kind encoded in the code.
func (e *StatementError) Kind() Kind {
	return kindFromCode(string(e.Code))
}

// ErrorCode returns the code as a string.
func (e *StatementError) ErrorCode() string {
	return string(e.Code)
}

// ErrorMessage returns the message without the wrapped cause.
func (e *StatementError) ErrorMessage() string {
	return e.Message
}

// NewStatementError creates a new StatementError with the given code and message.
func NewStatementError(code StatementErrorCode, message string, err error) *StatementError {
	return &StatementError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
