package error

import "errors"

// Ledger infrastructure errors.
var (
	// ErrConcurrentModification is returned when another unit of work changed the same rows first.
	ErrConcurrentModification = errors.New("concurrent modification")

	// ErrRetriesExhausted is returned when a conflicting unit of work kept failing.
	ErrRetriesExhausted = errors.New("retries exhausted")

	// ErrStorageUnavailable is returned when the store cannot be reached.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// LedgerErrorCode defines error codes for ledger infrastructure errors.
// Format: LDG-XXYYYY where XX is the kind and YYYY is the specific error.
type LedgerErrorCode string

const (
	// Conflicts (04XXXX)
	ErrCodeConcurrentModification LedgerErrorCode = "LDG-040001"
	ErrCodeRetriesExhausted       LedgerErrorCode = "LDG-040002"

	// Fatal errors (05XXXX)
	ErrCodeStorageUnavailable LedgerErrorCode = "LDG-050001"
)

// LedgerError represents an infrastructure error surfaced by the ledger.
type LedgerError struct {
	Code    LedgerErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LedgerError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// Kind returns the error kind encoded in the code.
func (e *LedgerError) Kind() Kind {
	return kindFromCode(string(e.Code))
}

// ErrorCode returns the code as a string.
func (e *LedgerError) ErrorCode() string {
	return string(e.Code)
}

// ErrorMessage returns the message without the wrapped cause.
func (e *LedgerError) ErrorMessage() string {
	return e.Message
}

// NewLedgerError creates a new LedgerError with the given code and message.
func NewLedgerError(code LedgerErrorCode, message string, err error) *LedgerError {
	return &LedgerError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewConflictError wraps err as a retryable concurrent modification.
func NewConflictError(err error) *LedgerError {
	if err == nil {
		err = ErrConcurrentModification
	}
	return NewLedgerError(ErrCodeConcurrentModification, "concurrent modification detected, retry the operation", err)
}
