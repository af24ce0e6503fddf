package error

import "errors"

// Exchange rate domain errors.
var (
	// ErrRateUnavailable is returned when no rate is stored for an ordered currency pair.
	ErrRateUnavailable = errors.New("exchange rate unavailable")

	// ErrInvalidRate is returned when a rate is zero or negative.
	ErrInvalidRate = errors.New("rate must be positive")

	// ErrInvalidRateCurrency is returned when a currency code is not recognised.
	ErrInvalidRateCurrency = errors.New("invalid currency")

	// ErrSameCurrencyRate is returned when storing a rate from a currency to itself.
	ErrSameCurrencyRate = errors.New("currencies must differ")
)

// ExchangeRateErrorCode defines error codes for exchange rate errors.
// Format: FXR-XXYYYY where XX is the kind and YYYY is the specific error.
type ExchangeRateErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidRateCurrency ExchangeRateErrorCode = "FXR-010001"
	ErrCodeInvalidRate         ExchangeRateErrorCode = "FXR-010002"
	ErrCodeSameCurrencyRate    ExchangeRateErrorCode = "FXR-010003"

	// Not found errors (02XXXX)
	ErrCodeRateUnavailable ExchangeRateErrorCode = "FXR-020001"
)

// ExchangeRateError represents an exchange rate error with code and message.
type ExchangeRateError struct {
	Code    ExchangeRateErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ExchangeRateError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ExchangeRateError) Unwrap() error {
	return e.Err
}

// Kind returns the error kind encoded in the code.
func (e *ExchangeRateError) Kind() Kind {
	return kindFromCode(string(e.Code))
}

// ErrorCode returns the code as a string.
func (e *ExchangeRateError) ErrorCode() string {
	return string(e.Code)
}

// ErrorMessage returns the message without the wrapped cause.
func (e *ExchangeRateError) ErrorMessage() string {
	return e.Message
}

// NewExchangeRateError creates a new ExchangeRateError with the given code and message.
func NewExchangeRateError(code ExchangeRateErrorCode, message string, err error) *ExchangeRateError {
	return &ExchangeRateError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
