package error

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Kind
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "plain error is fatal",
			err:      errors.New("connection refused"),
			expected: KindFatal,
		},
		{
			name:     "validation code",
			err:      NewTransactionError(ErrCodeInvalidTransactionAmount, "amount must be positive", ErrInvalidTransactionAmount),
			expected: KindValidation,
		},
		{
			name:     "not found code",
			err:      NewProductError(ErrCodeProductNotFound, "product not found", ErrProductNotFound),
			expected: KindNotFound,
		},
		{
			name:     "policy code",
			err:      NewStatementError(ErrCodeStatementPaid, "statement is paid", ErrStatementPaid),
			expected: KindPolicy,
		},
		{
			name:     "conflict code",
			err:      NewConflictError(nil),
			expected: KindConflict,
		},
		{
			name:     "fatal code",
			err:      NewLedgerError(ErrCodeStorageUnavailable, "storage unavailable", ErrStorageUnavailable),
			expected: KindFatal,
		},
		{
			name:     "wrapped coded error",
			err:      fmt.Errorf("record expense: %w", NewExchangeRateError(ErrCodeRateUnavailable, "no rate", ErrRateUnavailable)),
			expected: KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.expected {
				t.Errorf("KindOf() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestIsRetryable(t *testing.T) {
	if !IsRetryable(NewConflictError(errors.New("40001"))) {
		t.Error("expected conflict to be retryable")
	}
	if IsRetryable(NewBillError(ErrCodeBillAlreadyPaid, "already paid", ErrBillAlreadyPaid)) {
		t.Error("expected policy violation not to be retryable")
	}
	if IsRetryable(errors.New("boom")) {
		t.Error("expected unknown error not to be retryable")
	}
}

func TestCodeOf(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewBillError(ErrCodeBillNotFound, "bill not found", ErrBillNotFound))
	if got := CodeOf(err); got != string(ErrCodeBillNotFound) {
		t.Errorf("CodeOf() = %q, want %q", got, ErrCodeBillNotFound)
	}
	if !errors.Is(err, ErrBillNotFound) {
		t.Error("expected errors.Is to find the sentinel")
	}
	if got := CodeOf(errors.New("plain")); got != "" {
		t.Errorf("CodeOf() = %q, want empty", got)
	}
}

func TestMessageOf(t *testing.T) {
	err := fmt.Errorf("pay bill: %w", NewBillError(ErrCodeBillAlreadyPaid, "bill is already paid", ErrBillAlreadyPaid))

	if got := MessageOf(err); got != "bill is already paid" {
		t.Errorf("MessageOf() = %q", got)
	}
	if got := MessageOf(errors.New("boom")); got != "" {
		t.Errorf("MessageOf() on a plain error = %q, want empty", got)
	}
}
