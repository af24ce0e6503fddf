// Package error defines domain-specific errors for the ledger.
package error

import (
	"errors"
	"strings"
)

// Kind classifies a domain error for callers deciding how to react to it.
type Kind string

const (
	KindValidation Kind = "VALIDATION"
	KindNotFound   Kind = "NOT_FOUND"
	KindPolicy     Kind = "POLICY_VIOLATION"
	KindConflict   Kind = "CONFLICT"
	KindFatal      Kind = "FATAL"
)

// kinded is implemented by every coded error in this package.
type kinded interface {
	Kind() Kind
}

// KindOf returns the kind of err. Errors that carry no kind are treated as fatal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var k kinded
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindFatal
}

// IsRetryable reports whether the operation that produced err may be retried.
// Only conflicts are retryable.
func IsRetryable(err error) bool {
	return KindOf(err) == KindConflict
}

// CodeOf returns the code of a coded error, or an empty string.
func CodeOf(err error) string {
	var c interface{ ErrorCode() string }
	if errors.As(err, &c) {
		return c.ErrorCode()
	}
	return ""
}

// kindFromCode derives the kind from the two digits after the prefix.
// Codes have the form AAA-KKNNNN.
func kindFromCode(code string) Kind {
	i := strings.IndexByte(code, '-')
	if i < 0 || len(code) < i+3 {
		return KindFatal
	}
	switch code[i+1 : i+3] {
	case "01":
		return KindValidation
	case "02":
		return KindNotFound
	case "03":
		return KindPolicy
	case "04":
		return KindConflict
	default:
		return KindFatal
	}
}

// MessageOf returns the caller-facing message of a coded error, or an empty string.
func MessageOf(err error) string {
	var m interface{ ErrorMessage() string }
	if errors.As(err, &m) {
		return m.ErrorMessage()
	}
	return ""
}
