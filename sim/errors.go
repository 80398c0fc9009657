package sim

import (
	"errors"
	"fmt"
)

// InputErrorReason classifies why a QueueingInput was rejected.
type InputErrorReason string

const (
	// ReasonNonNumeric means raw text could not be parsed as a number.
	ReasonNonNumeric InputErrorReason = "non-numeric"
	// ReasonNonPositiveRate means λ or μ was zero, negative or not finite.
	ReasonNonPositiveRate InputErrorReason = "non-positive-rate"
	// ReasonInvalidSelector means an entry or exit id is outside 1..4.
	ReasonInvalidSelector InputErrorReason = "invalid-selector"
	// ReasonOverloaded means ρ = λ/(cμ) ≥ 1 and the queue never drains.
	ReasonOverloaded InputErrorReason = "overloaded"
)

// InvalidInputError is the only error the queueing model returns.
type InvalidInputError struct {
	Reason InputErrorReason
	Detail string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input (%s): %s", e.Reason, e.Detail)
}

func invalidInput(reason InputErrorReason, format string, args ...any) *InvalidInputError {
	return &InvalidInputError{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

// IsInvalidInput reports whether err is (or wraps) an InvalidInputError
// with the given reason. An empty reason matches any InvalidInputError.
func IsInvalidInput(err error, reason InputErrorReason) bool {
	var ie *InvalidInputError
	if !errors.As(err, &ie) {
		return false
	}
	return reason == "" || ie.Reason == reason
}
