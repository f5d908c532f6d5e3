package pricing

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter is returned when an input violates a precondition
	// of the Black-Scholes formulas.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrNumericOverflow is returned when valid inputs still produce a
	// non-finite result (e.g. e^(-rT) overflows for extreme rates).
	ErrNumericOverflow = errors.New("numeric overflow")
)

// ParamError reports which input field failed validation.
type ParamError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%v: %s", e.Field, e.Value, e.Reason)
}

func (e *ParamError) Unwrap() error { return ErrInvalidParameter }

// OverflowError names the quantity that left the representable range.
type OverflowError struct {
	Quantity string
	Value    float64
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("numeric overflow computing %s (got %v)", e.Quantity, e.Value)
}

func (e *OverflowError) Unwrap() error { return ErrNumericOverflow }
