package nn

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrInvalidTopology       = errors.New("invalid network topology")
	ErrNumericalInstability  = errors.New("numerical instability")
	ErrUnknownActivation     = errors.New("unknown activation")
	ErrShapeMismatch         = errors.New("parameter shape mismatch")
	errParameterCountInvalid = errors.New("parameter count does not match layer count")
)

// InstabilityError reports the first non-finite value found by Validate.
type InstabilityError struct {
	Group string  // "weights", "biases", "x", "activations" or "zs"
	Index int     // Position inside the group (layer index)
	Row   int     // Row of the offending entry
	Col   int     // Column of the offending entry
	Value float64 // The NaN or Inf itself
}

// Error implements the error interface.
func (e *InstabilityError) Error() string {
	if e.Group == "x" {
		return fmt.Sprintf("%v: %v in x at (%d, %d)", ErrNumericalInstability, e.Value, e.Row, e.Col)
	}
	return fmt.Sprintf("%v: %v in %s[%d] at (%d, %d)",
		ErrNumericalInstability, e.Value, e.Group, e.Index, e.Row, e.Col)
}

// Unwrap lets errors.Is match ErrNumericalInstability.
func (e *InstabilityError) Unwrap() error {
	return ErrNumericalInstability
}
