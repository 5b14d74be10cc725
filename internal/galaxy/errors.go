package galaxy

import (
	"errors"
	"fmt"
)

// Domain errors for generation.
var (
	// ErrInvalidParameter indicates a parameter that is out of range or
	// structurally unusable (for example zero branches).
	ErrInvalidParameter = errors.New("galaxy: invalid parameter")

	// ErrAllocation indicates the output buffers could not be allocated.
	ErrAllocation = errors.New("galaxy: cannot allocate buffers")
)

// ParameterError names the offending field of a rejected parameter set.
type ParameterError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%s: %s=%v %s", ErrInvalidParameter, e.Field, e.Value, e.Reason)
}

func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameter
}

func invalid(field string, value any, reason string) error {
	return &ParameterError{Field: field, Value: value, Reason: reason}
}
