package expansion

import (
	"errors"
	"fmt"
)

// DivisionUndefinedError is returned when the nominal length is exactly
// zero, which leaves relative expansion undefined (0/0).
type DivisionUndefinedError struct {
	Material string
}

// Error implements the error interface.
func (e *DivisionUndefinedError) Error() string {
	return fmt.Sprintf("relative expansion undefined for %s: nominal length is zero", e.Material)
}

// InputError reports a NaN or infinite input.
type InputError struct {
	Field string
	Value float64
}

// Error implements the error interface.
func (e *InputError) Error() string {
	return fmt.Sprintf("%s must be finite, got %v", e.Field, e.Value)
}

// IsDivisionUndefined returns true if err is, or wraps, a DivisionUndefinedError.
func IsDivisionUndefined(err error) bool {
	var de *DivisionUndefinedError
	return errors.As(err, &de)
}

// IsInputError returns true if err is, or wraps, an InputError.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}
