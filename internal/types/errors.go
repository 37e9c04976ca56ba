package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for Gavel operations.
var (
	// ErrDuplicateFunction indicates a registration under an already-taken name.
	ErrDuplicateFunction = errors.New("function name already registered")

	// ErrInvalidFunctionName indicates an empty or malformed function name.
	ErrInvalidFunctionName = errors.New("invalid function name")

	// ErrNilImplementation indicates a function declaration without a body.
	ErrNilImplementation = errors.New("function implementation is nil")

	// ErrRegistryFrozen indicates registration after Build().
	ErrRegistryFrozen = errors.New("registry is frozen")

	// ErrZoneNotSupported indicates a zone request the calculator cannot honor.
	// The message text is part of the observable contract; callers surface it
	// verbatim in rule failure records.
	ErrZoneNotSupported = errors.New("does not support time zone specific calculations")

	// ErrNotDateCompatible indicates an operand no calculator recognizes.
	ErrNotDateCompatible = errors.New("not compatible with date calculations")

	// ErrInvalidDateFormat indicates a date/datetime literal outside the
	// strict accepted shapes.
	ErrInvalidDateFormat = errors.New("invalid date format")

	// ErrFieldOutOfRange indicates a calendar field value outside its legal domain.
	ErrFieldOutOfRange = errors.New("field value out of range")

	// ErrInfiniteSequence indicates a sequence step whose sign cannot reach
	// the endpoint.
	ErrInfiniteSequence = errors.New("would generate infinite sequence")

	// ErrPathTooDeep indicates a payload path beyond MaxPathDepth segments.
	ErrPathTooDeep = errors.New("path exceeds maximum depth")

	// ErrInvalidPath indicates a path expression that does not parse.
	ErrInvalidPath = errors.New("invalid path expression")
)

// FunctionError is the error surface of the function library. Every failure
// thrown out of a library function renders as
//
//	Failed to execute function '<Name>'. <reason>
//
// The format is a contract: the rule orchestrator stringifies these into
// rule-evaluation failure records that reach end users and logs.
type FunctionError struct {
	Function string // function name as registered
	Reason   string // specific failure description
	wrapped  error  // optional sentinel for errors.Is classification
}

// Error implements the error interface with the contractual message format.
func (e *FunctionError) Error() string {
	return fmt.Sprintf("Failed to execute function '%s'. %s", e.Function, e.Reason)
}

// Unwrap exposes the wrapped sentinel, if any, for errors.Is checks.
func (e *FunctionError) Unwrap() error { return e.wrapped }

// NewFunctionError builds a FunctionError with a formatted reason.
func NewFunctionError(function, format string, args ...any) *FunctionError {
	return &FunctionError{Function: function, Reason: fmt.Sprintf(format, args...)}
}

// WrapFunctionError builds a FunctionError around an underlying error,
// preserving it for errors.Is while keeping the contractual message shape.
func WrapFunctionError(function string, err error) *FunctionError {
	return &FunctionError{Function: function, Reason: err.Error(), wrapped: err}
}

// ordinals covers the parameter positions the library declares mandatory.
var ordinals = [...]string{"First", "Second", "Third", "Fourth", "Fifth", "Sixth"}

// MandatoryError reports a missing mandatory parameter by ordinal (1-based).
// "First parameter is mandatory" wording is part of the error contract.
func MandatoryError(function string, position int) *FunctionError {
	name := fmt.Sprintf("%d.", position)
	if position >= 1 && position <= len(ordinals) {
		name = ordinals[position-1]
	}
	return &FunctionError{Function: function, Reason: fmt.Sprintf("%s parameter is mandatory.", name)}
}
