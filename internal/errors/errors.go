// Package errors provides error handling utilities.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeUnknownUnit indicates a symbol that is neither registered nor prefix-synthesizable
	TypeUnknownUnit Type = "UNKNOWN_UNIT"

	// TypeDuplicateUnit indicates a registration collision
	TypeDuplicateUnit Type = "DUPLICATE_UNIT"

	// TypeInconsistentUnits indicates an operation across incompatible dimensions or exponents
	TypeInconsistentUnits Type = "INCONSISTENT_UNITS"

	// TypeInvalidPower indicates a non-integer exponent
	TypeInvalidPower Type = "INVALID_POWER"

	// TypeInvalidSqrt indicates an odd exponent left after base decomposition
	TypeInvalidSqrt Type = "INVALID_SQRT"

	// TypeUnknownConstant indicates a constant registry miss
	TypeUnknownConstant Type = "UNKNOWN_CONSTANT"

	// TypeDuplicateConstant indicates a constant registration collision
	TypeDuplicateConstant Type = "DUPLICATE_CONSTANT"

	// TypeInconsistentDimension indicates a declared dimension conflicting with a reference unit
	TypeInconsistentDimension Type = "INCONSISTENT_DIMENSION"

	// TypeDimensionRequired indicates a compound unit whose dimension cannot be inferred
	TypeDimensionRequired Type = "DIMENSION_REQUIRED"

	// TypeFrozen indicates a mutation attempted after initialization
	TypeFrozen Type = "FROZEN"

	// TypeInput indicates an input validation error
	TypeInput Type = "INPUT_ERROR"

	// TypeParsing indicates a parsing error
	TypeParsing Type = "PARSING_ERROR"

	// TypeConfig indicates a configuration error
	TypeConfig Type = "CONFIG_ERROR"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"
)

// Error represents a domain error with context
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error is of a specific type
func (e *Error) Is(t Type) bool {
	return e.Type == t
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(errType Type, cause error, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// IsType reports whether err, or any error it wraps, is of type t
func IsType(err error, t Type) bool {
	var e *Error
	for err != nil {
		if !stderrors.As(err, &e) {
			return false
		}
		if e.Type == t {
			return true
		}
		err = e.Cause
	}
	return false
}

// UnknownUnit creates an unknown unit error
func UnknownUnit(symbol string) *Error {
	return Newf(TypeUnknownUnit, "unknown unit %q", symbol).WithContext("symbol", symbol)
}

// DuplicateUnit creates a duplicate unit error
func DuplicateUnit(symbol string) *Error {
	return Newf(TypeDuplicateUnit, "unit %q already registered", symbol).WithContext("symbol", symbol)
}

// InconsistentUnits creates an inconsistent units error
func InconsistentUnits(from, to string) *Error {
	return Newf(TypeInconsistentUnits, "inconsistent units: %s, %s", from, to).
		WithContext("from", from).
		WithContext("to", to)
}

// InvalidPower creates an invalid power error
func InvalidPower(exp float64) *Error {
	return Newf(TypeInvalidPower, "invalid power %v: only integer powers are allowed", exp)
}

// InvalidSqrt creates an invalid sqrt error
func InvalidSqrt(units string) *Error {
	return Newf(TypeInvalidSqrt, "invalid dimensions for sqrt: %s", units)
}

// UnknownConstant creates an unknown constant error
func UnknownConstant(symbol string) *Error {
	return Newf(TypeUnknownConstant, "unknown constant %q", symbol).WithContext("symbol", symbol)
}

// DuplicateConstant creates a duplicate constant error
func DuplicateConstant(symbol string) *Error {
	return Newf(TypeDuplicateConstant, "constant %q already defined", symbol).WithContext("symbol", symbol)
}

// InconsistentDimension creates an inconsistent dimension error
func InconsistentDimension(symbol, declared, actual string) *Error {
	return Newf(TypeInconsistentDimension, "unit %q declared as %s but its reference is %s", symbol, declared, actual).
		WithContext("symbol", symbol)
}

// DimensionRequired creates a dimension required error
func DimensionRequired(symbol string) *Error {
	return Newf(TypeDimensionRequired, "dimension required for unit %q", symbol).WithContext("symbol", symbol)
}

// Frozen creates an error for mutations after initialization
func Frozen(what string) *Error {
	return Newf(TypeFrozen, "%s is frozen", what)
}

// Input creates an input error
func Input(message string) *Error {
	return New(TypeInput, message)
}

// Parsing creates a parsing error
func Parsing(message string, cause error) *Error {
	return Wrap(TypeParsing, message, cause)
}

// Config creates a configuration error
func Config(message string, cause error) *Error {
	return Wrap(TypeConfig, message, cause)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}
