// Package errors provides structured error types for netweave.
//
// Every failure raised by the netlist core, the topology algebra, the reader
// and the storage layers carries a machine-readable [Code]. Callers test for a
// failure kind with [Is]:
//
//	_, err := comp.New([]netlist.Net{"x"})
//	if errors.Is(err, errors.ErrCodeNodes) {
//	    // wrong node count
//	}
//
// Core errors are raised before any mutation takes place, so a failed call
// leaves its receiver unchanged. None of them are transient; retrying the same
// call fails the same way.
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Construction errors
	ErrCodeNodes          Code = "NODES"
	ErrCodeMissingParams  Code = "MISSING_PARAMS"
	ErrCodeFrozenSubckt   Code = "FROZEN_SUBCIRCUIT"
	ErrCodeSubcktConflict Code = "SUBCKT_CONFLICT"

	// Topology algebra errors
	ErrCodeMask         Code = "MASK"
	ErrCodePortCount    Code = "PORT_COUNT"
	ErrCodeInvalidCount Code = "INVALID_COUNT"
	ErrCodeInvalidShape Code = "INVALID_SHAPE"

	// Resolution errors
	ErrCodeCyclicModel      Code = "CYCLIC_MODEL"
	ErrCodeCyclicDependency Code = "CYCLIC_DEPENDENCY"
	ErrCodeUnknownModel     Code = "UNKNOWN_MODEL"

	// Serialization and parsing errors
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeUnexpectedEOF   Code = "UNEXPECTED_EOF"
	ErrCodeUnexpectedToken Code = "UNEXPECTED_TOKEN"
	ErrCodeUnexpectedChar  Code = "UNEXPECTED_CHARACTER"

	// Storage errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code,
// so an error wrapped with a different code still matches its inner code.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %s", e.Message, UserMessage(e.Cause))
		}
		return e.Message
	}
	return err.Error()
}

// IsInput reports whether err signals a malformed caller input rather than a
// storage or internal failure.
func IsInput(err error) bool {
	switch GetCode(err) {
	case "", ErrCodeNotFound, ErrCodeInternal:
		return false
	}
	return true
}
