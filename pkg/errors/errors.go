// Package errors provides structured error types for felipe.
//
// Errors carry a machine-readable [Code] so the batch runner can tell the
// three failure classes apart:
//   - Configuration errors abort the whole run ([IsConfigError])
//   - Record errors skip only the offending input file ([IsRecordError])
//   - I/O errors are fatal while loading configuration and recoverable
//     per record otherwise
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownType, "unknown component type %q", name)
//	if errors.Is(err, errors.ErrCodeUnknownType) {
//	    // skip the record
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Configuration errors
	ErrCodeInvalidConfig      Code = "INVALID_CONFIG"
	ErrCodeConfigCycle        Code = "CONFIG_CYCLE"
	ErrCodeConfigDanglingBase Code = "CONFIG_DANGLING_BASE"

	// Record errors
	ErrCodeInvalidRecord Code = "INVALID_RECORD"
	ErrCodeUnknownType   Code = "UNKNOWN_TYPE"

	// I/O errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeIO           Code = "IO_ERROR"

	// Output errors
	ErrCodeInvalidDOT Code = "INVALID_DOT"

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
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
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
		return e.Message
	}
	return err.Error()
}

// IsConfigError reports whether err belongs to the configuration class,
// which aborts a run before any record is processed.
func IsConfigError(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidConfig, ErrCodeConfigCycle, ErrCodeConfigDanglingBase:
		return true
	}
	return false
}

// IsRecordError reports whether err belongs to the record class, which
// skips a single input file.
func IsRecordError(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidRecord, ErrCodeUnknownType:
		return true
	}
	return false
}

// UnknownTypeError is returned when a record references a component or
// relation type the configuration does not declare.
type UnknownTypeError struct {
	Kind string // "component" or "relation"
	Name string
}

// Error implements the error interface.
func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown %s type %q", e.Kind, e.Name)
}

// Code returns the error code for this error type.
func (e *UnknownTypeError) Code() Code {
	return ErrCodeUnknownType
}
