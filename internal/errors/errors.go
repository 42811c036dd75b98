// Package errors provides coded domain errors for the directory engine.
//
// The engine never errors on messy data - malformed timestamps, missing
// fields, and unknown aliases all degrade gracefully. Errors exist only for
// caller-contract violations, surfaced at construction time so that query
// evaluation stays infallible.
//
// Usage:
//
//	// In constructors - return typed errors
//	if opts.MaxSecondary <= 0 {
//	    return errors.Validation("max secondary must be positive")
//	}
//
//	// In callers - check with errors.Is
//	if errors.Is(err, errors.ErrCorpusMismatch) {
//	    log.Error("alias index out of sync with corpus", "error", err)
//	}
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the engine.
const (
	CodeValidation     Code = "VALIDATION"
	CodeCorpusMismatch Code = "CORPUS_MISMATCH"
	CodeNotFound       Code = "NOT_FOUND"
	CodeInternal       Code = "INTERNAL"
)

// Error is a domain error with a code, message, and optional cause.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	cause   error  // unexported, for wrapping
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error.
// Matches if target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Sentinel errors for use with errors.Is.
var (
	ErrValidation     = &Error{Code: CodeValidation, Message: "validation failed"}
	ErrCorpusMismatch = &Error{Code: CodeCorpusMismatch, Message: "corpus mismatch"}
	ErrNotFound       = &Error{Code: CodeNotFound, Message: "not found"}
	ErrInternal       = &Error{Code: CodeInternal, Message: "internal error"}
)

// Validation creates a caller-contract violation error.
func Validation(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// CorpusMismatch creates an error for an alias index that references
// identifiers absent from the corpus it is paired with.
func CorpusMismatch(format string, args ...any) *Error {
	return &Error{Code: CodeCorpusMismatch, Message: fmt.Sprintf(format, args...)}
}

// NotFound creates a not-found error.
func NotFound(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Internal creates an internal error.
func Internal(format string, args ...any) *Error {
	return &Error{Code: CodeInternal, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with a code and message.
// Returns nil if err is nil.
func Wrap(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, cause: err}
}
