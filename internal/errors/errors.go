// Package errors provides centralized error definitions and error handling utilities
// for filterlines. It defines sentinel errors, typed errors carrying context about
// the failing input, and classification helpers used by the command layer to
// decide what to show the user.
//
// # Error Types
//
//   - PatternError: a search or separator regular expression failed to compile
//   - ValidationError: invalid input or state (missing pattern, bad flag value)
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewPatternError(errors.PatternSearch, "a(b", compileErr)
//	err := errors.NewValidationError("no pattern given").WithField("regex")
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrInvalidPattern) { ... }
//
//	var patternErr *errors.PatternError
//	if errors.As(err, &patternErr) { ... }
//
//	if errors.IsUserFacing(err) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

var (
	// ErrInvalidPattern indicates that a regular expression failed to compile.
	ErrInvalidPattern = New("invalid pattern")
	// ErrNoActiveDocument indicates that there is no document to filter.
	ErrNoActiveDocument = New("no active document")
	// ErrPromptCanceled indicates that the user dismissed an input prompt.
	ErrPromptCanceled = New("prompt canceled")
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
	// ErrNoTerminal indicates that a prompt was needed but no terminal is attached.
	ErrNoTerminal = New("no terminal available for prompt")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// FilterError is the base interface for all filterlines errors.
type FilterError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsUserFacing returns true if the error message is safe to display
	// to end users.
	IsUserFacing() bool
}

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	userFacing bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// -----------------------------------------------------------------------------
// PatternError
// -----------------------------------------------------------------------------

// PatternKind names which user-supplied expression failed.
type PatternKind string

const (
	// PatternSearch is the expression segments are matched against.
	PatternSearch PatternKind = "search"
	// PatternSeparator is the expression used to split the document.
	PatternSeparator PatternKind = "separator"
)

// PatternError reports a regular expression that could not be compiled.
//
// Example:
//
//	err := errors.NewPatternError(errors.PatternSeparator, "(;", cause)
//	fmt.Println(err) // `invalid separator pattern "(;": error parsing regexp: ...`
type PatternError struct {
	baseError
	Kind    PatternKind
	Pattern string
}

// NewPatternError creates a new PatternError.
func NewPatternError(kind PatternKind, pattern string, cause error) *PatternError {
	return &PatternError{
		baseError: baseError{
			message:    fmt.Sprintf("invalid %s pattern %q", kind, pattern),
			cause:      cause,
			severity:   SeverityError,
			userFacing: true,
		},
		Kind:    kind,
		Pattern: pattern,
	}
}

// Is checks if this error matches the target.
func (e *PatternError) Is(target error) bool {
	if _, ok := target.(*PatternError); ok {
		return true
	}
	if target == ErrInvalidPattern {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// ValidationError
// -----------------------------------------------------------------------------

// ValidationError represents invalid input or state.
//
// Example:
//
//	err := errors.NewValidationError("pattern cannot be empty")
//	err = err.WithField("regex").WithValue("")
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "validation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("validation error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if target == ErrInvalidInput {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Classification
// -----------------------------------------------------------------------------

// IsUserFacing returns true if the error message is safe to display to end users.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	var filterErr FilterError
	if As(err, &filterErr) {
		return filterErr.IsUserFacing()
	}

	return Is(err, ErrNoActiveDocument) || Is(err, ErrPromptCanceled) || Is(err, ErrNoTerminal)
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement FilterError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var filterErr FilterError
	if As(err, &filterErr) {
		return filterErr.Severity()
	}

	if Is(err, ErrPromptCanceled) {
		return SeverityInfo
	}

	return SeverityError
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
