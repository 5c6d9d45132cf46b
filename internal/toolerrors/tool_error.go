// Package toolerrors provides the structured error type returned by every
// tool in the tool library and routed through the dispatcher as a failed
// observation, never as an unstructured exception.
package toolerrors

import (
	"errors"
	"fmt"
)

// Kind classifies a tool failure. The dispatcher uses Kind to decide how a
// failed call is reported; failed calls are never retried.
type Kind string

const (
	// KindInvalidArgs marks a violated argument constraint (wrong type,
	// out-of-range value) detected before any graph store access.
	KindInvalidArgs Kind = "invalid_args"
	// KindUpstream marks a graph store or transport failure surfaced by the
	// gateway during tool execution.
	KindUpstream Kind = "upstream"
	// KindTimeout marks a tool call that exceeded its configured timeout.
	KindTimeout Kind = "timeout"
)

// ToolError represents a structured tool failure that preserves message,
// kind, and causal context while still implementing the standard error
// interface. Errors may be nested via Cause to retain diagnostics across
// retries.
type ToolError struct {
	Kind    Kind
	Message string
	Cause   *ToolError
}

// New constructs a ToolError of the given kind with the provided message.
func New(kind Kind, message string) *ToolError {
	if message == "" {
		message = "tool error"
	}
	return &ToolError{Kind: kind, Message: message}
}

// NewWithCause constructs a ToolError that wraps an underlying error.
func NewWithCause(kind Kind, message string, cause error) *ToolError {
	if message == "" && cause != nil {
		message = cause.Error()
	}
	return &ToolError{Kind: kind, Message: message, Cause: FromError(cause)}
}

// FromError converts an arbitrary error into a ToolError chain, defaulting
// to KindUpstream when the error carries no ToolError of its own.
func FromError(err error) *ToolError {
	if err == nil {
		return nil
	}
	var te *ToolError
	if errors.As(err, &te) {
		return te
	}
	return &ToolError{Kind: KindUpstream, Message: err.Error(), Cause: FromError(errors.Unwrap(err))}
}

// Errorf formats according to a format specifier and returns the result as a
// ToolError of the given kind.
func Errorf(kind Kind, format string, args ...any) *ToolError {
	return New(kind, fmt.Sprintf(format, args...))
}

// Error implements the error interface.
func (e *ToolError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// Unwrap returns the underlying tool error to support errors.Is/As.
func (e *ToolError) Unwrap() error {
	if e == nil || e.Cause == nil {
		return nil
	}
	return e.Cause
}

// Is reports whether target is a ToolError with the same Kind, supporting
// errors.Is(err, toolerrors.New(toolerrors.KindTimeout, "")) style checks.
func (e *ToolError) Is(target error) bool {
	te, ok := target.(*ToolError)
	if !ok || te == nil || e == nil {
		return false
	}
	return e.Kind == te.Kind
}
