package gameerr

import (
	"errors"
	"fmt"
)

// Code classifies engine errors.
type Code string

const (
	// CodeIllegalMove marks a move rejected by validation. State is unchanged.
	CodeIllegalMove Code = "ILLEGAL_MOVE"
	// CodeInvariant marks a condition that correct move generation never reaches.
	CodeInvariant Code = "INVARIANT"
	// CodeParse marks malformed reward specs, event specs or move text.
	CodeParse Code = "PARSE"
)

// Error is the engine error type.
type Error struct {
	Code     Code              // Machine-readable error code
	Message  string            // Human readable message
	Metadata map[string]string // Additional context (player, command, ...)
	Cause    error             // Wrapped underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates an error with a code and message.
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WithMetadata creates an error carrying extra context.
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Metadata: metadata,
	}
}

// Wrap creates an error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func IllegalMove(format string, args ...any) *Error {
	return New(CodeIllegalMove, fmt.Sprintf(format, args...))
}

func Invariant(format string, args ...any) *Error {
	return New(CodeInvariant, fmt.Sprintf(format, args...))
}

func Parse(format string, args ...any) *Error {
	return New(CodeParse, fmt.Sprintf(format, args...))
}

var (
	errIllegalMove = &Error{Code: CodeIllegalMove}
	errInvariant   = &Error{Code: CodeInvariant}
	errParse       = &Error{Code: CodeParse}
)

func IsIllegalMove(err error) bool { return errors.Is(err, errIllegalMove) }
func IsInvariant(err error) bool   { return errors.Is(err, errInvariant) }
func IsParse(err error) bool       { return errors.Is(err, errParse) }

// CodeOf returns the code of the first *Error in the chain, or "".
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
