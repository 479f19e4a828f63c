package errors

import (
	"errors"
	"fmt"
)

// MetaReason is the metadata key holding the short status message shown to
// users, such as "invalid_preset_format" or "import_failed"
const MetaReason = "reason"

// Error is a classified error with an optional cause and metadata
type Error struct {
	Code    Code           `json:"code"`
	Message string         `json:"message"`
	Cause   error          `json:"-"`
	Meta    map[string]any `json:"meta,omitempty"`
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error carrying the same code
func (e *Error) Is(target error) bool {
	var other *Error
	return errors.As(target, &other) && other.Code == e.Code
}

// WithMeta sets a metadata value and returns the error
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// WithReason records the user facing status message
func (e *Error) WithReason(reason string) *Error {
	return e.WithMeta(MetaReason, reason)
}

func newError(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap adds context to err. The code and metadata of a wrapped *Error are
// kept; anything else becomes Internal.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := &Error{Code: CodeInternal, Message: message, Cause: err}
	var inner *Error
	if errors.As(err, &inner) {
		wrapped.Code = inner.Code
		wrapped.Meta = inner.Meta
	}
	return wrapped
}

// Wrapf is Wrap with a formatted message
func Wrapf(err error, format string, args ...any) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode adds context to err and reclassifies it. Metadata is copied.
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := Wrap(err, message)
	wrapped.Code = code
	if wrapped.Meta != nil {
		meta := make(map[string]any, len(wrapped.Meta))
		for k, v := range wrapped.Meta {
			meta[k] = v
		}
		wrapped.Meta = meta
	}
	return wrapped
}

// InvalidArgument creates an invalid argument error
func InvalidArgument(message string) *Error {
	return newError(CodeInvalidArgument, message)
}

// InvalidArgumentf creates an invalid argument error with a formatted message
func InvalidArgumentf(format string, args ...any) *Error {
	return newError(CodeInvalidArgument, fmt.Sprintf(format, args...))
}

// NotFound creates a not found error
func NotFound(message string) *Error {
	return newError(CodeNotFound, message)
}

// NotFoundf creates a not found error with a formatted message
func NotFoundf(format string, args ...any) *Error {
	return newError(CodeNotFound, fmt.Sprintf(format, args...))
}

// AlreadyExists creates an already exists error
func AlreadyExists(message string) *Error {
	return newError(CodeAlreadyExists, message)
}

// AlreadyExistsf creates an already exists error with a formatted message
func AlreadyExistsf(format string, args ...any) *Error {
	return newError(CodeAlreadyExists, fmt.Sprintf(format, args...))
}

// FailedPreconditionf creates a failed precondition error with a formatted message
func FailedPreconditionf(format string, args ...any) *Error {
	return newError(CodeFailedPrecondition, fmt.Sprintf(format, args...))
}

// OutOfRangef creates an out of range error with a formatted message
func OutOfRangef(format string, args ...any) *Error {
	return newError(CodeOutOfRange, fmt.Sprintf(format, args...))
}

// Unavailable creates an unavailable error
func Unavailable(message string) *Error {
	return newError(CodeUnavailable, message)
}
