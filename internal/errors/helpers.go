package errors

import (
	"errors"
)

// As is errors.As for *Error targets
func As(err error, target **Error) bool {
	return errors.As(err, target)
}

// Is is errors.Is
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// GetCode returns the code of err. Unclassified errors are Internal.
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// HasCode reports whether err is classified with code
func HasCode(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// GetMeta returns the metadata of the outermost *Error in the chain
func GetMeta(err error) map[string]any {
	var e *Error
	if errors.As(err, &e) {
		return e.Meta
	}
	return nil
}

// GetMessage returns the message of the outermost *Error, or err.Error()
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Reason returns the status message recorded with WithReason, or fallback
func Reason(err error, fallback string) string {
	if reason, ok := GetMeta(err)[MetaReason].(string); ok && reason != "" {
		return reason
	}
	return fallback
}

func IsNotFound(err error) bool           { return HasCode(err, CodeNotFound) }
func IsInvalidArgument(err error) bool    { return HasCode(err, CodeInvalidArgument) }
func IsAlreadyExists(err error) bool      { return HasCode(err, CodeAlreadyExists) }
func IsFailedPrecondition(err error) bool { return HasCode(err, CodeFailedPrecondition) }
func IsOutOfRange(err error) bool         { return HasCode(err, CodeOutOfRange) }
func IsUnavailable(err error) bool        { return HasCode(err, CodeUnavailable) }
func IsDataLoss(err error) bool           { return HasCode(err, CodeDataLoss) }
func IsInternal(err error) bool           { return HasCode(err, CodeInternal) }
