// Package errors defines the typed application errors shared by the data
// preparation jobs. Every failure is fatal: callers wrap the underlying cause
// in an AppError so the command can log its type and context before exiting.
package errors

import (
	stderrors "errors"
)

// TypeOf returns the ErrorType of the first AppError in err's chain, or ""
// when the chain holds none.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// IsType reports whether err's chain holds an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	return TypeOf(err) == errType
}

// IsNotFound reports whether err is a NOT_FOUND AppError
func IsNotFound(err error) bool {
	return IsType(err, ErrTypeNotFound)
}

// IsParsing reports whether err is a PARSING AppError
func IsParsing(err error) bool {
	return IsType(err, ErrTypeParsing)
}

// LogAttrs returns slog key/value pairs describing err. AppErrors contribute
// their type and context; other errors only their message.
func LogAttrs(err error) []any {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		attrs := appErr.LogAttrs()
		// keep the outermost message, it carries the step prefix
		attrs[3] = err.Error()
		return attrs
	}
	return []any{"error", err.Error()}
}
