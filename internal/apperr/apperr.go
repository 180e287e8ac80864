// Package apperr provides the structured error taxonomy shared by all services.
package apperr

import (
	"errors"
	"fmt"
)

// Code classifies an application error.
type Code string

const (
	// CodeForbidden: the caller's role does not permit the operation.
	CodeForbidden Code = "FORBIDDEN"
	// CodeNotFound: the record is absent or not owned by the caller.
	// The two cases are deliberately indistinguishable.
	CodeNotFound Code = "NOT_FOUND"
	// CodeConflict: an invariant would be violated (duplicate request,
	// already-accepted listing, re-processing, blocked delete).
	CodeConflict Code = "CONFLICT"
	// CodeValidation: malformed input or a capability-tag mismatch.
	CodeValidation Code = "VALIDATION"
)

// Error is a structured, caller-reportable application error.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func Forbidden(msg string) *Error {
	return &Error{Code: CodeForbidden, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Code: CodeConflict, Message: msg}
}

func Validation(format string, args ...interface{}) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the Code from err, or "" if err is not an *Error.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// Is reports whether err is an *Error with the given code.
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}
