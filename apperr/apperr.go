// Package apperr defines the error taxonomy shared by every component.
// Errors carry a machine-readable code; the HTTP layer maps codes to
// status responses at the request boundary.
package apperr

import (
	"errors"
	"net/http"
)

const (
	ENotFound      = "not found" // missing, or owned by another tenant (indistinguishable on purpose)
	EForbidden     = "forbidden"
	EInvalid       = "invalid"
	EQuotaExceeded = "quota exceeded"
	EConflict      = "conflict"
	EInternal      = "internal error"
)

type Error struct {
	Code string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Code
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NotFound(msg string) *Error      { return &Error{Code: ENotFound, Msg: msg} }
func Forbidden(msg string) *Error     { return &Error{Code: EForbidden, Msg: msg} }
func Invalid(msg string) *Error       { return &Error{Code: EInvalid, Msg: msg} }
func QuotaExceeded(msg string) *Error { return &Error{Code: EQuotaExceeded, Msg: msg} }
func Conflict(msg string) *Error      { return &Error{Code: EConflict, Msg: msg} }

// Internal wraps an unexpected failure (typically a storage error).
// The wrapped error is kept for logs; callers see an opaque message.
func Internal(err error) *Error {
	return &Error{Code: EInternal, Msg: "internal error", Err: err}
}

// ErrorCode returns the code of err, or EInternal for foreign errors.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return EInternal
}

// HTTPStatus maps an error code to the response status used at the
// request boundary.
func HTTPStatus(err error) int {
	switch ErrorCode(err) {
	case ENotFound:
		return http.StatusNotFound
	case EForbidden:
		return http.StatusForbidden
	case EInvalid:
		return http.StatusBadRequest
	case EQuotaExceeded:
		return http.StatusTooManyRequests
	case EConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
