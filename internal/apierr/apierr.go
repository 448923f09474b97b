package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error carries the HTTP status a failed operation should surface as,
// plus a stable machine code for clients.
type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func Validation(format string, args ...interface{}) *Error {
	return New(http.StatusBadRequest, "validation", fmt.Errorf(format, args...))
}

func NotFound(format string, args ...interface{}) *Error {
	return New(http.StatusNotFound, "not_found", fmt.Errorf(format, args...))
}

func Conflict(format string, args ...interface{}) *Error {
	return New(http.StatusConflict, "conflict", fmt.Errorf(format, args...))
}

func NotAcceptable(format string, args ...interface{}) *Error {
	return New(http.StatusNotAcceptable, "not_acceptable", fmt.Errorf(format, args...))
}

func Forbidden(format string, args ...interface{}) *Error {
	return New(http.StatusForbidden, "forbidden", fmt.Errorf(format, args...))
}

func Unauthorized(format string, args ...interface{}) *Error {
	return New(http.StatusUnauthorized, "unauthorized", fmt.Errorf(format, args...))
}

func Unprocessable(format string, args ...interface{}) *Error {
	return New(http.StatusUnprocessableEntity, "unprocessable", fmt.Errorf(format, args...))
}

func Upstream(err error) *Error {
	return New(http.StatusInternalServerError, "upstream", err)
}

// StatusOf reports the HTTP status for err, defaulting to 500 for
// anything that is not an *Error.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Status != 0 {
		return apiErr.Status
	}
	return http.StatusInternalServerError
}

// CodeOf reports the machine code for err, empty when unknown.
func CodeOf(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return ""
}
