package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeNotAuthorized    = "not_authorized"
	CodeNotFound         = "not_found"
	CodeExpired          = "expired"
	CodeAlreadyCompleted = "already_completed"
	CodeConflict         = "conflict"
	CodeInvalidArgument  = "invalid_argument"
	CodeInternal         = "internal"
)

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

func NotAuthorized(err error) *Error {
	return New(http.StatusForbidden, CodeNotAuthorized, err)
}

func NotFound(err error) *Error {
	return New(http.StatusNotFound, CodeNotFound, err)
}

func Expired(err error) *Error {
	return New(http.StatusGone, CodeExpired, err)
}

func AlreadyCompleted(err error) *Error {
	return New(http.StatusConflict, CodeAlreadyCompleted, err)
}

func Conflict(err error) *Error {
	return New(http.StatusConflict, CodeConflict, err)
}

func InvalidArgument(err error) *Error {
	return New(http.StatusBadRequest, CodeInvalidArgument, err)
}

func Internal(err error) *Error {
	return New(http.StatusInternalServerError, CodeInternal, err)
}

// From maps any error to an *Error. Unrecognized errors become generic
// internal failures so nothing leaks transport-level detail to callers.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal(err)
}

func Is(err error, code string) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}
