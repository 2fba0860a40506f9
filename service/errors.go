package service

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorCode string

const (
	ErrorInvalidInput     ErrorCode = "INVALID_INPUT"
	ErrorNotFound         ErrorCode = "NOT_FOUND"
	ErrorValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrorStorage          ErrorCode = "STORAGE_ERROR"
)

// Error is the coded error returned by the contract service. Errors holds the
// field-level messages for VALIDATION_FAILED; it is empty for other codes.
type Error struct {
	Code    ErrorCode
	Message string
	Errors  []string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := fmt.Sprintf("service: %s (%s)", e.Code, e.Message)
	if len(e.Errors) > 0 {
		msg += ": " + strings.Join(e.Errors, "; ")
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newError(code ErrorCode, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// AsServiceError extracts a *Error from err, if it carries one.
func AsServiceError(err error) (*Error, bool) {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr, true
	}
	return nil, false
}
