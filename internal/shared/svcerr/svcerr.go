// Package svcerr defines the typed service error carried from business logic
// to the HTTP boundary unchanged.
package svcerr

import (
	"errors"
	"net/http"
)

// Stable error codes understood by API clients.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeForbidden  = "FORBIDDEN"
	CodeNotFound   = "NOT_FOUND"
	CodeBadRequest = "BAD_REQUEST"
	CodeInternal   = "INTERNAL_ERROR"
)

// Error is a service failure with a stable code, HTTP status, and optional
// structured details.
type Error struct {
	Code    string
	Message string
	Status  int
	Details any
}

func (e *Error) Error() string {
	return e.Message
}

// New constructs an Error.
func New(code, message string, status int, details any) *Error {
	return &Error{Code: code, Message: message, Status: status, Details: details}
}

// Validation builds a 400 VALIDATION_ERROR with field-level details.
func Validation(message string, details any) *Error {
	return New(CodeValidation, message, http.StatusBadRequest, details)
}

// Forbidden builds a 403 FORBIDDEN.
func Forbidden(message string) *Error {
	return New(CodeForbidden, message, http.StatusForbidden, nil)
}

// NotFound builds a 404 NOT_FOUND.
func NotFound(message string) *Error {
	return New(CodeNotFound, message, http.StatusNotFound, nil)
}

// BadRequest builds a 400 BAD_REQUEST.
func BadRequest(message string) *Error {
	return New(CodeBadRequest, message, http.StatusBadRequest, nil)
}

// As unwraps err into an *Error if possible.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
