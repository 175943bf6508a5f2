package service

import "net/http"

// Error is a service-level failure with an HTTP status already decided.
// Handlers map it straight to a response; anything that is not a *Error
// becomes a generic 500.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

func errBadRequest(msg string) *Error   { return &Error{Status: http.StatusBadRequest, Message: msg} }
func errUnauthorized(msg string) *Error { return &Error{Status: http.StatusUnauthorized, Message: msg} }
func errForbidden(msg string) *Error    { return &Error{Status: http.StatusForbidden, Message: msg} }
func errNotFound(msg string) *Error     { return &Error{Status: http.StatusNotFound, Message: msg} }
func errConflict(msg string) *Error     { return &Error{Status: http.StatusConflict, Message: msg} }
func errLocked(msg string) *Error {
	return &Error{Status: http.StatusTooManyRequests, Message: msg}
}
