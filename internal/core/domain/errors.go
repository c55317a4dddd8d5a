package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized means the credential is missing, expired or lacks permission.
	// The session has already been cleared when this is returned.
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	// ErrValidationFailed is matched by client-side field validation errors.
	// Such errors are produced before any request is sent.
	ErrValidationFailed = errors.New("validation failed")
)

// RequestFailedError is a failure reported by the fleet API.
type RequestFailedError struct {
	Status  int
	Message string
}

func (e *RequestFailedError) Error() string {
	return e.Message
}

// Is lets a 404 match ErrNotFound without changing the error that callers receive.
func (e *RequestFailedError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// NetworkFailedError is a transport failure where no response was received.
type NetworkFailedError struct {
	Err error
}

func (e *NetworkFailedError) Error() string {
	return fmt.Sprintf("network failure: %v", e.Err)
}

func (e *NetworkFailedError) Unwrap() error {
	return e.Err
}
