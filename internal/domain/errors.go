package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput signals a malformed search request, e.g. missing text.
	ErrInvalidInput = errors.New("invalid input")
	// ErrBackend signals a failed realm backend query.
	ErrBackend = errors.New("backend error")
	// ErrUnknownRealm signals a realm name that is not configured.
	ErrUnknownRealm = errors.New("unknown realm")
	// ErrInvalidDocument signals a document that cannot be indexed.
	ErrInvalidDocument = errors.New("invalid document")
)

// BackendError wraps ErrBackend with the realm that failed.
type BackendError struct {
	Realm string
	Err   error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s: realm %s: %v", ErrBackend.Error(), e.Realm, e.Err)
}

// Is matches ErrBackend.
func (e *BackendError) Is(target error) bool { return target == ErrBackend }

func (e *BackendError) Unwrap() error { return e.Err }

// NewBackendError creates a realm backend error.
func NewBackendError(realm string, err error) error {
	return &BackendError{Realm: realm, Err: err}
}
