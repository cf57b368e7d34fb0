package service

import (
	"errors"
	"fmt"
)

// Taxonomy shared by all services. Controllers map these to status codes;
// services themselves know nothing about HTTP.
var (
	// ErrInvalidCredentials covers both unknown user and wrong password so a
	// caller cannot probe which usernames exist.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUnauthenticated means the request carried no live session.
	ErrUnauthenticated = errors.New("unauthenticated")

	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")

	ErrUserExists = errors.New("user already exists")
)

// StoreError wraps a persistence failure. It is only ever returned after the
// surrounding transaction has been rolled back.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func newStoreError(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

// IsStoreError reports whether err is (or wraps) a StoreError.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
