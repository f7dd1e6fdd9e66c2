// Package errors defines the sentinel errors shared by every layer. Use cases wrap them
// with context; internal/httputil maps them to status codes.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict: the write collides with existing data, such as a taken email fingerprint.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput: the caller sent something malformed. Its message is safe to return.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized: credentials or a PIN did not verify.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden: the caller is known but not allowed.
	ErrForbidden = errors.New("forbidden")

	// ErrConfiguration: key material or other required settings are missing or invalid.
	// Operations that depend on them must not run.
	ErrConfiguration = errors.New("configuration error")

	// ErrIntegrity: a stored value failed authentication. It was tampered with or written
	// under different key material.
	ErrIntegrity = errors.New("integrity check failed")
)

// New is errors.New.
func New(message string) error {
	return errors.New(message)
}

// Wrap prefixes err with message and keeps it in the chain. A nil err stays nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is Wrap with a format string.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is is errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}
