// Package common defines shared constants and sentinel errors used across
// client and server layers of polyglot. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// repository specific errors
	ErrorNotFound = errors.New("not found")

	// service specific errors
	ErrorInternal = errors.New("internal error")

	// validation errors, reported before any backend call
	ErrInvalidEmail = errors.New("invalid email")
	ErrWeakPassword = errors.New("password must be at least 8 characters long and contain an uppercase letter and a special character")
	ErrInvalidInput = errors.New("invalid input")

	// user directory errors
	ErrDuplicateEmail = errors.New("email already registered")
	ErrUserNotFound   = errors.New("user not found")

	// authentication errors
	ErrInvalidCredentials      = errors.New("invalid email or password")
	ErrNoToken                 = errors.New("missing or malformed authorization header")
	ErrInvalidOrExpiredSession = errors.New("invalid or expired session")

	// infrastructure errors
	ErrBackendUnavailable  = errors.New("backend unavailable")
	ErrProviderUnavailable = errors.New("translation provider unavailable")
	ErrStorageDisabled     = errors.New("object storage is not configured")
)
