// Package common defines shared sentinel errors used across client and server
// layers of authgate. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound        = errors.New("not found")
	ErrUniqueViolation = errors.New("unique constraint violation")

	// Domain errors. All three surface to the transport boundary as the same
	// unauthorized response, with no field-level detail.
	ErrDuplicateUser      = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")

	// Infrastructure errors.
	ErrHashing  = errors.New("password hashing failed")
	ErrInternal = errors.New("internal error")
)
