// Package common contains shared constants, sentinel errors, and random
// helpers used across raggate components. Callers should use errors.Is to
// match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Credential errors. ErrInvalidCredentials deliberately covers both
	// unknown usernames and wrong passwords so callers cannot tell the
	// two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account locked")

	// Session lifecycle errors.
	ErrSessionUnknown = errors.New("session unknown")
	ErrSessionExpired = errors.New("session expired")

	// User management errors.
	ErrDuplicateUser = errors.New("user already exists")
	ErrInvalidRole   = errors.New("invalid role")

	// Rate limiting.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// Repository-level errors.
	ErrNotFound = errors.New("not found")
)

// PersistenceError wraps a failed write of a durable document. The mutation
// it belonged to is considered failed and is not retried.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure for %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
