package domain

import "errors"

var (
	// ErrNotFound indicates the entity does not exist in the caller's workspace.
	ErrNotFound = errors.New("not found")

	// ErrServiceUnavailable indicates persistence is not configured or reachable.
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrValidation indicates malformed caller input.
	ErrValidation = errors.New("validation failed")

	// ErrConflict indicates the entity is in a state that forbids the change.
	ErrConflict = errors.New("conflict")
)
