package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict indicates a request that would violate an invariant,
	// such as reassigning a note to a section of a stale revision or
	// recording a second active provocation for one (section, revision).
	ErrConflict = errors.New("conflict")

	// ErrInternal indicates the store returned an unexpected shape.
	// This is a programming-invariant violation, never expected in
	// correct operation, and is surfaced rather than retried.
	ErrInternal = errors.New("internal error")

	// ErrUnsupportedType indicates an unknown sectioner type.
	ErrUnsupportedType = errors.New("unsupported type")
)
