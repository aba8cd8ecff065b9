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

	// ErrNotConfigured indicates a required service was not wired.
	ErrNotConfigured = errors.New("not configured")

	// ErrUnsupportedType indicates an unknown store kind.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrEmptyCollection indicates a collection holds no documents.
	ErrEmptyCollection = errors.New("collection is empty")
)
