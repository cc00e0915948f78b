package dao

import "errors"

// Sentinel errors, match them with errors.Is.
var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("dao: not found")

	// ErrInvalidID indicates that the supplied key is empty.
	ErrInvalidID = errors.New("dao: invalid id")

	// ErrNilEntity is returned when the caller attempts to save a nil pointer.
	ErrNilEntity = errors.New("dao: nil entity")
)
