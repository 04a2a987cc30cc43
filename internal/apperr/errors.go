// Package apperr defines the sentinel errors shared across Ehwaz.
package apperr

import "errors"

var (
	// ErrNotFound is returned when a document, profile, or asset does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateIdentity is returned when registering a computer whose
	// (platform, username) pair collides with the profile marked current.
	ErrDuplicateIdentity = errors.New("duplicate computer identity")
	// ErrPersistence is returned when the profile registry or a document
	// write fails durably. In-memory state is not rolled back.
	ErrPersistence = errors.New("persistence failure")
)
