// Package repoerr holds the storage-level sentinel errors in a leaf
// package so domain services can map them without importing the
// repository interfaces (which import the domain packages).
package repoerr

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)
