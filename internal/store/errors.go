package store

import "errors"

var (
	// ErrNotFound is returned when a referenced row does not exist (or,
	// for engineers, has been soft-deleted).
	ErrNotFound = errors.New("record not found")

	// ErrOrderConflict is returned when a conditional order update matched
	// no row because the order's status changed under the caller.
	ErrOrderConflict = errors.New("order was modified concurrently")
)
