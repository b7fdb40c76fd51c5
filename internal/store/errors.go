package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by backends when the key holds no value.
var ErrNotFound = errors.New("saved plan not found")

// PersistenceError represents a failed store operation
type PersistenceError struct {
	Op    string
	Cause error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error during %s: %v", e.Op, e.Cause)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}
