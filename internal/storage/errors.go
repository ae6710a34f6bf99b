package storage

import (
	"errors"
	"fmt"
)

// ErrNotFound is wrapped by lookups that found no row.
var ErrNotFound = errors.New("not found")

// PersistenceError reports a failed store operation and the entity it
// concerned.
type PersistenceError struct {
	Op  string
	ID  string
	Err error
}

func (e *PersistenceError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.ID, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func wrap(op, id string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, ID: id, Err: err}
}
