package vdom

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidNodeOperation is reported when the backend rejects an
	// operation. The patch batch is aborted at the failing patch.
	ErrInvalidNodeOperation = errors.New("vdom: invalid node operation")

	// ErrContainerNotFound is reported when a mount point does not exist.
	ErrContainerNotFound = errors.New("vdom: container not found")

	// ErrHandlerNotFound is reported when an event is dispatched to an
	// element with no handler for that event type.
	ErrHandlerNotFound = errors.New("vdom: handler not found")
)

// OpError describes a failed backend operation. It matches both
// ErrInvalidNodeOperation and the backend's error with errors.Is.
type OpError struct {
	Op  string // Backend method
	ID  uint64 // VElement the operation was applied to, 0 if none
	Err error
}

// Error implements the error interface.
func (e *OpError) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("vdom: %s on element %d: %v", e.Op, e.ID, e.Err)
	}
	return fmt.Sprintf("vdom: %s: %v", e.Op, e.Err)
}

// Unwrap returns ErrInvalidNodeOperation and the backend error.
func (e *OpError) Unwrap() []error {
	return []error{ErrInvalidNodeOperation, e.Err}
}

func opError(op string, id uint64, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, ID: id, Err: err}
}
