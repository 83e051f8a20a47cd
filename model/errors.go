package model

import (
	"errors"
	"fmt"

	"github.com/misteriaud/passeri/identifier"
)

// NotFoundError reports an operation on an identifier unknown to the registry
// or to the backend. Err carries the backend fault when the backend reported it.
type NotFoundError struct {
	Kind Kind
	ID   identifier.ID
	Err  error
}

func (e *NotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v %v not found: %v", e.Kind, e.ID, e.Err)
	}
	return fmt.Sprintf("%v %v not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// DuplicateIDError reports an insert colliding with an identifier already
// present under Existing (which may differ from Kind).
type DuplicateIDError struct {
	Kind     Kind
	ID       identifier.ID
	Existing Kind
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("cannot add %v %v: identifier already registered as %v", e.Kind, e.ID, e.Existing)
}

// BackendError reports a request the backend rejected or failed to answer.
// Code is the JSON-RPC error code, zero when no response arrived.
type BackendError struct {
	Method  string
	Code    int
	Message string
	Err     error
}

func (e *BackendError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("backend %v failed (%d): %v", e.Method, e.Code, e.Message)
	}
	return fmt.Sprintf("backend %v failed: %v", e.Method, e.Message)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// TransitionError reports an illegal state change.
type TransitionError struct {
	Kind Kind
	ID   identifier.ID
	From State
	To   State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%v %v cannot move from %v to %v", e.Kind, e.ID, e.From, e.To)
}

// ValidationError reports an invalid caller supplied field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %v: %v", e.Field, e.Reason)
}

// IsNotFound reports whether err is or wraps a *NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsBackend reports whether err is or wraps a *BackendError.
func IsBackend(err error) bool {
	var target *BackendError
	return errors.As(err, &target)
}
