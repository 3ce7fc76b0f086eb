// Package common defines the error taxonomy shared by the portfolio client
// and the project backend. Callers should match with errors.Is / errors.As.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorInternal = errors.New("internal error")

	// Form and store validation.
	ErrValidation   = errors.New("validation error")
	ErrUnknownField = errors.New("unknown form field")
	ErrFieldType    = errors.New("unsupported field value")
	ErrFormClosed   = errors.New("form is closed")

	// Loading.
	ErrLoad           = errors.New("load failed")
	ErrLoadSuperseded = errors.New("load superseded")
	ErrLoading        = errors.New("projects are still loading")

	// Profile gate: raised while no owner profile is available.
	ErrNoProfile = errors.New("owner profile is not available")
)

// ValidationError reports a required field that was missing at submission.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError reports an update or lookup against an id the store no longer holds.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("project %q not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrorNotFound
}

// LoadError wraps a failed fetch of an owner's initial collection.
type LoadError struct {
	OwnerID string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load projects for owner %q: %v", e.OwnerID, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}
