package domain

import (
	"errors"
	"fmt"
)

// Common domain errors that can occur during evaluation operations.
var (
	// ErrNotEvaluated indicates that a factor's explanation or score was
	// requested before Evaluate was called. This is a programmer-usage
	// error, fatal to the call and never retried.
	ErrNotEvaluated = errors.New("factor has not been evaluated yet")

	// ErrUnknownFramework indicates that a requested regulatory framework
	// is not registered.
	ErrUnknownFramework = errors.New("unknown regulatory framework")

	// ErrDuplicateFramework indicates an attempt to register a framework
	// under a name that is already taken.
	ErrDuplicateFramework = errors.New("framework already registered")

	// ErrUnknownApplication indicates that a requested loan application
	// does not exist in the dataset.
	ErrUnknownApplication = errors.New("application not found")

	// ErrUnknownDecision indicates that a requested decision does not
	// exist in the store.
	ErrUnknownDecision = errors.New("decision not found")

	// ErrInvalidConfiguration indicates that configuration is invalid or
	// incomplete.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// FrameworkError represents an error that occurred during a framework
// operation. It provides context about which framework and operation
// caused the error.
type FrameworkError struct {
	// Framework is the framework name involved in the failed operation.
	Framework string

	// Operation describes what was being performed when the error occurred.
	Operation string

	// Err is the underlying error that caused the operation to fail.
	Err error
}

// Error implements the error interface for FrameworkError.
func (e *FrameworkError) Error() string {
	return fmt.Sprintf("framework error: operation=%s, framework=%s, err=%v", e.Operation, e.Framework, e.Err)
}

// Unwrap returns the underlying error, supporting errors.Is and errors.As.
func (e *FrameworkError) Unwrap() error { return e.Err }

// NewFrameworkError creates a new FrameworkError with the given details.
func NewFrameworkError(framework, operation string, err error) *FrameworkError {
	return &FrameworkError{
		Framework: framework,
		Operation: operation,
		Err:       err,
	}
}

// ValidationError represents an error that occurred during validation.
// It can contain multiple validation failures.
type ValidationError struct {
	// Entity is the name of the entity that failed validation.
	Entity string

	// Errors contains the list of validation error messages.
	Errors []string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation error for %s: %s", e.Entity, e.Errors[0])
	}
	return fmt.Sprintf("validation errors for %s: %v", e.Entity, e.Errors)
}

// AddError adds a new error message to the validation error.
func (e *ValidationError) AddError(msg string) { e.Errors = append(e.Errors, msg) }

// HasErrors returns true if there are any validation errors.
func (e *ValidationError) HasErrors() bool { return len(e.Errors) > 0 }

// NewValidationError creates a new ValidationError for the given entity.
func NewValidationError(entity string) *ValidationError {
	return &ValidationError{
		Entity: entity,
		Errors: make([]string, 0),
	}
}
