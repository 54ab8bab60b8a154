// Package shared contains common domain types, errors, and events
// that are used across all domain packages. This package has zero
// external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Entity errors
	ErrNotFound      = errors.New("entity not found")
	ErrAlreadyExists = errors.New("entity already exists")
	ErrInvalidEntity = errors.New("invalid entity")

	// Validation errors
	ErrValidation    = errors.New("validation error")
	ErrInvalidID     = errors.New("invalid ID")
	ErrInvalidInput  = errors.New("invalid input")
	ErrEmptyValue    = errors.New("value cannot be empty")
	ErrInvalidFormat = errors.New("invalid format")

	// Access policy errors
	ErrPolicyDenied = errors.New("denied by access policy")
	ErrUnauthorized = errors.New("unauthorized")

	// State errors
	ErrInvalidState    = errors.New("invalid state")
	ErrStateTransition = errors.New("invalid state transition")

	// Persistence errors
	ErrSnapshotLoad = errors.New("snapshot load failed")
	ErrSnapshotSave = errors.New("snapshot save failed")

	// External service errors
	ErrExternalService    = errors.New("external service error")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrTimeout            = errors.New("operation timeout")
	ErrSuperseded         = errors.New("superseded by a newer request")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "student", "attendance", "access"
	Op      string // Operation that failed, e.g., "AddStudent", "SetStatus"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Student domain errors
var (
	ErrStudentNotFound  = NewDomainError("student", "Find", ErrNotFound, "student not found")
	ErrDuplicateStudent = NewDomainError("student", "Add", ErrAlreadyExists, "student with this name already registered")
	ErrEmptyStudentName = NewDomainError("student", "Validate", ErrEmptyValue, "student name cannot be empty")
)

// Attendance domain errors
var (
	ErrRecordNotFound = NewDomainError("attendance", "Find", ErrNotFound, "attendance record not found")
	ErrInvalidStatus  = NewDomainError("attendance", "Validate", ErrInvalidInput, "invalid attendance status")
	ErrInvalidSlot    = NewDomainError("attendance", "Validate", ErrInvalidInput, "invalid schedule slot")
	ErrInvalidDate    = NewDomainError("attendance", "Validate", ErrInvalidFormat, "invalid record date")
)

// Access policy errors
var (
	ErrMonthReadOnly   = NewDomainError("access", "Decide", ErrPolicyDenied, "past months are read-only")
	ErrWrongWeekday    = NewDomainError("access", "Decide", ErrPolicyDenied, "slot is not scheduled on this weekday")
	ErrViewReadOnly    = NewDomainError("access", "Decide", ErrPolicyDenied, "view does not permit mutation")
	ErrWrongPassphrase = NewDomainError("access", "Verify", ErrUnauthorized, "passphrase does not match")
)

// Profile errors
var (
	ErrIncompleteProfile = NewDomainError("profile", "Save", ErrEmptyValue, "supervisor name and mosque are required")
	ErrInvalidTitle      = NewDomainError("profile", "Validate", ErrInvalidInput, "invalid supervisor title")
)

// External service errors
var (
	ErrInsightUnavailable = NewDomainError("insight", "Generate", ErrServiceUnavailable, "insight API is unavailable")
	ErrInsightTimeout     = NewDomainError("insight", "Generate", ErrTimeout, "insight API request timeout")
	ErrInsightBadResponse = NewDomainError("insight", "Parse", ErrInvalidFormat, "invalid response from insight API")
)

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if the error is an "already exists" error.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrEmptyValue) ||
		errors.Is(err, ErrInvalidFormat)
}

// IsPolicyDenied checks if the error is an access-policy denial.
func IsPolicyDenied(err error) bool {
	return errors.Is(err, ErrPolicyDenied)
}

// IsExternalService checks if the error is from an external service.
func IsExternalService(err error) bool {
	return errors.Is(err, ErrExternalService) ||
		errors.Is(err, ErrServiceUnavailable) ||
		errors.Is(err, ErrTimeout)
}
