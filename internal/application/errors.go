package application

import "errors"

// ErrNotFound is returned when the requested resource does not exist.
var ErrNotFound = errors.New("application: not found")

// Conflict reason codes surfaced alongside ConflictError so callers can tell
// what triggered the rejection.
const (
	ConflictSlotOverlap      = "slot_overlap"
	ConflictCapacityExceeded = "capacity_exceeded"
	ConflictExceptionOverlap = "exception_overlap"
	ConflictAlreadyDeleted   = "already_deleted"
)

// ConflictError is returned when an operation is rejected because it would
// violate a scheduling invariant. The caller must adjust the input; conflicts
// are never auto-resolved.
type ConflictError struct {
	Reason  string
	Message string
}

// Error implements the error interface.
func (c *ConflictError) Error() string {
	if c == nil {
		return ""
	}
	return c.Message
}

// ValidationError captures field level validation issues that callers can surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	return "validation failed"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}
