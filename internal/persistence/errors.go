package persistence

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("persistence: not found")
	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("persistence: duplicate record")
	// ErrConflict is returned when a transactional re-check finds an
	// overlapping slot that the caller's pre-check missed.
	ErrConflict = errors.New("persistence: conflicting record")
	// ErrCapacityExceeded is returned when the per-day slot cap is reached.
	ErrCapacityExceeded = errors.New("persistence: capacity exceeded")
	// ErrConstraintViolation is returned when a CHECK constraint rejects a write.
	ErrConstraintViolation = errors.New("persistence: constraint violation")
	// ErrForeignKeyViolation is returned when a referenced row is missing.
	ErrForeignKeyViolation = errors.New("persistence: foreign key violation")
)
