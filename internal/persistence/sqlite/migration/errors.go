package migration

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMigrationFile indicates a file that does not follow the
	// NNN_name.sql naming convention or cannot be read.
	ErrInvalidMigrationFile = errors.New("migration: invalid migration file")

	// ErrDuplicateVersion indicates two migration files claiming the same
	// version number.
	ErrDuplicateVersion = errors.New("migration: duplicate version")

	// ErrChecksumMismatch indicates an applied migration whose embedded
	// content no longer matches what was recorded at apply time.
	ErrChecksumMismatch = errors.New("migration: checksum mismatch")

	// ErrMigrationFailed indicates a migration whose statements could not
	// be executed.
	ErrMigrationFailed = errors.New("migration: execution failed")
)

// Error wraps a migration failure with the version and operation that
// produced it.
type Error struct {
	Version   int
	Operation string
	Err       error
}

func (e *Error) Error() string {
	if e.Version > 0 {
		return fmt.Sprintf("migration %03d: %s: %v", e.Version, e.Operation, e.Err)
	}
	return fmt.Sprintf("migration: %s: %v", e.Operation, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
