package persistence

import "time"

// RecurringSlot represents a weekly-repeating time slot stored in persistence.
//
// Slots are never removed once created: deleting a slot flips IsActive so that
// historical exceptions keep a valid anchor and past week views remain
// reconstructible. Time values are zero-padded HH:MM wall-clock strings.
type RecurringSlot struct {
	ID        int64
	DayOfWeek int
	StartTime string
	EndTime   string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ExceptionType distinguishes the two kinds of per-date overrides.
type ExceptionType string

const (
	// ExceptionModified replaces the slot's times on one date.
	ExceptionModified ExceptionType = "modified"
	// ExceptionDeleted removes the slot's occurrence on one date.
	ExceptionDeleted ExceptionType = "deleted"
)

// Exception represents a date-specific override of a recurring slot.
//
// At most one exception exists per (ScheduleID, ExceptionDate) pair; the
// schema enforces this with a unique index. StartTime and EndTime are nil
// whenever Type is ExceptionDeleted.
type Exception struct {
	ID            int64
	ScheduleID    int64
	ExceptionDate string
	Type          ExceptionType
	StartTime     *string
	EndTime       *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
