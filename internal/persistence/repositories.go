package persistence

import "context"

// ScheduleRepository stores the weekly recurring slot patterns.
//
// CreateSlot is the only write that performs its own invariant checks: the
// overlap and per-day capacity rules are re-evaluated inside the insert
// transaction so that two concurrent creators cannot both pass a
// service-level pre-check and then both commit. Every other method trusts the
// caller to have validated inputs.
type ScheduleRepository interface {
	// CreateSlot inserts a new active slot, re-checking overlap and the
	// per-day cap transactionally. Returns ErrConflict when another active
	// slot on the same day overlaps, ErrCapacityExceeded when the day already
	// holds maxPerDay active slots.
	CreateSlot(ctx context.Context, dayOfWeek int, startTime, endTime string, maxPerDay int) (RecurringSlot, error)

	// ListActiveByDay returns active slots for a weekday ordered by StartTime.
	ListActiveByDay(ctx context.Context, dayOfWeek int) ([]RecurringSlot, error)

	// ListAllActive returns active slots ordered by (DayOfWeek, StartTime).
	ListAllActive(ctx context.Context) ([]RecurringSlot, error)

	// GetSlot returns a slot regardless of its active state.
	GetSlot(ctx context.Context, id int64) (RecurringSlot, error)

	// Deactivate sets IsActive to false. Deactivating an already-inactive
	// slot is a no-op at this layer; existence semantics belong to the
	// service. Returns ErrNotFound when no row exists at all.
	Deactivate(ctx context.Context, id int64) error

	// CheckOverlap reports whether any other active slot on the weekday
	// overlaps the half-open interval [startTime, endTime). excludeID is
	// ignored when zero.
	CheckOverlap(ctx context.Context, dayOfWeek int, startTime, endTime string, excludeID int64) (bool, error)

	// CountActiveByDay returns the number of active slots on the weekday.
	CountActiveByDay(ctx context.Context, dayOfWeek int) (int, error)
}

// ExceptionRepository stores date-specific overrides keyed by
// (schedule id, date).
type ExceptionRepository interface {
	// UpsertException inserts an exception or, when one already exists at
	// (scheduleID, date), overwrites its type and times in place. startTime
	// and endTime must be nil for ExceptionDeleted.
	UpsertException(ctx context.Context, scheduleID int64, date string, kind ExceptionType, startTime, endTime *string) (Exception, error)

	// GetException returns the exception at (scheduleID, date) or ErrNotFound.
	GetException(ctx context.Context, scheduleID int64, date string) (Exception, error)

	// ListInDateRange returns exceptions with startDate <= ExceptionDate <=
	// endDate, ordered by ExceptionDate ascending.
	ListInDateRange(ctx context.Context, startDate, endDate string) ([]Exception, error)

	// ListByScheduleID returns every exception referencing the slot, ordered
	// by ExceptionDate ascending.
	ListByScheduleID(ctx context.Context, scheduleID int64) ([]Exception, error)

	// DeleteException removes the row, reverting the date to its recurring
	// default. Returns ErrNotFound when no exception exists at the key.
	DeleteException(ctx context.Context, scheduleID int64, date string) error

	// CheckTimeConflict reports whether any other schedule's modified
	// exception on the exact date overlaps the half-open interval.
	// excludeScheduleID is ignored when zero.
	CheckTimeConflict(ctx context.Context, date, startTime, endTime string, excludeScheduleID int64) (bool, error)
}
