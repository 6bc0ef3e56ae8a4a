package application

import (
	"time"

	"github.com/example/appointment-scheduler/internal/persistence"
)

// Slot represents a recurring weekly availability window.
type Slot struct {
	ID        int64
	DayOfWeek int
	StartTime string
	EndTime   string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OccurrenceOverride represents a stored per-date exception to a recurring
// slot: either a time change or a cancellation of one occurrence.
type OccurrenceOverride struct {
	ID         int64
	ScheduleID int64
	Date       string
	Type       persistence.ExceptionType
	StartTime  *string
	EndTime    *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Occurrence is a recurring slot resolved onto one concrete calendar date,
// after exceptions have been applied.
type Occurrence struct {
	ID          int64
	StartTime   string
	EndTime     string
	IsException bool
	ScheduleID  int64
	ExceptionID *int64
}

// DaySchedule holds the resolved occurrences for a single calendar date.
type DaySchedule struct {
	Date  string
	Slots []Occurrence
}

// Week is the resolved view of seven consecutive days starting on a Sunday.
type Week struct {
	StartDate string
	EndDate   string
	Days      []DaySchedule
}

// CreateSlotParams wraps the data required to create a recurring slot.
type CreateSlotParams struct {
	DayOfWeek int
	StartTime string
	EndTime   string
}

// OccurrenceParams identifies a single occurrence and its replacement times.
type OccurrenceParams struct {
	ScheduleID int64
	Date       string
	StartTime  string
	EndTime    string
}

func toSlot(record persistence.RecurringSlot) Slot {
	return Slot{
		ID:        record.ID,
		DayOfWeek: record.DayOfWeek,
		StartTime: record.StartTime,
		EndTime:   record.EndTime,
		IsActive:  record.IsActive,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}

func toOverride(record persistence.Exception) OccurrenceOverride {
	return OccurrenceOverride{
		ID:         record.ID,
		ScheduleID: record.ScheduleID,
		Date:       record.ExceptionDate,
		Type:       record.Type,
		StartTime:  copyStringPtr(record.StartTime),
		EndTime:    copyStringPtr(record.EndTime),
		CreatedAt:  record.CreatedAt,
		UpdatedAt:  record.UpdatedAt,
	}
}

func copyStringPtr(src *string) *string {
	if src == nil {
		return nil
	}
	value := *src
	return &value
}
