package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/example/appointment-scheduler/internal/persistence"
	"github.com/example/appointment-scheduler/internal/timeslot"
)

// DefaultMaxSlotsPerDay is the business cap on active recurring slots per
// day-of-week.
const DefaultMaxSlotsPerDay = 2

// ScheduleService resolves recurring slots against per-date exceptions and
// orchestrates validation for all write operations.
type ScheduleService struct {
	schedules  persistence.ScheduleRepository
	exceptions persistence.ExceptionRepository
	maxPerDay  int
	now        func() time.Time
	logger     *slog.Logger
}

// NewScheduleService wires dependencies for slot and occurrence operations.
// When maxPerDay is not positive the default cap of 2 is applied.
func NewScheduleService(schedules persistence.ScheduleRepository, exceptions persistence.ExceptionRepository, maxPerDay int, now func() time.Time, logger *slog.Logger) *ScheduleService {
	if maxPerDay <= 0 {
		maxPerDay = DefaultMaxSlotsPerDay
	}
	if now == nil {
		now = time.Now
	}
	return &ScheduleService{
		schedules:  schedules,
		exceptions: exceptions,
		maxPerDay:  maxPerDay,
		now:        now,
		logger:     defaultLogger(logger),
	}
}

// ResolveWeek returns the seven days of the week containing date, each with
// its recurring slots resolved against stored exceptions. The week anchor is
// the most recent Sunday on or before the supplied date. An empty date
// resolves the current week.
func (s *ScheduleService) ResolveWeek(ctx context.Context, date string) (Week, error) {
	if s == nil {
		return Week{}, fmt.Errorf("ScheduleService is nil")
	}

	var parsed time.Time
	if date == "" {
		parsed = s.now()
	} else {
		var err error
		parsed, err = timeslot.ParseDate(date)
		if err != nil {
			vErr := &ValidationError{}
			vErr.add("date", "must be a valid YYYY-MM-DD date")
			return Week{}, vErr
		}
	}

	weekStart := timeslot.StartOfWeek(parsed)
	week := Week{
		StartDate: timeslot.FormatDate(weekStart),
		EndDate:   timeslot.FormatDate(weekStart.AddDate(0, 0, 6)),
		Days:      make([]DaySchedule, 0, 7),
	}

	for i := 0; i < 7; i++ {
		current := weekStart.AddDate(0, 0, i)
		day, err := s.resolveDay(ctx, current)
		if err != nil {
			return Week{}, err
		}
		week.Days = append(week.Days, day)
	}

	return week, nil
}

func (s *ScheduleService) resolveDay(ctx context.Context, date time.Time) (DaySchedule, error) {
	dateStr := timeslot.FormatDate(date)

	slots, err := s.schedules.ListActiveByDay(ctx, timeslot.DayOfWeek(date))
	if err != nil {
		return DaySchedule{}, mapRepoError(err)
	}

	// Equal bounds narrow the range query to the single date.
	overrides, err := s.exceptions.ListInDateRange(ctx, dateStr, dateStr)
	if err != nil {
		return DaySchedule{}, mapRepoError(err)
	}

	byScheduleID := make(map[int64]persistence.Exception, len(overrides))
	for _, override := range overrides {
		byScheduleID[override.ScheduleID] = override
	}

	day := DaySchedule{Date: dateStr, Slots: make([]Occurrence, 0, len(slots))}
	for _, slot := range slots {
		override, ok := byScheduleID[slot.ID]
		if !ok {
			day.Slots = append(day.Slots, Occurrence{
				ID:         slot.ID,
				StartTime:  slot.StartTime,
				EndTime:    slot.EndTime,
				ScheduleID: slot.ID,
			})
			continue
		}

		switch override.Type {
		case persistence.ExceptionDeleted:
			// Cancelled for this date only.
		case persistence.ExceptionModified:
			if override.StartTime == nil || override.EndTime == nil {
				return DaySchedule{}, fmt.Errorf("modified exception %d is missing times", override.ID)
			}
			exceptionID := override.ID
			day.Slots = append(day.Slots, Occurrence{
				ID:          slot.ID,
				StartTime:   *override.StartTime,
				EndTime:     *override.EndTime,
				IsException: true,
				ScheduleID:  slot.ID,
				ExceptionID: &exceptionID,
			})
		default:
			return DaySchedule{}, fmt.Errorf("unknown exception type %q", override.Type)
		}
	}

	// Modified times may break the slot ordering inherited from storage.
	sort.SliceStable(day.Slots, func(i, j int) bool {
		return day.Slots[i].StartTime < day.Slots[j].StartTime
	})

	return day, nil
}

// CreateSlot validates and creates a new recurring weekly slot.
func (s *ScheduleService) CreateSlot(ctx context.Context, params CreateSlotParams) (Slot, error) {
	if s == nil {
		return Slot{}, fmt.Errorf("ScheduleService is nil")
	}

	logger := serviceLogger(ctx, s.logger, "schedule", "create_slot",
		slog.Int("day_of_week", params.DayOfWeek))

	vErr := &ValidationError{}
	if !timeslot.ValidDayOfWeek(params.DayOfWeek) {
		vErr.add("day_of_week", "must be between 0 (Sunday) and 6 (Saturday)")
	}
	validateTimeRange(params.StartTime, params.EndTime, vErr)
	if vErr.HasErrors() {
		return Slot{}, vErr
	}

	// Pre-checks give precise reasons; the repository re-checks inside the
	// insert transaction so concurrent creators cannot both commit.
	overlaps, err := s.schedules.CheckOverlap(ctx, params.DayOfWeek, params.StartTime, params.EndTime, 0)
	if err != nil {
		return Slot{}, mapRepoError(err)
	}
	if overlaps {
		return Slot{}, &ConflictError{
			Reason:  ConflictSlotOverlap,
			Message: "time slot overlaps an existing slot on this day",
		}
	}

	active, err := s.schedules.CountActiveByDay(ctx, params.DayOfWeek)
	if err != nil {
		return Slot{}, mapRepoError(err)
	}
	if active >= s.maxPerDay {
		return Slot{}, &ConflictError{
			Reason:  ConflictCapacityExceeded,
			Message: fmt.Sprintf("day already has the maximum of %d active slots", s.maxPerDay),
		}
	}

	created, err := s.schedules.CreateSlot(ctx, params.DayOfWeek, params.StartTime, params.EndTime, s.maxPerDay)
	if err != nil {
		return Slot{}, mapRepoError(err)
	}

	logger.InfoContext(ctx, "recurring slot created", slog.Int64("schedule_id", created.ID))
	return toSlot(created), nil
}

// ModifyOccurrence overrides a single occurrence of a recurring slot with new
// times, creating or replacing the exception stored for that date. A
// previously deleted occurrence is revived by modifying it.
func (s *ScheduleService) ModifyOccurrence(ctx context.Context, params OccurrenceParams) (OccurrenceOverride, error) {
	if s == nil {
		return OccurrenceOverride{}, fmt.Errorf("ScheduleService is nil")
	}

	logger := serviceLogger(ctx, s.logger, "schedule", "modify_occurrence",
		slog.Int64("schedule_id", params.ScheduleID), slog.String("date", params.Date))

	if err := s.ensureOccurrenceExists(ctx, params.ScheduleID, params.Date); err != nil {
		return OccurrenceOverride{}, err
	}

	vErr := &ValidationError{}
	validateTimeRange(params.StartTime, params.EndTime, vErr)
	if vErr.HasErrors() {
		return OccurrenceOverride{}, vErr
	}

	conflict, err := s.exceptions.CheckTimeConflict(ctx, params.Date, params.StartTime, params.EndTime, params.ScheduleID)
	if err != nil {
		return OccurrenceOverride{}, mapRepoError(err)
	}
	if conflict {
		return OccurrenceOverride{}, &ConflictError{
			Reason:  ConflictExceptionOverlap,
			Message: "time conflicts with another modified occurrence on this date",
		}
	}

	stored, err := s.exceptions.UpsertException(ctx, params.ScheduleID, params.Date,
		persistence.ExceptionModified, &params.StartTime, &params.EndTime)
	if err != nil {
		return OccurrenceOverride{}, mapRepoError(err)
	}

	logger.InfoContext(ctx, "occurrence modified", slog.Int64("exception_id", stored.ID))
	return toOverride(stored), nil
}

// ClearOccurrence cancels a single occurrence of a recurring slot by storing
// a deletion exception for that date. Clearing an occurrence that is already
// deleted is rejected with a conflict.
func (s *ScheduleService) ClearOccurrence(ctx context.Context, scheduleID int64, date string) (OccurrenceOverride, error) {
	if s == nil {
		return OccurrenceOverride{}, fmt.Errorf("ScheduleService is nil")
	}

	logger := serviceLogger(ctx, s.logger, "schedule", "clear_occurrence",
		slog.Int64("schedule_id", scheduleID), slog.String("date", date))

	if err := s.ensureOccurrenceExists(ctx, scheduleID, date); err != nil {
		return OccurrenceOverride{}, err
	}

	existing, err := s.exceptions.GetException(ctx, scheduleID, date)
	switch {
	case err == nil:
		if existing.Type == persistence.ExceptionDeleted {
			return OccurrenceOverride{}, &ConflictError{
				Reason:  ConflictAlreadyDeleted,
				Message: "occurrence is already deleted for this date",
			}
		}
	case errors.Is(err, persistence.ErrNotFound):
		// No override yet; the deletion below creates one.
	default:
		return OccurrenceOverride{}, mapRepoError(err)
	}

	stored, err := s.exceptions.UpsertException(ctx, scheduleID, date,
		persistence.ExceptionDeleted, nil, nil)
	if err != nil {
		return OccurrenceOverride{}, mapRepoError(err)
	}

	logger.InfoContext(ctx, "occurrence cleared", slog.Int64("exception_id", stored.ID))
	return toOverride(stored), nil
}

// DeleteSlot deactivates a recurring slot. Its exception rows are left in
// place but become unreachable through week resolution.
func (s *ScheduleService) DeleteSlot(ctx context.Context, scheduleID int64) error {
	if s == nil {
		return fmt.Errorf("ScheduleService is nil")
	}

	logger := serviceLogger(ctx, s.logger, "schedule", "delete_slot",
		slog.Int64("schedule_id", scheduleID))

	if _, err := s.schedules.GetSlot(ctx, scheduleID); err != nil {
		return mapRepoError(err)
	}

	if err := s.schedules.Deactivate(ctx, scheduleID); err != nil {
		return mapRepoError(err)
	}

	logger.InfoContext(ctx, "recurring slot deactivated")
	return nil
}

// ListSlots returns every active recurring slot ordered by weekday and start
// time.
func (s *ScheduleService) ListSlots(ctx context.Context) ([]Slot, error) {
	if s == nil {
		return nil, fmt.Errorf("ScheduleService is nil")
	}

	records, err := s.schedules.ListAllActive(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}

	slots := make([]Slot, 0, len(records))
	for _, record := range records {
		slots = append(slots, toSlot(record))
	}
	return slots, nil
}

// ListExceptions returns every stored override for the given slot, including
// overrides of a deactivated slot.
func (s *ScheduleService) ListExceptions(ctx context.Context, scheduleID int64) ([]OccurrenceOverride, error) {
	if s == nil {
		return nil, fmt.Errorf("ScheduleService is nil")
	}

	if _, err := s.schedules.GetSlot(ctx, scheduleID); err != nil {
		return nil, mapRepoError(err)
	}

	records, err := s.exceptions.ListByScheduleID(ctx, scheduleID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	overrides := make([]OccurrenceOverride, 0, len(records))
	for _, record := range records {
		overrides = append(overrides, toOverride(record))
	}
	return overrides, nil
}

// ensureOccurrenceExists verifies the per-date operation targets a real slot
// and a real calendar date. Existence, not activeness, is required: an
// exception may still target a slot whose recurring pattern was deactivated.
func (s *ScheduleService) ensureOccurrenceExists(ctx context.Context, scheduleID int64, date string) error {
	if !timeslot.ValidDate(date) {
		return ErrNotFound
	}
	if _, err := s.schedules.GetSlot(ctx, scheduleID); err != nil {
		return mapRepoError(err)
	}
	return nil
}

func validateTimeRange(start, end string, vErr *ValidationError) {
	if !timeslot.ValidTime(start) {
		vErr.add("start_time", "must be a 24-hour HH:MM time")
	}
	if !timeslot.ValidTime(end) {
		vErr.add("end_time", "must be a 24-hour HH:MM time")
	}
	if vErr.HasErrors() {
		return
	}
	if start >= end {
		vErr.add("time", "start time must be before end time")
	}
}

func mapRepoError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, persistence.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, persistence.ErrConflict):
		return &ConflictError{
			Reason:  ConflictSlotOverlap,
			Message: "time slot overlaps an existing slot on this day",
		}
	case errors.Is(err, persistence.ErrCapacityExceeded):
		return &ConflictError{
			Reason:  ConflictCapacityExceeded,
			Message: "day already has the maximum number of active slots",
		}
	case errors.Is(err, persistence.ErrForeignKeyViolation):
		return ErrNotFound
	}
	return err
}
