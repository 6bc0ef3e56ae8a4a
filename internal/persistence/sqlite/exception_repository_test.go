package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/example/appointment-scheduler/internal/persistence"
)

func strPtr(value string) *string {
	return &value
}

func TestExceptionRepository_UpsertInsertsAndOverwrites(t *testing.T) {
	t.Parallel()

	pool := setupRepositoryTest(t)
	schedules := NewScheduleRepository(pool)
	exceptions := NewExceptionRepository(pool)
	ctx := context.Background()

	slot, err := schedules.CreateSlot(ctx, 1, "09:00", "11:00", 0)
	if err != nil {
		t.Fatalf("CreateSlot failed: %v", err)
	}

	created, err := exceptions.UpsertException(ctx, slot.ID, "2025-01-06", persistence.ExceptionModified, strPtr("09:30"), strPtr("10:30"))
	if err != nil {
		t.Fatalf("UpsertException failed: %v", err)
	}
	if created.Type != persistence.ExceptionModified {
		t.Errorf("expected modified exception, got %s", created.Type)
	}
	if created.StartTime == nil || *created.StartTime != "09:30" {
		t.Errorf("unexpected start time: %+v", created.StartTime)
	}

	// Overwriting the same occurrence replaces the row in place.
	updated, err := exceptions.UpsertException(ctx, slot.ID, "2025-01-06", persistence.ExceptionDeleted, nil, nil)
	if err != nil {
		t.Fatalf("UpsertException failed: %v", err)
	}
	if updated.ID != created.ID {
		t.Errorf("expected the existing row to be updated, got id %d vs %d", updated.ID, created.ID)
	}
	if updated.Type != persistence.ExceptionDeleted {
		t.Errorf("expected deleted exception, got %s", updated.Type)
	}
	if updated.StartTime != nil || updated.EndTime != nil {
		t.Errorf("expected cleared times on deletion, got %+v", updated)
	}

	all, err := exceptions.ListByScheduleID(ctx, slot.ID)
	if err != nil {
		t.Fatalf("ListByScheduleID failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected a single exception row, got %d", len(all))
	}
}

func TestExceptionRepository_UpsertRequiresExistingSchedule(t *testing.T) {
	t.Parallel()

	exceptions := NewExceptionRepository(setupRepositoryTest(t))
	ctx := context.Background()

	_, err := exceptions.UpsertException(ctx, 999, "2025-01-06", persistence.ExceptionDeleted, nil, nil)
	if !errors.Is(err, persistence.ErrForeignKeyViolation) {
		t.Errorf("expected ErrForeignKeyViolation, got %v", err)
	}

	_, err = exceptions.UpsertException(ctx, 0, "2025-01-06", persistence.ExceptionDeleted, nil, nil)
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Errorf("expected ErrNotFound for non-positive ID, got %v", err)
	}
}

func TestExceptionRepository_GetException(t *testing.T) {
	t.Parallel()

	pool := setupRepositoryTest(t)
	schedules := NewScheduleRepository(pool)
	exceptions := NewExceptionRepository(pool)
	ctx := context.Background()

	slot, err := schedules.CreateSlot(ctx, 1, "09:00", "11:00", 0)
	if err != nil {
		t.Fatalf("CreateSlot failed: %v", err)
	}

	if _, err := exceptions.GetException(ctx, slot.ID, "2025-01-06"); !errors.Is(err, persistence.ErrNotFound) {
		t.Errorf("expected ErrNotFound before any override, got %v", err)
	}

	if _, err := exceptions.UpsertException(ctx, slot.ID, "2025-01-06", persistence.ExceptionDeleted, nil, nil); err != nil {
		t.Fatalf("UpsertException failed: %v", err)
	}

	got, err := exceptions.GetException(ctx, slot.ID, "2025-01-06")
	if err != nil {
		t.Fatalf("GetException failed: %v", err)
	}
	if got.ScheduleID != slot.ID || got.ExceptionDate != "2025-01-06" {
		t.Errorf("unexpected exception: %+v", got)
	}
}

func TestExceptionRepository_ListInDateRangeIsInclusive(t *testing.T) {
	t.Parallel()

	pool := setupRepositoryTest(t)
	schedules := NewScheduleRepository(pool)
	exceptions := NewExceptionRepository(pool)
	ctx := context.Background()

	slot, err := schedules.CreateSlot(ctx, 1, "09:00", "11:00", 0)
	if err != nil {
		t.Fatalf("CreateSlot failed: %v", err)
	}

	for _, date := range []string{"2025-01-04", "2025-01-05", "2025-01-11", "2025-01-12"} {
		if _, err := exceptions.UpsertException(ctx, slot.ID, date, persistence.ExceptionDeleted, nil, nil); err != nil {
			t.Fatalf("UpsertException(%s) failed: %v", date, err)
		}
	}

	inRange, err := exceptions.ListInDateRange(ctx, "2025-01-05", "2025-01-11")
	if err != nil {
		t.Fatalf("ListInDateRange failed: %v", err)
	}
	if len(inRange) != 2 {
		t.Fatalf("expected 2 exceptions inside the week, got %d", len(inRange))
	}
	if inRange[0].ExceptionDate != "2025-01-05" || inRange[1].ExceptionDate != "2025-01-11" {
		t.Errorf("expected both boundary dates included in order, got %+v", inRange)
	}
}

func TestExceptionRepository_DeleteException(t *testing.T) {
	t.Parallel()

	pool := setupRepositoryTest(t)
	schedules := NewScheduleRepository(pool)
	exceptions := NewExceptionRepository(pool)
	ctx := context.Background()

	slot, err := schedules.CreateSlot(ctx, 1, "09:00", "11:00", 0)
	if err != nil {
		t.Fatalf("CreateSlot failed: %v", err)
	}
	if _, err := exceptions.UpsertException(ctx, slot.ID, "2025-01-06", persistence.ExceptionDeleted, nil, nil); err != nil {
		t.Fatalf("UpsertException failed: %v", err)
	}

	if err := exceptions.DeleteException(ctx, slot.ID, "2025-01-06"); err != nil {
		t.Fatalf("DeleteException failed: %v", err)
	}

	if err := exceptions.DeleteException(ctx, slot.ID, "2025-01-06"); !errors.Is(err, persistence.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing exception, got %v", err)
	}
}

func TestExceptionRepository_CheckTimeConflict(t *testing.T) {
	t.Parallel()

	pool := setupRepositoryTest(t)
	schedules := NewScheduleRepository(pool)
	exceptions := NewExceptionRepository(pool)
	ctx := context.Background()

	first, err := schedules.CreateSlot(ctx, 1, "09:00", "11:00", 0)
	if err != nil {
		t.Fatalf("CreateSlot failed: %v", err)
	}
	second, err := schedules.CreateSlot(ctx, 1, "13:00", "15:00", 0)
	if err != nil {
		t.Fatalf("CreateSlot failed: %v", err)
	}

	if _, err := exceptions.UpsertException(ctx, first.ID, "2025-01-06", persistence.ExceptionModified, strPtr("10:00"), strPtr("12:00")); err != nil {
		t.Fatalf("UpsertException failed: %v", err)
	}

	conflict, err := exceptions.CheckTimeConflict(ctx, "2025-01-06", "11:00", "13:00", second.ID)
	if err != nil {
		t.Fatalf("CheckTimeConflict failed: %v", err)
	}
	if !conflict {
		t.Error("expected conflict with the modified exception")
	}

	// The owning schedule's own exception is excluded from the check.
	conflict, err = exceptions.CheckTimeConflict(ctx, "2025-01-06", "11:00", "13:00", first.ID)
	if err != nil {
		t.Fatalf("CheckTimeConflict failed: %v", err)
	}
	if conflict {
		t.Error("expected the excluded schedule's exception to be ignored")
	}

	// Deleted exceptions never conflict.
	if _, err := exceptions.UpsertException(ctx, first.ID, "2025-01-06", persistence.ExceptionDeleted, nil, nil); err != nil {
		t.Fatalf("UpsertException failed: %v", err)
	}
	conflict, err = exceptions.CheckTimeConflict(ctx, "2025-01-06", "09:00", "17:00", second.ID)
	if err != nil {
		t.Fatalf("CheckTimeConflict failed: %v", err)
	}
	if conflict {
		t.Error("expected deleted exception not to conflict")
	}
}

func TestExceptionRepository_CascadeDeleteWithSchedule(t *testing.T) {
	t.Parallel()

	pool := setupRepositoryTest(t)
	schedules := NewScheduleRepository(pool)
	exceptions := NewExceptionRepository(pool)
	ctx := context.Background()

	slot, err := schedules.CreateSlot(ctx, 1, "09:00", "11:00", 0)
	if err != nil {
		t.Fatalf("CreateSlot failed: %v", err)
	}
	if _, err := exceptions.UpsertException(ctx, slot.ID, "2025-01-06", persistence.ExceptionDeleted, nil, nil); err != nil {
		t.Fatalf("UpsertException failed: %v", err)
	}

	if _, err := pool.DB().ExecContext(ctx, "DELETE FROM schedules WHERE id = ?", slot.ID); err != nil {
		t.Fatalf("failed to delete schedule row: %v", err)
	}

	remaining, err := exceptions.ListByScheduleID(ctx, slot.ID)
	if err != nil {
		t.Fatalf("ListByScheduleID failed: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("expected exceptions to cascade with the schedule row, got %+v", remaining)
	}
}
