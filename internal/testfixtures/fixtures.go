package testfixtures

import (
	"context"
	"testing"
	"time"

	"github.com/example/appointment-scheduler/internal/persistence"
)

var referenceTime = time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
// 2025-01-06 is a Monday; the surrounding week runs 2025-01-05 (Sunday)
// through 2025-01-11 (Saturday).
func ReferenceTime() time.Time {
	return referenceTime
}

// SlotFixture describes a recurring slot to be materialised through the
// repository so that tests exercise the same write path as production code.
type SlotFixture struct {
	DayOfWeek int
	StartTime string
	EndTime   string
}

// SlotOption configures the generated slot fixture.
type SlotOption func(*SlotFixture)

// NewSlotFixture returns a Monday morning slot with optional overrides.
func NewSlotFixture(opts ...SlotOption) SlotFixture {
	fixture := SlotFixture{
		DayOfWeek: 1,
		StartTime: "09:00",
		EndTime:   "11:00",
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithSlotDay sets the weekday of the generated slot.
func WithSlotDay(day int) SlotOption {
	return func(f *SlotFixture) {
		f.DayOfWeek = day
	}
}

// WithSlotTimes sets the time range of the generated slot.
func WithSlotTimes(start, end string) SlotOption {
	return func(f *SlotFixture) {
		f.StartTime = start
		f.EndTime = end
	}
}

// CreateSlot materialises the fixture through the repository and fails the
// test on error.
func (f SlotFixture) CreateSlot(tb testing.TB, repo persistence.ScheduleRepository) persistence.RecurringSlot {
	tb.Helper()

	slot, err := repo.CreateSlot(context.Background(), f.DayOfWeek, f.StartTime, f.EndTime, 0)
	if err != nil {
		tb.Fatalf("failed to create slot fixture: %v", err)
	}
	return slot
}

// SeedDefaultSlots inserts the default weekly availability: Monday
// 09:00-11:00, Wednesday 14:00-16:00 and Friday 10:00-12:00.
func SeedDefaultSlots(tb testing.TB, repo persistence.ScheduleRepository) []persistence.RecurringSlot {
	tb.Helper()

	seeds := []SlotFixture{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "11:00"},
		{DayOfWeek: 3, StartTime: "14:00", EndTime: "16:00"},
		{DayOfWeek: 5, StartTime: "10:00", EndTime: "12:00"},
	}

	slots := make([]persistence.RecurringSlot, 0, len(seeds))
	for _, seed := range seeds {
		slots = append(slots, seed.CreateSlot(tb, repo))
	}
	return slots
}

// StringPtr returns a pointer to the given string, for optional time fields.
func StringPtr(value string) *string {
	return &value
}
