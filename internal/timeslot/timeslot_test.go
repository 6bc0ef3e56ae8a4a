package timeslot

import (
	"testing"
	"time"
)

func TestValidTime(t *testing.T) {
	t.Parallel()

	cases := []struct {
		value string
		want  bool
	}{
		{"00:00", true},
		{"09:30", true},
		{"23:59", true},
		{"24:00", false},
		{"9:00", false},
		{"09:60", false},
		{"0900", false},
		{"09:00:00", false},
		{"", false},
		{"ab:cd", false},
	}

	for _, tc := range cases {
		if got := ValidTime(tc.value); got != tc.want {
			t.Errorf("ValidTime(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestValidRange(t *testing.T) {
	t.Parallel()

	if !ValidRange("09:00", "11:00") {
		t.Error("expected 09:00-11:00 to be a valid range")
	}
	if ValidRange("11:00", "09:00") {
		t.Error("expected inverted range to be invalid")
	}
	if ValidRange("09:00", "09:00") {
		t.Error("expected zero-length range to be invalid")
	}
	if ValidRange("9:00", "11:00") {
		t.Error("expected unpadded start to be invalid")
	}
}

func TestOverlaps_Symmetry(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name           string
		s1, e1, s2, e2 string
		want           bool
	}{
		{"contained", "09:00", "12:00", "10:00", "11:00", true},
		{"partial", "09:00", "11:00", "10:00", "12:00", true},
		{"identical", "09:00", "11:00", "09:00", "11:00", true},
		{"disjoint", "09:00", "10:00", "11:00", "12:00", false},
		{"touching", "09:00", "10:00", "10:00", "11:00", false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Overlaps(tc.s1, tc.e1, tc.s2, tc.e2); got != tc.want {
				t.Errorf("Overlaps(%s-%s, %s-%s) = %v, want %v", tc.s1, tc.e1, tc.s2, tc.e2, got, tc.want)
			}
			if forward, backward := Overlaps(tc.s1, tc.e1, tc.s2, tc.e2), Overlaps(tc.s2, tc.e2, tc.s1, tc.e1); forward != backward {
				t.Errorf("Overlaps is not symmetric for %s-%s vs %s-%s", tc.s1, tc.e1, tc.s2, tc.e2)
			}
		})
	}
}

func TestValidDate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		value string
		want  bool
	}{
		{"2025-01-06", true},
		{"2024-02-29", true},
		{"2025-02-29", false},
		{"2025-13-01", false},
		{"2025-1-6", false},
		{"06-01-2025", false},
		{"not-a-date", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := ValidDate(tc.value); got != tc.want {
			t.Errorf("ValidDate(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestStartOfWeek(t *testing.T) {
	t.Parallel()

	sunday := time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		input time.Time
	}{
		{"sunday maps to itself", sunday},
		{"monday maps back one day", sunday.AddDate(0, 0, 1)},
		{"wednesday maps back three days", sunday.AddDate(0, 0, 3)},
		{"saturday maps back six days", sunday.AddDate(0, 0, 6)},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := StartOfWeek(tc.input); !got.Equal(sunday) {
				t.Errorf("StartOfWeek(%s) = %s, want %s", FormatDate(tc.input), FormatDate(got), FormatDate(sunday))
			}
		})
	}
}

func TestDayOfWeek(t *testing.T) {
	t.Parallel()

	// 2025-01-05 is a Sunday.
	base := time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		if got := DayOfWeek(base.AddDate(0, 0, i)); got != i {
			t.Errorf("DayOfWeek(+%d days) = %d, want %d", i, got, i)
		}
	}
}
