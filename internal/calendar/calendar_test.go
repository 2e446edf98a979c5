package calendar

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekdayIndex(t *testing.T) {
	tests := []struct {
		name string
		day  time.Time
		want int
	}{
		{"monday is 0", date(2026, time.August, 24), 0},
		{"tuesday is 1", date(2026, time.August, 25), 1},
		{"saturday is 5", date(2026, time.August, 29), 5},
		{"sunday is 6", date(2026, time.August, 30), 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekdayIndex(tt.day); got != tt.want {
				t.Errorf("WeekdayIndex(%v) = %d, want %d", tt.day, got, tt.want)
			}
		})
	}
}

func TestStartOfWeek(t *testing.T) {
	monday := date(2026, time.August, 24)

	tests := []struct {
		name string
		day  time.Time
		want time.Time
	}{
		{"monday maps to itself", monday, monday},
		{"wednesday maps back to monday", date(2026, time.August, 26), monday},
		{"sunday maps back to monday", date(2026, time.August, 30), monday},
		{"next monday starts a new week", date(2026, time.August, 31), date(2026, time.August, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StartOfWeek(tt.day); !got.Equal(tt.want) {
				t.Errorf("StartOfWeek(%v) = %v, want %v", tt.day, got, tt.want)
			}
		})
	}
}

func TestStartOfWeekClearsTime(t *testing.T) {
	late := time.Date(2026, time.August, 30, 23, 45, 12, 0, time.UTC)
	got := StartOfWeek(late)
	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 {
		t.Errorf("StartOfWeek did not normalize to midnight: %v", got)
	}
	if !got.Equal(date(2026, time.August, 24)) {
		t.Errorf("StartOfWeek(%v) = %v, want 2026-08-24", late, got)
	}
}

func TestDayStringRoundTrip(t *testing.T) {
	day := date(2026, time.February, 1)
	s := DayString(day)
	if s != "2026-02-01" {
		t.Fatalf("DayString = %q, want 2026-02-01", s)
	}
	parsed, err := ParseDay(s, time.UTC)
	if err != nil {
		t.Fatalf("ParseDay(%q) error: %v", s, err)
	}
	if !parsed.Equal(day) {
		t.Errorf("round trip changed the day: %v != %v", parsed, day)
	}
}

func TestParseDayRejectsGarbage(t *testing.T) {
	for _, bad := range []string{"2026-13-01", "not-a-date", "2026/01/01", ""} {
		if _, err := ParseDay(bad, time.UTC); err == nil {
			t.Errorf("ParseDay(%q) did not fail", bad)
		}
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, time.March, 5, 1, 0, 0, 0, time.UTC)
	b := time.Date(2026, time.March, 5, 23, 59, 0, 0, time.UTC)
	c := time.Date(2026, time.March, 6, 0, 0, 0, 0, time.UTC)

	if !SameDay(a, b) {
		t.Error("expected same day for two instants on March 5")
	}
	if SameDay(b, c) {
		t.Error("23:59 and next midnight must not be the same day")
	}
}

func TestFixedClock(t *testing.T) {
	instant := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)
	clock := FixedClock{Time: instant}
	if !clock.Now().Equal(instant) {
		t.Errorf("FixedClock.Now() = %v, want %v", clock.Now(), instant)
	}
}

func TestValidateTimezone(t *testing.T) {
	tests := []struct {
		tz   string
		want bool
	}{
		{"Local", true},
		{"", true},
		{"UTC", true},
		{"Europe/Berlin", true},
		{"Not/AZone", false},
	}

	for _, tt := range tests {
		if got := ValidateTimezone(tt.tz); got != tt.want {
			t.Errorf("ValidateTimezone(%q) = %v, want %v", tt.tz, got, tt.want)
		}
	}
}

func TestMinMaxDay(t *testing.T) {
	early := date(2026, time.January, 1)
	late := date(2026, time.December, 31)

	if got := MinDay(early, late); !got.Equal(early) {
		t.Errorf("MinDay = %v, want %v", got, early)
	}
	if got := MaxDay(early, late); !got.Equal(late) {
		t.Errorf("MaxDay = %v, want %v", got, late)
	}
}
