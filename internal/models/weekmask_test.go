package models

import (
	"testing"
	"time"
)

func TestMaskForDateOneBitPerDate(t *testing.T) {
	// Every date maps to exactly one weekday bit, across DST edges and a
	// leap day.
	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 400; i++ {
		d := start.AddDate(0, 0, i)
		mask := MaskForDate(d)
		if mask.Count() != 1 {
			t.Fatalf("MaskForDate(%v) has %d bits set, want 1", d, mask.Count())
		}
		if !EveryDay.Contains(mask) {
			t.Fatalf("MaskForDate(%v) = %08b is outside the 7-day range", d, mask)
		}
	}
}

func TestMaskForDateMondayFirst(t *testing.T) {
	monday := time.Date(2026, time.August, 24, 0, 0, 0, 0, time.UTC)
	if MaskForDate(monday) != Monday {
		t.Errorf("2026-08-24 is a Monday, got mask %08b", MaskForDate(monday))
	}
	sunday := monday.AddDate(0, 0, 6)
	if MaskForDate(sunday) != Sunday {
		t.Errorf("2026-08-30 is a Sunday, got mask %08b", MaskForDate(sunday))
	}
}

func TestWeekdayMaskSetOps(t *testing.T) {
	mwf := Monday | Wednesday | Friday

	if !mwf.Intersects(Wednesday) {
		t.Error("mon|wed|fri should intersect wed")
	}
	if mwf.Intersects(Tuesday | Thursday) {
		t.Error("mon|wed|fri should not intersect tue|thu")
	}
	if !mwf.Contains(Monday | Friday) {
		t.Error("mon|wed|fri should contain mon|fri")
	}
	if mwf.Contains(Monday | Tuesday) {
		t.Error("mon|wed|fri should not contain mon|tue")
	}
	if got := mwf.Union(Tuesday); got.Count() != 4 {
		t.Errorf("union has %d days, want 4", got.Count())
	}
	if !WeekdayMask(0).IsEmpty() {
		t.Error("zero mask should be empty")
	}
	if EveryDay.Count() != 7 {
		t.Errorf("EveryDay.Count() = %d, want 7", EveryDay.Count())
	}
	if Weekdays.Count() != 5 {
		t.Errorf("Weekdays.Count() = %d, want 5", Weekdays.Count())
	}
}

func TestWeekdayMaskString(t *testing.T) {
	tests := []struct {
		name string
		mask WeekdayMask
		want string
	}{
		{"empty", 0, "none"},
		{"every day", EveryDay, "every day"},
		{"mon wed fri ordered", Friday | Monday | Wednesday, "mon,wed,fri"},
		{"single day", Saturday, "sat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mask.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseWeekdayMask(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    WeekdayMask
		wantErr bool
	}{
		{"short names", "mon,wed,fri", Monday | Wednesday | Friday, false},
		{"long names", "monday,sunday", Monday | Sunday, false},
		{"mixed case and spaces", " Tue , THU ", Tuesday | Thursday, false},
		{"duplicates collapse", "sat,sat", Saturday, false},
		{"empty string", "", 0, false},
		{"unknown day", "mon,funday", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWeekdayMask(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseWeekdayMask(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseWeekdayMask(%q) = %08b, want %08b", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseWeekdayMaskRoundTrip(t *testing.T) {
	for _, s := range []string{"mon", "mon,wed,fri", "tue,thu,sat,sun"} {
		mask, err := ParseWeekdayMask(s)
		if err != nil {
			t.Fatalf("ParseWeekdayMask(%q) error: %v", s, err)
		}
		if got := mask.String(); got != s {
			t.Errorf("round trip %q -> %q", s, got)
		}
	}
}
