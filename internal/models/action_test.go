package models

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestScheduleScheduledOn(t *testing.T) {
	monday := day(2026, time.August, 24)
	tuesday := monday.AddDate(0, 0, 1)

	tests := []struct {
		name  string
		sched Schedule
		date  time.Time
		want  bool
	}{
		{"weekly count occupies any day", WeeklyCount{Target: 3}, tuesday, true},
		{"repeat on its weekday", WeekdayRepeat{Days: Monday | Friday}, monday, true},
		{"repeat off its weekday", WeekdayRepeat{Days: Monday | Friday}, tuesday, false},
		{"time target on its weekday", TimeTarget{Days: Tuesday, DailyMinutes: 30}, tuesday, true},
		{"time target off its weekday", TimeTarget{Days: Tuesday, DailyMinutes: 30}, monday, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sched.ScheduledOn(tt.date); got != tt.want {
				t.Errorf("ScheduledOn(%v) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

func TestActionActiveOn(t *testing.T) {
	base := RoutineAction{
		Name:     "read",
		Schedule: WeekdayRepeat{Days: EveryDay},
		Enabled:  true,
	}

	tests := []struct {
		name   string
		modify func(*RoutineAction)
		date   time.Time
		want   bool
	}{
		{"unbounded window", func(a *RoutineAction) {}, day(2026, time.May, 10), true},
		{"disabled action", func(a *RoutineAction) { a.Enabled = false }, day(2026, time.May, 10), false},
		{"on activeFrom day", func(a *RoutineAction) { a.ActiveFrom = "2026-05-10" }, day(2026, time.May, 10), true},
		{"before activeFrom", func(a *RoutineAction) { a.ActiveFrom = "2026-05-10" }, day(2026, time.May, 9), false},
		{"on activeUntil day", func(a *RoutineAction) { a.ActiveUntil = "2026-05-10" }, day(2026, time.May, 10), true},
		{"after activeUntil", func(a *RoutineAction) { a.ActiveUntil = "2026-05-10" }, day(2026, time.May, 11), false},
		{
			"inside both bounds",
			func(a *RoutineAction) { a.ActiveFrom = "2026-05-01"; a.ActiveUntil = "2026-05-31" },
			day(2026, time.May, 15), true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := base
			tt.modify(&a)
			if got := a.ActiveOn(tt.date); got != tt.want {
				t.Errorf("ActiveOn(%v) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

func TestActionDueOn(t *testing.T) {
	a := RoutineAction{
		Name:       "gym",
		Schedule:   WeekdayRepeat{Days: Monday},
		Enabled:    true,
		ActiveFrom: "2026-08-01",
	}

	monday := day(2026, time.August, 24)
	if !a.DueOn(monday) {
		t.Error("active action scheduled for monday should be due on monday")
	}
	if a.DueOn(monday.AddDate(0, 0, 1)) {
		t.Error("not due on tuesday")
	}

	a.Enabled = false
	if a.DueOn(monday) {
		t.Error("disabled action is never due")
	}
}

func TestScheduleColumnsRoundTrip(t *testing.T) {
	schedules := []Schedule{
		WeeklyCount{Target: 4},
		WeekdayRepeat{Days: Monday | Wednesday | Friday},
		TimeTarget{Days: EveryDay, DailyMinutes: 45},
	}

	for _, sched := range schedules {
		kind, target, days, minutes := ScheduleColumns(sched)
		got, err := ScheduleFromRow(kind, target, days, minutes)
		if err != nil {
			t.Fatalf("ScheduleFromRow(%v) error: %v", kind, err)
		}
		if got != sched {
			t.Errorf("round trip changed schedule: %#v != %#v", got, sched)
		}
	}
}

func TestScheduleFromRowUnknownKind(t *testing.T) {
	if _, err := ScheduleFromRow("yearly", 0, 0, 0); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestActionKind(t *testing.T) {
	a := RoutineAction{Schedule: WeeklyCount{Target: 2}}
	if a.Kind() != KindWeeklyCount {
		t.Errorf("Kind() = %q, want %q", a.Kind(), KindWeeklyCount)
	}
	none := RoutineAction{}
	if none.Kind() != "" {
		t.Errorf("Kind() on scheduleless action = %q, want empty", none.Kind())
	}
}
