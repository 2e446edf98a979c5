package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/routinely/internal/calendar"
)

type ActionKind string

const (
	KindWeeklyCount     ActionKind = "weekly-count"
	KindWeekdayRepeat   ActionKind = "weekday-repeat"
	KindTimeAccumulated ActionKind = "time-accumulated"
)

// Schedule is the recurrence of a RoutineAction. Exactly one of the three
// variants is attached to an action; the variants are mutually exclusive and
// carry only the fields their kind needs.
type Schedule interface {
	Kind() ActionKind
	// ScheduledOn reports whether the action occupies the given calendar day.
	// Weekly-count actions are placed by the weekly engine, not by day, so
	// their answer is always true.
	ScheduledOn(date time.Time) bool
}

// WeeklyCount is satisfied by completing the action Target times per Monday-first week.
type WeeklyCount struct {
	Target int
}

func (WeeklyCount) Kind() ActionKind { return KindWeeklyCount }

func (WeeklyCount) ScheduledOn(time.Time) bool { return true }

// WeekdayRepeat is due on each weekday in Days.
type WeekdayRepeat struct {
	Days WeekdayMask
}

func (WeekdayRepeat) Kind() ActionKind { return KindWeekdayRepeat }

func (r WeekdayRepeat) ScheduledOn(date time.Time) bool {
	return r.Days.Intersects(MaskForDate(date))
}

// TimeTarget is due on each weekday in Days and satisfied by accumulating
// DailyMinutes of tracked time on that day.
type TimeTarget struct {
	Days         WeekdayMask
	DailyMinutes int
}

func (TimeTarget) Kind() ActionKind { return KindTimeAccumulated }

func (t TimeTarget) ScheduledOn(date time.Time) bool {
	return t.Days.Intersects(MaskForDate(date))
}

// RoutineAction is one trackable habit inside a category.
type RoutineAction struct {
	ID          string    `json:"id"`
	CategoryID  string    `json:"category_id"`
	Name        string    `json:"name"`
	Schedule    Schedule  `json:"-"`
	Enabled     bool      `json:"enabled"`
	ActiveFrom  string    `json:"active_from,omitempty"`  // YYYY-MM-DD, inclusive; "" = unbounded
	ActiveUntil string    `json:"active_until,omitempty"` // YYYY-MM-DD, inclusive; "" = unbounded
	GlobalOrder int       `json:"global_order"`
	GroupOrder  int       `json:"group_order"`
	CreatedAt   time.Time `json:"created_at"`
}

// ScheduledOn reports whether the action occupies the given day per its recurrence.
func (a RoutineAction) ScheduledOn(date time.Time) bool {
	if a.Schedule == nil {
		return false
	}
	return a.Schedule.ScheduledOn(date)
}

// ActiveOn reports whether the action is switched on and the day falls inside
// its inclusive [ActiveFrom, ActiveUntil] window. Comparisons are on
// day-normalized values, so an action with ActiveFrom = today is active today.
func (a RoutineAction) ActiveOn(date time.Time) bool {
	if !a.Enabled {
		return false
	}
	day := calendar.DayString(date)
	if a.ActiveFrom != "" && day < a.ActiveFrom {
		return false
	}
	if a.ActiveUntil != "" && day > a.ActiveUntil {
		return false
	}
	return true
}

// DueOn reports whether the action counts toward the given day's target.
// Weekly-count actions answer true on any active day; the weekly engine
// decides placement.
func (a RoutineAction) DueOn(date time.Time) bool {
	return a.ActiveOn(date) && a.ScheduledOn(date)
}

// Kind returns the recurrence kind, or "" when no schedule is attached.
func (a RoutineAction) Kind() ActionKind {
	if a.Schedule == nil {
		return ""
	}
	return a.Schedule.Kind()
}

// ScheduleFromRow reconstructs a Schedule from its flattened storage columns.
func ScheduleFromRow(kind ActionKind, weeklyTarget int, repeatDays WeekdayMask, dailyMinutes int) (Schedule, error) {
	switch kind {
	case KindWeeklyCount:
		return WeeklyCount{Target: weeklyTarget}, nil
	case KindWeekdayRepeat:
		return WeekdayRepeat{Days: repeatDays}, nil
	case KindTimeAccumulated:
		return TimeTarget{Days: repeatDays, DailyMinutes: dailyMinutes}, nil
	default:
		return nil, fmt.Errorf("unknown action kind: %s", kind)
	}
}

// ScheduleColumns flattens a Schedule into its storage columns.
func ScheduleColumns(s Schedule) (kind ActionKind, weeklyTarget int, repeatDays WeekdayMask, dailyMinutes int) {
	switch sched := s.(type) {
	case WeeklyCount:
		return KindWeeklyCount, sched.Target, 0, 0
	case WeekdayRepeat:
		return KindWeekdayRepeat, 0, sched.Days, 0
	case TimeTarget:
		return KindTimeAccumulated, 0, sched.Days, sched.DailyMinutes
	default:
		return "", 0, 0, 0
	}
}

// DescribeSchedule formats a schedule into a human-readable string.
func DescribeSchedule(s Schedule) string {
	switch sched := s.(type) {
	case WeeklyCount:
		return fmt.Sprintf("%dx per week", sched.Target)
	case WeekdayRepeat:
		return fmt.Sprintf("on %s", sched.Days)
	case TimeTarget:
		return fmt.Sprintf("%d min/day on %s", sched.DailyMinutes, sched.Days)
	default:
		return "unknown"
	}
}
