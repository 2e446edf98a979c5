// Package validation rejects impossible action configurations at the edit
// boundary so the aggregation engine only ever sees well-formed input.
package validation

import (
	"fmt"
	"time"

	"github.com/julianstephens/routinely/internal/calendar"
	"github.com/julianstephens/routinely/internal/models"
)

// ProblemType represents the type of configuration problem
type ProblemType string

const (
	ProblemEmptyName       ProblemType = "empty_name"
	ProblemMissingSchedule ProblemType = "missing_schedule"
	ProblemEmptyRepeatDays ProblemType = "empty_repeat_days"
	ProblemWeeklyTarget    ProblemType = "invalid_weekly_target"
	ProblemTimeTarget      ProblemType = "invalid_time_target"
	ProblemInvalidDate     ProblemType = "invalid_date"
	ProblemInvertedWindow  ProblemType = "inverted_window"
	ProblemDuplicateName   ProblemType = "duplicate_name"
	ProblemUnknownCategory ProblemType = "unknown_category"
)

// Problem is one detected configuration problem
type Problem struct {
	Type        ProblemType
	Description string
}

// Result contains all detected problems for one action
type Result struct {
	Problems []Problem
}

// OK reports whether the configuration is acceptable
func (r *Result) OK() bool {
	return len(r.Problems) == 0
}

// Err returns the first problem as an error, or nil when the result is clean
func (r *Result) Err() error {
	if r.OK() {
		return nil
	}
	return fmt.Errorf("%s", r.Problems[0].Description)
}

func (r *Result) add(t ProblemType, format string, args ...interface{}) {
	r.Problems = append(r.Problems, Problem{Type: t, Description: fmt.Sprintf(format, args...)})
}

// CheckAction validates a routine action's configuration.
func CheckAction(a models.RoutineAction) *Result {
	res := &Result{}

	if a.Name == "" {
		res.add(ProblemEmptyName, "action name cannot be empty")
	}

	switch sched := a.Schedule.(type) {
	case nil:
		res.add(ProblemMissingSchedule, "action has no schedule")
	case models.WeeklyCount:
		if sched.Target < 1 {
			res.add(ProblemWeeklyTarget, "weekly target must be at least 1, got %d", sched.Target)
		}
	case models.WeekdayRepeat:
		if sched.Days.IsEmpty() {
			res.add(ProblemEmptyRepeatDays, "weekday-repeat action must name at least one weekday")
		}
	case models.TimeTarget:
		// A zero minute target with scheduled days is tolerated; zero target
		// with no days is an empty action.
		if sched.DailyMinutes < 0 {
			res.add(ProblemTimeTarget, "daily time target cannot be negative, got %d", sched.DailyMinutes)
		}
		if sched.DailyMinutes == 0 && sched.Days.IsEmpty() {
			res.add(ProblemTimeTarget, "time-accumulated action needs a daily target or repeat days")
		}
	}

	checkWindow(res, a.ActiveFrom, a.ActiveUntil)
	return res
}

func checkWindow(res *Result, from, until string) {
	ok := true
	for _, day := range []string{from, until} {
		if day == "" {
			continue
		}
		if _, err := calendar.ParseDay(day, time.UTC); err != nil {
			res.add(ProblemInvalidDate, "invalid date %q (expected YYYY-MM-DD)", day)
			ok = false
		}
	}
	if ok && from != "" && until != "" && from > until {
		res.add(ProblemInvertedWindow, "active window is inverted: %s is after %s", from, until)
	}
}
