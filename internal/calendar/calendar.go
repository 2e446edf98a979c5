// Package calendar defines the Monday-first week and day-start normalization
// used by every scheduling and aggregation component.
package calendar

import (
	"fmt"
	"time"

	"github.com/julianstephens/routinely/internal/constants"
)

// Clock supplies the current time. Aggregation code never calls time.Now
// directly so that "today" can be fixed in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall-clock implementation of Clock.
type SystemClock struct {
	Timezone string
}

func (c SystemClock) Now() time.Time {
	now, err := NowInTimezone(c.Timezone)
	if err != nil {
		return time.Now()
	}
	return now
}

// FixedClock always reports the same instant. Used in tests.
type FixedClock struct {
	Time time.Time
}

func (c FixedClock) Now() time.Time {
	return c.Time
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekdayIndex maps t's weekday to the Monday-first index: Monday = 0 ... Sunday = 6.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// StartOfWeek returns midnight of the Monday on or before t.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	return day.AddDate(0, 0, -WeekdayIndex(day))
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DayString formats t as a day string (YYYY-MM-DD).
func DayString(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDay parses a day string (YYYY-MM-DD) to midnight in the given location.
func ParseDay(day string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, day)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}

// MinDay returns the earlier of a and b.
func MinDay(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

// MaxDay returns the later of a and b.
func MaxDay(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
