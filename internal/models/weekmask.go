package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/routinely/internal/calendar"
)

// WeekdayMask is a 7-bit set of weekdays. Monday is bit 0, Sunday is bit 6,
// matching the Monday-first week used everywhere else.
type WeekdayMask uint8

const (
	Monday WeekdayMask = 1 << iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday

	// EveryDay has all seven bits set
	EveryDay WeekdayMask = Monday | Tuesday | Wednesday | Thursday | Friday | Saturday | Sunday

	// Weekdays covers Monday through Friday
	Weekdays WeekdayMask = Monday | Tuesday | Wednesday | Thursday | Friday
)

var maskNames = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

var nameToMask = map[string]WeekdayMask{
	"mon": Monday, "monday": Monday,
	"tue": Tuesday, "tuesday": Tuesday,
	"wed": Wednesday, "wednesday": Wednesday,
	"thu": Thursday, "thursday": Thursday,
	"fri": Friday, "friday": Friday,
	"sat": Saturday, "saturday": Saturday,
	"sun": Sunday, "sunday": Sunday,
}

// MaskForDate maps a date to the single-bit mask of its weekday.
func MaskForDate(t time.Time) WeekdayMask {
	return 1 << calendar.WeekdayIndex(t)
}

// Intersects reports whether m and other share any weekday.
func (m WeekdayMask) Intersects(other WeekdayMask) bool {
	return m&other != 0
}

// Contains reports whether every bit of other is set in m.
func (m WeekdayMask) Contains(other WeekdayMask) bool {
	return m&other == other
}

// Union returns the set union of m and other.
func (m WeekdayMask) Union(other WeekdayMask) WeekdayMask {
	return m | other
}

// IsEmpty reports whether no weekday is set.
func (m WeekdayMask) IsEmpty() bool {
	return m&EveryDay == 0
}

// Count returns the number of weekdays in the set.
func (m WeekdayMask) Count() int {
	n := 0
	for i := 0; i < 7; i++ {
		if m&(1<<i) != 0 {
			n++
		}
	}
	return n
}

// String renders the mask as a comma-separated weekday list, Monday first.
func (m WeekdayMask) String() string {
	if m.IsEmpty() {
		return "none"
	}
	if m.Contains(EveryDay) {
		return "every day"
	}
	var days []string
	for i := 0; i < 7; i++ {
		if m&(1<<i) != 0 {
			days = append(days, maskNames[i])
		}
	}
	return strings.Join(days, ",")
}

// ParseWeekdayMask parses a comma-separated list of weekday names
// (e.g. "mon,wed,fri") into a mask.
func ParseWeekdayMask(s string) (WeekdayMask, error) {
	var mask WeekdayMask
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		bit, ok := nameToMask[part]
		if !ok {
			return 0, fmt.Errorf("invalid weekday: %s", part)
		}
		mask |= bit
	}
	return mask, nil
}
