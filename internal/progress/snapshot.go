// Package progress computes daily and range completion aggregates over
// immutable snapshots of the action, mark, and session collections. Nothing
// here mutates state or performs I/O; callers supply complete collections and
// an explicit "now".
package progress

import (
	"time"

	"github.com/julianstephens/routinely/internal/models"
)

// Snapshot holds the complete collections a computation runs over.
type Snapshot struct {
	Actions  []models.RoutineAction
	Marks    []models.CompletionMark
	Sessions []models.TimeSession

	marks    map[string]map[string]bool // action ID -> day -> marked
	sessions map[string][]models.TimeSession
}

// NewSnapshot builds the lookup indices for a set of collections.
func NewSnapshot(actions []models.RoutineAction, marks []models.CompletionMark, sessions []models.TimeSession) *Snapshot {
	s := &Snapshot{
		Actions:  actions,
		Marks:    marks,
		Sessions: sessions,
		marks:    make(map[string]map[string]bool),
		sessions: make(map[string][]models.TimeSession),
	}
	for _, m := range marks {
		days := s.marks[m.ActionID]
		if days == nil {
			days = make(map[string]bool)
			s.marks[m.ActionID] = days
		}
		days[m.Day] = true
	}
	for _, sess := range sessions {
		s.sessions[sess.ActionID] = append(s.sessions[sess.ActionID], sess)
	}
	return s
}

// HasMark reports whether a completion mark exists for (action, day).
func (s *Snapshot) HasMark(actionID, day string) bool {
	return s.marks[actionID][day]
}

// MarksBetween counts an action's marks with startDay <= day <= endDay.
func (s *Snapshot) MarksBetween(actionID, startDay, endDay string) int {
	n := 0
	for day := range s.marks[actionID] {
		if day >= startDay && day <= endDay {
			n++
		}
	}
	return n
}

// MinutesOn sums the minutes attributed to (action, day). Finished sessions
// contribute their persisted duration; an ongoing session attributed to the
// day contributes its live elapsed minutes as of now.
func (s *Snapshot) MinutesOn(actionID, day string, now time.Time) int {
	total := 0
	for _, sess := range s.sessions[actionID] {
		if sess.Day != day {
			continue
		}
		total += sess.ElapsedMin(now)
	}
	return total
}
