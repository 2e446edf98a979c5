package models

import "time"

// TimeSession is one time-tracking interval for an action.
//
// Day is the calendar day the session counts toward. It is fixed when the
// session starts and never re-derived, even when the session is stopped on a
// later day. DurationMin is computed once at stop time and never recomputed.
type TimeSession struct {
	ID          string     `json:"id"`
	ActionID    string     `json:"action_id"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	EndedAt     *time.Time `json:"ended_at,omitempty"`
	DurationMin int        `json:"duration_min"`
	Day         string     `json:"day"` // YYYY-MM-DD, attributed day
	Manual      bool       `json:"manual"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Ongoing reports whether the session has started but not yet ended.
func (s TimeSession) Ongoing() bool {
	return s.StartedAt != nil && s.EndedAt == nil
}

// ElapsedMin returns the session's whole elapsed minutes as of now. Finished
// sessions report their persisted duration; ongoing sessions report live
// wall-clock elapsed time.
func (s TimeSession) ElapsedMin(now time.Time) int {
	if !s.Ongoing() {
		return s.DurationMin
	}
	min := int(now.Sub(*s.StartedAt).Minutes())
	if min < 0 {
		return 0
	}
	return min
}
