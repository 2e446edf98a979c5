package models

import "time"

// CompletionMark is evidence that an action was satisfied on a calendar day.
// At most one mark per (action, day) pair exists; the storage layer enforces
// this with a unique key, so aggregation checks existence rather than counting.
type CompletionMark struct {
	ID        string    `json:"id"`
	ActionID  string    `json:"action_id"`
	Day       string    `json:"day"` // YYYY-MM-DD
	CreatedAt time.Time `json:"created_at"`
}
