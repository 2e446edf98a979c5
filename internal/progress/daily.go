package progress

import (
	"math"
	"time"

	"github.com/julianstephens/routinely/internal/calendar"
	"github.com/julianstephens/routinely/internal/models"
)

// DayScore is the completed/target pair for a single day.
type DayScore struct {
	Completed int
	Target    int
}

// Percent returns the completion percentage, rounded half-up.
// Only meaningful when Target > 0.
func (s DayScore) Percent() int {
	if s.Target == 0 {
		return 0
	}
	return int(math.Round(100 * float64(s.Completed) / float64(s.Target)))
}

// Daily computes how many actions are due on the given day and how many are
// satisfied. It returns nil, not a zero score, when nothing is due, so callers
// can distinguish "nothing scheduled" from "0% done".
//
// Weekly-count actions only appear in a day's score when a mark exists for
// that day: an unchecked weekly action is invisible in the daily ratio, not
// counted as a miss.
func Daily(snap *Snapshot, day time.Time, now time.Time) *DayScore {
	ds := calendar.DayString(day)
	var score DayScore

	for _, a := range snap.Actions {
		if !a.ActiveOn(day) {
			continue
		}
		switch sched := a.Schedule.(type) {
		case models.WeeklyCount:
			if snap.HasMark(a.ID, ds) {
				score.Target++
				score.Completed++
			}
		case models.WeekdayRepeat:
			if !sched.ScheduledOn(day) {
				continue
			}
			score.Target++
			if snap.HasMark(a.ID, ds) {
				score.Completed++
			}
		case models.TimeTarget:
			if !sched.ScheduledOn(day) {
				continue
			}
			score.Target++
			if snap.MinutesOn(a.ID, ds, now) >= sched.DailyMinutes {
				score.Completed++
			}
		}
	}

	if score.Target == 0 {
		return nil
	}
	return &score
}
