package progress

import (
	"math"
	"time"

	"github.com/julianstephens/routinely/internal/calendar"
	"github.com/julianstephens/routinely/internal/models"
)

// ActionScore is one action's completion ratio over a range.
type ActionScore struct {
	Action    models.RoutineAction
	Completed int
	Target    int
}

// Percent returns the action's completion percentage, rounded half-up.
func (s ActionScore) Percent() int {
	if s.Target == 0 {
		return 0
	}
	return int(math.Round(100 * float64(s.Completed) / float64(s.Target)))
}

// CategoryScore rolls up the scores of a category's actions.
//
// Percent is the unweighted mean of the member actions' own percentages, not
// a pooled completed/target ratio: an action with few opportunities counts
// equally to one with many. Completed and Target are the pooled sums, kept
// for display.
type CategoryScore struct {
	Category  models.Category
	Completed int
	Target    int
	Percent   int
	Actions   []ActionScore
}

// Range computes per-action and per-category completion over the inclusive
// [from, to] interval. fallbackStart is the origin used for actions without
// an ActiveFrom bound (typically the start of the year). Categories with no
// eligible actions are omitted, as are actions whose effective window or
// target is empty.
func Range(snap *Snapshot, categories []models.Category, from, to, fallbackStart time.Time, now time.Time) []CategoryScore {
	today := calendar.StartOfDay(now)

	byCategory := make(map[string][]ActionScore)
	for _, a := range snap.Actions {
		score := scoreAction(snap, a, from, to, fallbackStart, today, now)
		if score == nil {
			continue
		}
		byCategory[a.CategoryID] = append(byCategory[a.CategoryID], *score)
	}

	var out []CategoryScore
	for _, cat := range categories {
		scores := byCategory[cat.ID]
		if len(scores) == 0 {
			continue
		}
		cs := CategoryScore{Category: cat, Actions: scores}
		sum := 0.0
		for _, s := range scores {
			cs.Completed += s.Completed
			cs.Target += s.Target
			sum += float64(s.Percent())
		}
		cs.Percent = int(math.Round(sum / float64(len(scores))))
		out = append(out, cs)
	}
	return out
}

// scoreAction computes one action's ratio over the window, or nil when the
// action contributes nothing (disabled, empty effective window, zero target).
func scoreAction(snap *Snapshot, a models.RoutineAction, from, to, fallbackStart, today time.Time, now time.Time) *ActionScore {
	if !a.Enabled || a.Schedule == nil {
		return nil
	}

	// Effective window: intersect the requested range with the action's own
	// active window, then clip the upper bound to today. Days that have not
	// occurred yet cannot be satisfied, so they are excluded from the target
	// as well.
	lo := calendar.StartOfDay(from)
	if a.ActiveFrom != "" {
		if f, err := calendar.ParseDay(a.ActiveFrom, lo.Location()); err == nil {
			lo = calendar.MaxDay(lo, f)
		}
	} else {
		lo = calendar.MaxDay(lo, calendar.StartOfDay(fallbackStart))
	}

	hi := calendar.MinDay(calendar.StartOfDay(to), today)
	if a.ActiveUntil != "" {
		if u, err := calendar.ParseDay(a.ActiveUntil, hi.Location()); err == nil {
			hi = calendar.MinDay(hi, u)
		}
	}

	if lo.After(hi) {
		return nil
	}

	score := ActionScore{Action: a}
	switch sched := a.Schedule.(type) {
	case models.WeeklyCount:
		// Each Monday-first week touching the window contributes the full
		// weekly target; marks inside the week (clamped to the window) count
		// up to that target.
		loDay, hiDay := calendar.DayString(lo), calendar.DayString(hi)
		for wk := calendar.StartOfWeek(lo); !wk.After(hi); wk = wk.AddDate(0, 0, 7) {
			score.Target += sched.Target
			wkStart := calendar.DayString(wk)
			if wkStart < loDay {
				wkStart = loDay
			}
			wkEnd := calendar.DayString(wk.AddDate(0, 0, 6))
			if wkEnd > hiDay {
				wkEnd = hiDay
			}
			n := snap.MarksBetween(a.ID, wkStart, wkEnd)
			if n > sched.Target {
				n = sched.Target
			}
			score.Completed += n
		}
	case models.WeekdayRepeat:
		for d := lo; !d.After(hi); d = d.AddDate(0, 0, 1) {
			if !a.DueOn(d) {
				continue
			}
			score.Target++
			if snap.HasMark(a.ID, calendar.DayString(d)) {
				score.Completed++
			}
		}
	case models.TimeTarget:
		for d := lo; !d.After(hi); d = d.AddDate(0, 0, 1) {
			if !a.DueOn(d) {
				continue
			}
			score.Target++
			if snap.MinutesOn(a.ID, calendar.DayString(d), now) >= sched.DailyMinutes {
				score.Completed++
			}
		}
	}

	if score.Target == 0 {
		return nil
	}
	return &score
}
