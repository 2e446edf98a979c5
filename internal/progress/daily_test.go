package progress

import (
	"testing"
	"time"

	"github.com/julianstephens/routinely/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mark(actionID string, d time.Time) models.CompletionMark {
	return models.CompletionMark{ID: actionID + "-" + d.Format("2006-01-02"), ActionID: actionID, Day: d.Format("2006-01-02")}
}

func finishedSession(actionID string, d time.Time, minutes int) models.TimeSession {
	start := d.Add(9 * time.Hour)
	end := start.Add(time.Duration(minutes) * time.Minute)
	return models.TimeSession{
		ID:          actionID + start.Format(time.RFC3339),
		ActionID:    actionID,
		StartedAt:   &start,
		EndedAt:     &end,
		DurationMin: minutes,
		Day:         d.Format("2006-01-02"),
	}
}

func repeatAction(id string, days models.WeekdayMask) models.RoutineAction {
	return models.RoutineAction{ID: id, Name: id, Schedule: models.WeekdayRepeat{Days: days}, Enabled: true}
}

func weeklyAction(id string, target int) models.RoutineAction {
	return models.RoutineAction{ID: id, Name: id, Schedule: models.WeeklyCount{Target: target}, Enabled: true}
}

func timeAction(id string, days models.WeekdayMask, minutes int) models.RoutineAction {
	return models.RoutineAction{ID: id, Name: id, Schedule: models.TimeTarget{Days: days, DailyMinutes: minutes}, Enabled: true}
}

func TestDailyNothingDue(t *testing.T) {
	// Monday-only action asked about a Tuesday.
	snap := NewSnapshot([]models.RoutineAction{repeatAction("a", models.Monday)}, nil, nil)
	tuesday := day(2026, time.August, 25)

	if got := Daily(snap, tuesday, tuesday); got != nil {
		t.Errorf("Daily = %+v, want nil when nothing is due", got)
	}
}

func TestDailyWeekdayRepeat(t *testing.T) {
	monday := day(2026, time.August, 24)
	a := repeatAction("run", models.Monday|models.Wednesday|models.Friday)
	b := repeatAction("read", models.Monday)

	snap := NewSnapshot(
		[]models.RoutineAction{a, b},
		[]models.CompletionMark{mark("run", monday)},
		nil,
	)

	score := Daily(snap, monday, monday)
	if score == nil {
		t.Fatal("expected a score on a scheduled day")
	}
	if score.Target != 2 || score.Completed != 1 {
		t.Errorf("score = %d/%d, want 1/2", score.Completed, score.Target)
	}
	if score.Percent() != 50 {
		t.Errorf("Percent() = %d, want 50", score.Percent())
	}
}

func TestDailyWeeklyCountOnlyVisibleWhenMarked(t *testing.T) {
	monday := day(2026, time.August, 24)
	weekly := weeklyAction("gym", 3)

	t.Run("unmarked weekly action is invisible", func(t *testing.T) {
		snap := NewSnapshot([]models.RoutineAction{weekly}, nil, nil)
		if got := Daily(snap, monday, monday); got != nil {
			t.Errorf("Daily = %+v, want nil: unchecked weekly action must not count as a miss", got)
		}
	})

	t.Run("marked weekly action counts as one-of-one", func(t *testing.T) {
		snap := NewSnapshot([]models.RoutineAction{weekly}, []models.CompletionMark{mark("gym", monday)}, nil)
		score := Daily(snap, monday, monday)
		if score == nil {
			t.Fatal("expected a score for the marked day")
		}
		if score.Target != 1 || score.Completed != 1 {
			t.Errorf("score = %d/%d, want 1/1", score.Completed, score.Target)
		}
	})
}

func TestDailyTimeTarget(t *testing.T) {
	monday := day(2026, time.August, 24)
	a := timeAction("piano", models.EveryDay, 60)

	t.Run("below target", func(t *testing.T) {
		snap := NewSnapshot([]models.RoutineAction{a}, nil,
			[]models.TimeSession{finishedSession("piano", monday, 45)})
		score := Daily(snap, monday, monday)
		if score == nil || score.Completed != 0 || score.Target != 1 {
			t.Fatalf("score = %+v, want 0/1 at 45 of 60 minutes", score)
		}
	})

	t.Run("accumulated sessions reach target", func(t *testing.T) {
		snap := NewSnapshot([]models.RoutineAction{a}, nil, []models.TimeSession{
			finishedSession("piano", monday, 45),
			finishedSession("piano", monday, 15),
		})
		score := Daily(snap, monday, monday)
		if score == nil || score.Completed != 1 {
			t.Fatalf("score = %+v, want 1/1 at 60 accumulated minutes", score)
		}
	})

	t.Run("ongoing session contributes live minutes", func(t *testing.T) {
		start := monday.Add(10 * time.Hour)
		ongoing := models.TimeSession{ID: "s", ActionID: "piano", StartedAt: &start, Day: "2026-08-24"}
		snap := NewSnapshot([]models.RoutineAction{a}, nil, []models.TimeSession{
			finishedSession("piano", monday, 30),
			ongoing,
		})

		now := start.Add(31 * time.Minute)
		score := Daily(snap, monday, now)
		if score == nil || score.Completed != 1 {
			t.Fatalf("score = %+v, want 1/1 with 30 finished + 31 live minutes", score)
		}
	})

	t.Run("session attributed to another day is ignored", func(t *testing.T) {
		sunday := monday.AddDate(0, 0, -1)
		snap := NewSnapshot([]models.RoutineAction{a}, nil,
			[]models.TimeSession{finishedSession("piano", sunday, 120)})
		score := Daily(snap, monday, monday)
		if score == nil || score.Completed != 0 {
			t.Fatalf("score = %+v, want 0/1: yesterday's minutes must not count", score)
		}
	})
}

func TestDailyInactiveActionsExcluded(t *testing.T) {
	monday := day(2026, time.August, 24)

	disabled := repeatAction("off", models.Monday)
	disabled.Enabled = false

	windowed := repeatAction("later", models.Monday)
	windowed.ActiveFrom = "2026-09-01"

	snap := NewSnapshot([]models.RoutineAction{disabled, windowed}, nil, nil)
	if got := Daily(snap, monday, monday); got != nil {
		t.Errorf("Daily = %+v, want nil: inactive actions contribute nothing", got)
	}
}

func TestDayScorePercentRounding(t *testing.T) {
	tests := []struct {
		completed, target, want int
	}{
		{0, 0, 0},
		{1, 2, 50},
		{2, 3, 67},
		{1, 3, 33},
		{1, 8, 13}, // 12.5 rounds half away from zero
		{3, 3, 100},
	}

	for _, tt := range tests {
		s := DayScore{Completed: tt.completed, Target: tt.target}
		if got := s.Percent(); got != tt.want {
			t.Errorf("Percent(%d/%d) = %d, want %d", tt.completed, tt.target, got, tt.want)
		}
	}
}
