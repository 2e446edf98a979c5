package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/routinely/internal/calendar"
	"github.com/julianstephens/routinely/internal/models"
	"github.com/julianstephens/routinely/internal/progress"
)

var (
	todayHeaderStyle = lipgloss.NewStyle().Bold(true)
	todayDoneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	todayDimStyle    = lipgloss.NewStyle().Faint(true)
)

type TodayCmd struct {
	Date string `help:"Show a day other than today (YYYY-MM-DD)."`
}

func (c *TodayCmd) Run(ctx *Context) error {
	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}
	now := ctx.Clock.Now()
	ds := calendar.DayString(day)

	snap, err := ctx.LoadSnapshot()
	if err != nil {
		return err
	}

	actions := make([]models.RoutineAction, 0, len(snap.Actions))
	for _, a := range snap.Actions {
		if a.DueOn(day) {
			actions = append(actions, a)
		}
	}
	sort.Slice(actions, func(i, j int) bool {
		return actions[i].GlobalOrder < actions[j].GlobalOrder
	})

	fmt.Println(todayHeaderStyle.Render(fmt.Sprintf("Actions for %s", ds)))
	fmt.Println()

	if len(actions) == 0 {
		fmt.Println("Nothing scheduled.")
		return nil
	}

	for _, a := range actions {
		fmt.Println(renderActionLine(snap, a, day, now))
	}

	score := progress.Daily(snap, day, now)
	if score == nil {
		fmt.Println()
		fmt.Println(todayDimStyle.Render("Nothing counts toward today yet."))
		return nil
	}

	fmt.Printf("\nDone: %d/%d (%d%%)\n", score.Completed, score.Target, score.Percent())
	return nil
}

// renderActionLine formats one checklist row. Weekly-count actions show their
// week-to-date tally, time-accumulated actions their tracked minutes.
func renderActionLine(snap *progress.Snapshot, a models.RoutineAction, day time.Time, now time.Time) string {
	ds := calendar.DayString(day)

	var done bool
	var detail string
	switch sched := a.Schedule.(type) {
	case models.WeeklyCount:
		weekStart := calendar.StartOfWeek(day)
		n := snap.MarksBetween(a.ID, calendar.DayString(weekStart), calendar.DayString(weekStart.AddDate(0, 0, 6)))
		done = snap.HasMark(a.ID, ds)
		detail = fmt.Sprintf(" (%d/%d this week)", n, sched.Target)
	case models.WeekdayRepeat:
		done = snap.HasMark(a.ID, ds)
	case models.TimeTarget:
		minutes := snap.MinutesOn(a.ID, ds, now)
		done = minutes >= sched.DailyMinutes
		detail = fmt.Sprintf(" (%d/%d min)", minutes, sched.DailyMinutes)
	}

	box := "[ ]"
	if done {
		box = todayDoneStyle.Render("[x]")
	}
	return fmt.Sprintf("%s %s%s", box, a.Name, todayDimStyle.Render(detail))
}
