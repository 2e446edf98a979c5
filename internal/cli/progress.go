package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/routinely/internal/calendar"
	"github.com/julianstephens/routinely/internal/progress"
)

var (
	progressCategoryStyle = lipgloss.NewStyle().Bold(true)
	progressBarStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

type ProgressCmd struct {
	Week    bool   `help:"Show the current Monday-first week."`
	Month   bool   `help:"Show the current calendar month."`
	From    string `help:"Range start (YYYY-MM-DD, inclusive)."`
	To      string `help:"Range end (YYYY-MM-DD, inclusive)."`
	Year    int    `help:"Year to report on (default: configured default year)."`
	Verbose bool   `short:"v" help:"Show per-action breakdown."`
}

func (c *ProgressCmd) Run(ctx *Context) error {
	now := ctx.Clock.Now()

	from, to, err := c.resolveRange(now)
	if err != nil {
		return err
	}

	year, err := ctx.CurrentYear(c.Year)
	if err != nil {
		return err
	}
	categories, err := ctx.Store.GetCategories(year.ID)
	if err != nil {
		return err
	}

	snap, err := ctx.LoadSnapshot()
	if err != nil {
		return err
	}

	// Actions without an explicit start date count from the beginning of the
	// range's year.
	fallbackStart := time.Date(from.Year(), 1, 1, 0, 0, 0, 0, from.Location())

	scores := progress.Range(snap, categories, from, to, fallbackStart, now)

	fmt.Printf("Progress %s .. %s\n\n", calendar.DayString(from), calendar.DayString(to))

	if len(scores) == 0 {
		fmt.Println("Nothing to report for this range.")
		return nil
	}

	for _, cs := range scores {
		fmt.Printf("%s %s %3d%%  (%d/%d)\n",
			progressCategoryStyle.Render(fmt.Sprintf("%-16s", cs.Category.Name)),
			progressBarStyle.Render(renderBar(cs.Percent)),
			cs.Percent, cs.Completed, cs.Target)
		if !c.Verbose {
			continue
		}
		for _, as := range cs.Actions {
			fmt.Printf("    %-20s %3d%%  (%d/%d)\n",
				as.Action.Name, as.Percent(), as.Completed, as.Target)
		}
	}
	return nil
}

func (c *ProgressCmd) resolveRange(now time.Time) (time.Time, time.Time, error) {
	today := calendar.StartOfDay(now)

	switch {
	case c.From != "" || c.To != "":
		if c.From == "" || c.To == "" {
			return time.Time{}, time.Time{}, fmt.Errorf("--from and --to must be given together")
		}
		from, err := calendar.ParseDay(c.From, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --from date: %s", c.From)
		}
		to, err := calendar.ParseDay(c.To, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --to date: %s", c.To)
		}
		if from.After(to) {
			return time.Time{}, time.Time{}, fmt.Errorf("range is inverted: %s is after %s", c.From, c.To)
		}
		return from, to, nil
	case c.Month:
		from := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		to := from.AddDate(0, 1, -1)
		return from, to, nil
	default:
		// Week is also the default view.
		from := calendar.StartOfWeek(today)
		return from, from.AddDate(0, 0, 6), nil
	}
}

func renderBar(percent int) string {
	const width = 20
	filled := percent * width / 100
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
