package cli

import (
	"fmt"

	"github.com/julianstephens/routinely/internal/calendar"
)

type MarkCmd struct {
	Name string `arg:"" help:"Action name."`
	Date string `help:"Day in YYYY-MM-DD format (default: today)." default:""`
}

func (c *MarkCmd) Run(ctx *Context) error {
	action, err := ctx.FindAction(c.Name)
	if err != nil {
		return err
	}

	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}
	ds := calendar.DayString(day)

	marked, err := ctx.Store.ToggleMark(action.ID, ds, ctx.Clock.Now())
	if err != nil {
		return err
	}

	if marked {
		fmt.Printf("Marked %q done for %s\n", c.Name, ds)
	} else {
		fmt.Printf("Unmarked %q for %s\n", c.Name, ds)
	}
	return nil
}
