package cli

import (
	"fmt"

	"github.com/julianstephens/routinely/internal/calendar"
	"github.com/julianstephens/routinely/internal/models"
	"github.com/julianstephens/routinely/internal/tracker"
)

type TimerCmd struct {
	Start  TimerStartCmd  `cmd:"" help:"Start tracking time for an action."`
	Stop   TimerStopCmd   `cmd:"" help:"Stop the running timer."`
	Status TimerStatusCmd `cmd:"" help:"Show the timer state for an action."`
	Log    TimerLogCmd    `cmd:"" help:"Record minutes for a day without a timer."`
}

// findTimeAction resolves the action and checks it is time-accumulated.
// Timers on count-based actions would track minutes nothing ever reads.
func findTimeAction(ctx *Context, name string) (models.RoutineAction, error) {
	action, err := ctx.FindAction(name)
	if err != nil {
		return models.RoutineAction{}, err
	}
	if action.Kind() != models.KindTimeAccumulated {
		return models.RoutineAction{}, fmt.Errorf("action %q is not time-accumulated (%s)", name, action.Kind())
	}
	return action, nil
}

type TimerStartCmd struct {
	Name string `arg:"" help:"Action name."`
}

func (c *TimerStartCmd) Run(ctx *Context) error {
	action, err := findTimeAction(ctx, c.Name)
	if err != nil {
		return err
	}

	t := tracker.New(ctx.Store, ctx.Clock)
	started, err := t.Start(action)
	if err != nil {
		return err
	}
	if !started {
		fmt.Printf("Timer for %q is already running.\n", c.Name)
		return nil
	}

	fmt.Printf("Started timer for %q\n", c.Name)
	return nil
}

type TimerStopCmd struct {
	Name string `arg:"" help:"Action name."`
}

func (c *TimerStopCmd) Run(ctx *Context) error {
	action, err := findTimeAction(ctx, c.Name)
	if err != nil {
		return err
	}

	t := tracker.New(ctx.Store, ctx.Clock)
	session, err := t.Stop(action)
	if err != nil {
		return err
	}
	if session == nil {
		fmt.Printf("No timer running for %q.\n", c.Name)
		return nil
	}

	snap, err := ctx.LoadSnapshot()
	if err != nil {
		return err
	}
	// Tally against the session's attributed day, which differs from today
	// when the timer ran past midnight.
	minutes := snap.MinutesOn(action.ID, session.Day, ctx.Clock.Now())

	if target, ok := action.Schedule.(models.TimeTarget); ok {
		fmt.Printf("Stopped timer for %q: %d/%d min on %s\n", c.Name, minutes, target.DailyMinutes, session.Day)
	} else {
		fmt.Printf("Stopped timer for %q\n", c.Name)
	}
	return nil
}

type TimerStatusCmd struct {
	Name string `arg:"" help:"Action name."`
}

func (c *TimerStatusCmd) Run(ctx *Context) error {
	action, err := findTimeAction(ctx, c.Name)
	if err != nil {
		return err
	}

	t := tracker.New(ctx.Store, ctx.Clock)
	session, elapsed, err := t.Status(action)
	if err != nil {
		return err
	}
	if session == nil {
		fmt.Printf("No timer running for %q.\n", c.Name)
		return nil
	}

	fmt.Printf("Timer for %q running since %s (%d min, counts toward %s)\n",
		c.Name, session.StartedAt.Format("15:04"), elapsed, session.Day)
	return nil
}

type TimerLogCmd struct {
	Name    string `arg:"" help:"Action name."`
	Minutes int    `arg:"" help:"Whole minutes to record."`
	Date    string `help:"Day to record against (YYYY-MM-DD, default: today)."`
}

func (c *TimerLogCmd) Run(ctx *Context) error {
	action, err := findTimeAction(ctx, c.Name)
	if err != nil {
		return err
	}

	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}

	t := tracker.New(ctx.Store, ctx.Clock)
	if err := t.Log(action, calendar.DayString(day), c.Minutes, ctx.Clock.Now()); err != nil {
		return err
	}

	fmt.Printf("Logged %d min for %q on %s\n", c.Minutes, c.Name, calendar.DayString(day))
	return nil
}
