package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/routinely/internal/models"
	"github.com/julianstephens/routinely/internal/validation"
)

type ActionCmd struct {
	Add    ActionAddCmd    `cmd:"" help:"Add a recurring action."`
	Edit   ActionEditCmd   `cmd:"" help:"Edit an action."`
	List   ActionListCmd   `cmd:"" help:"List actions."`
	Enable ActionEnableCmd `cmd:"" help:"Enable or disable an action."`
	Delete ActionDeleteCmd `cmd:"" help:"Delete an action and its history."`
}

type ActionAddCmd struct {
	Name        string `arg:"" optional:"" help:"Action name."`
	Category    string `short:"c" help:"Category the action belongs to."`
	Kind        string `short:"k" help:"Recurrence kind (weekly-count|weekday-repeat|time-accumulated)." default:"weekday-repeat"`
	Target      int    `short:"t" help:"Completions per week (weekly-count)." default:"0"`
	Days        string `short:"d" help:"Comma-separated weekdays, e.g. mon,wed,fri (weekday-repeat, time-accumulated)."`
	Minutes     int    `short:"m" help:"Daily minutes target (time-accumulated)." default:"0"`
	From        string `help:"First active day (YYYY-MM-DD, inclusive)."`
	Until       string `help:"Last active day (YYYY-MM-DD, inclusive)."`
	Year        int    `help:"Year to add the action to (default: configured default year)."`
	Interactive bool   `short:"i" help:"Fill the action in interactively."`
}

func (c *ActionAddCmd) Run(ctx *Context) error {
	if c.Interactive {
		if err := c.runForm(ctx); err != nil {
			return err
		}
	}
	if c.Name == "" {
		return fmt.Errorf("action name is required")
	}
	if c.Category == "" {
		return fmt.Errorf("category is required")
	}

	year, err := ctx.CurrentYear(c.Year)
	if err != nil {
		return err
	}
	category, err := ctx.Store.GetCategoryByName(year.ID, c.Category)
	if err != nil {
		return fmt.Errorf("category %q not found in %d", c.Category, year.Year)
	}

	if _, err := ctx.Store.GetActionByName(c.Name); err == nil {
		return fmt.Errorf("action with name %q already exists", c.Name)
	}

	schedule, err := buildSchedule(c.Kind, c.Target, c.Days, c.Minutes)
	if err != nil {
		return err
	}

	siblings, err := ctx.Store.GetActions(category.ID)
	if err != nil {
		return err
	}
	all, err := ctx.Store.GetAllActions()
	if err != nil {
		return err
	}

	action := models.RoutineAction{
		ID:          uuid.NewString(),
		CategoryID:  category.ID,
		Name:        c.Name,
		Schedule:    schedule,
		Enabled:     true,
		ActiveFrom:  c.From,
		ActiveUntil: c.Until,
		GlobalOrder: len(all),
		GroupOrder:  len(siblings),
		CreatedAt:   ctx.Clock.Now(),
	}

	if res := validation.CheckAction(action); !res.OK() {
		return res.Err()
	}

	if err := ctx.Store.AddAction(action); err != nil {
		return err
	}

	fmt.Printf("Added action %q (%s) to %s\n", c.Name, models.DescribeSchedule(schedule), category.Name)
	return nil
}

func (c *ActionAddCmd) runForm(ctx *Context) error {
	targetStr := strconv.Itoa(c.Target)
	minutesStr := strconv.Itoa(c.Minutes)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Action name").
				Value(&c.Name),
			huh.NewInput().
				Title("Category").
				Value(&c.Category),
			huh.NewSelect[string]().
				Title("Recurrence kind").
				Options(
					huh.NewOption("A number of times per week", string(models.KindWeeklyCount)),
					huh.NewOption("On fixed weekdays", string(models.KindWeekdayRepeat)),
					huh.NewOption("Minutes of tracked time per day", string(models.KindTimeAccumulated)),
				).
				Value(&c.Kind),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Completions per week").
				Value(&targetStr),
		).WithHideFunc(func() bool { return c.Kind != string(models.KindWeeklyCount) }),
		huh.NewGroup(
			huh.NewInput().
				Title("Weekdays (e.g. mon,wed,fri)").
				Value(&c.Days),
		).WithHideFunc(func() bool { return c.Kind == string(models.KindWeeklyCount) }),
		huh.NewGroup(
			huh.NewInput().
				Title("Daily minutes target").
				Value(&minutesStr),
		).WithHideFunc(func() bool { return c.Kind != string(models.KindTimeAccumulated) }),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive form error: %w", err)
	}

	var err error
	if c.Target, err = strconv.Atoi(targetStr); err != nil {
		return fmt.Errorf("invalid weekly target: %s", targetStr)
	}
	if c.Minutes, err = strconv.Atoi(minutesStr); err != nil {
		return fmt.Errorf("invalid daily minutes: %s", minutesStr)
	}
	return nil
}

type ActionEditCmd struct {
	Name    string `arg:"" help:"Action to edit."`
	Rename  string `help:"New name."`
	Target  int    `short:"t" help:"New completions per week (weekly-count)." default:"-1"`
	Days    string `short:"d" help:"New comma-separated weekdays."`
	Minutes int    `short:"m" help:"New daily minutes target (time-accumulated)." default:"-1"`
	From    string `help:"New first active day (YYYY-MM-DD); pass 'none' to clear."`
	Until   string `help:"New last active day (YYYY-MM-DD); pass 'none' to clear."`
}

func (c *ActionEditCmd) Run(ctx *Context) error {
	action, err := ctx.FindAction(c.Name)
	if err != nil {
		return err
	}

	if c.Rename != "" && c.Rename != action.Name {
		if _, err := ctx.Store.GetActionByName(c.Rename); err == nil {
			return fmt.Errorf("action with name %q already exists", c.Rename)
		}
		action.Name = c.Rename
	}

	switch sched := action.Schedule.(type) {
	case models.WeeklyCount:
		if c.Target >= 0 {
			sched.Target = c.Target
			action.Schedule = sched
		}
	case models.WeekdayRepeat:
		if c.Days != "" {
			mask, err := models.ParseWeekdayMask(c.Days)
			if err != nil {
				return err
			}
			sched.Days = mask
			action.Schedule = sched
		}
	case models.TimeTarget:
		if c.Days != "" {
			mask, err := models.ParseWeekdayMask(c.Days)
			if err != nil {
				return err
			}
			sched.Days = mask
		}
		if c.Minutes >= 0 {
			sched.DailyMinutes = c.Minutes
		}
		action.Schedule = sched
	}

	if c.From != "" {
		action.ActiveFrom = windowValue(c.From)
	}
	if c.Until != "" {
		action.ActiveUntil = windowValue(c.Until)
	}

	if res := validation.CheckAction(action); !res.OK() {
		return res.Err()
	}

	if err := ctx.Store.UpdateAction(action); err != nil {
		return err
	}

	fmt.Printf("Updated action %q (%s)\n", action.Name, models.DescribeSchedule(action.Schedule))
	return nil
}

type ActionListCmd struct {
	Category string `short:"c" help:"Only list one category's actions."`
	Year     int    `help:"Year to list (default: configured default year)."`
}

func (c *ActionListCmd) Run(ctx *Context) error {
	year, err := ctx.CurrentYear(c.Year)
	if err != nil {
		return err
	}

	categories, err := ctx.Store.GetCategories(year.ID)
	if err != nil {
		return err
	}

	shown := 0
	for _, cat := range categories {
		if c.Category != "" && cat.Name != c.Category {
			continue
		}
		actions, err := ctx.Store.GetActions(cat.ID)
		if err != nil {
			return err
		}
		if len(actions) == 0 {
			continue
		}
		fmt.Printf("%s:\n", cat.Name)
		for _, a := range actions {
			status := ""
			if !a.Enabled {
				status = " [disabled]"
			}
			window := ""
			if a.ActiveFrom != "" || a.ActiveUntil != "" {
				window = fmt.Sprintf(" (%s .. %s)", orUnbounded(a.ActiveFrom), orUnbounded(a.ActiveUntil))
			}
			fmt.Printf("  %s: %s%s%s\n", a.Name, models.DescribeSchedule(a.Schedule), window, status)
			shown++
		}
	}

	if shown == 0 {
		fmt.Println("No actions found.")
	}
	return nil
}

type ActionEnableCmd struct {
	Name    string `arg:"" help:"Action name."`
	Disable bool   `help:"Disable the action instead."`
}

func (c *ActionEnableCmd) Run(ctx *Context) error {
	action, err := ctx.FindAction(c.Name)
	if err != nil {
		return err
	}

	action.Enabled = !c.Disable
	if err := ctx.Store.UpdateAction(action); err != nil {
		return err
	}

	if c.Disable {
		fmt.Printf("Disabled action %q\n", c.Name)
	} else {
		fmt.Printf("Enabled action %q\n", c.Name)
	}
	return nil
}

type ActionDeleteCmd struct {
	Name string `arg:"" help:"Action name to delete."`
}

func (c *ActionDeleteCmd) Run(ctx *Context) error {
	action, err := ctx.FindAction(c.Name)
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

	if err := ctx.Store.DeleteAction(action.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted action %q and its marks and sessions\n", c.Name)
	return nil
}

// buildSchedule assembles a Schedule variant from the flat flag values.
func buildSchedule(kind string, target int, days string, minutes int) (models.Schedule, error) {
	switch models.ActionKind(kind) {
	case models.KindWeeklyCount:
		return models.WeeklyCount{Target: target}, nil
	case models.KindWeekdayRepeat:
		mask, err := models.ParseWeekdayMask(days)
		if err != nil {
			return nil, err
		}
		return models.WeekdayRepeat{Days: mask}, nil
	case models.KindTimeAccumulated:
		mask := models.EveryDay
		if days != "" {
			var err error
			mask, err = models.ParseWeekdayMask(days)
			if err != nil {
				return nil, err
			}
		}
		return models.TimeTarget{Days: mask, DailyMinutes: minutes}, nil
	default:
		return nil, fmt.Errorf("invalid kind: %s (use weekly-count, weekday-repeat, or time-accumulated)", kind)
	}
}

func windowValue(flag string) string {
	if flag == "none" {
		return ""
	}
	return flag
}

func orUnbounded(day string) string {
	if day == "" {
		return "open"
	}
	return day
}
