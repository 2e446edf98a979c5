package cli

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/routinely/internal/models"
)

type YearCmd struct {
	Add  YearAddCmd  `cmd:"" help:"Start tracking a year."`
	List YearListCmd `cmd:"" help:"List tracked years."`
	Use  YearUseCmd  `cmd:"" help:"Set the default year."`
}

type YearAddCmd struct {
	Year int `arg:"" help:"Calendar year, e.g. 2026."`
}

func (c *YearAddCmd) Run(ctx *Context) error {
	if c.Year < 1970 || c.Year > 9999 {
		return fmt.Errorf("implausible year: %d", c.Year)
	}

	if _, err := ctx.Store.GetYear(c.Year); err == nil {
		return fmt.Errorf("year %d is already tracked", c.Year)
	}

	year := models.Year{
		ID:        uuid.NewString(),
		Year:      c.Year,
		CreatedAt: ctx.Clock.Now(),
	}
	if err := ctx.Store.AddYear(year); err != nil {
		return err
	}

	// The first tracked year becomes the default automatically.
	settings, err := ctx.Store.GetSettings()
	if err == nil && settings.DefaultYear == 0 {
		settings.DefaultYear = c.Year
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return err
		}
	}

	fmt.Printf("Now tracking %d\n", c.Year)
	return nil
}

type YearListCmd struct{}

func (c *YearListCmd) Run(ctx *Context) error {
	years, err := ctx.Store.GetAllYears()
	if err != nil {
		return err
	}
	if len(years) == 0 {
		fmt.Println("No years tracked yet. Use 'routinely year add' to start one.")
		return nil
	}

	settings, _ := ctx.Store.GetSettings()
	for _, y := range years {
		marker := ""
		if y.Year == settings.DefaultYear {
			marker = " (default)"
		}
		fmt.Printf("%d%s\n", y.Year, marker)
	}
	return nil
}

type YearUseCmd struct {
	Year int `arg:"" help:"Year to make the default."`
}

func (c *YearUseCmd) Run(ctx *Context) error {
	if _, err := ctx.Store.GetYear(c.Year); err != nil {
		return fmt.Errorf("year %d is not tracked", c.Year)
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	settings.DefaultYear = c.Year
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return err
	}

	fmt.Printf("Default year set to %d\n", c.Year)
	return nil
}
