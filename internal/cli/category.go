package cli

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/routinely/internal/models"
)

type CategoryCmd struct {
	Add    CategoryAddCmd    `cmd:"" help:"Add a category to a year."`
	List   CategoryListCmd   `cmd:"" help:"List a year's categories."`
	Delete CategoryDeleteCmd `cmd:"" help:"Delete a category and everything under it."`
}

type CategoryAddCmd struct {
	Name string `arg:"" help:"Category name."`
	Year int    `help:"Year to add the category to (default: configured default year)."`
}

func (c *CategoryAddCmd) Run(ctx *Context) error {
	if c.Name == "" {
		return fmt.Errorf("category name cannot be empty")
	}

	year, err := ctx.CurrentYear(c.Year)
	if err != nil {
		return err
	}

	if _, err := ctx.Store.GetCategoryByName(year.ID, c.Name); err == nil {
		return fmt.Errorf("category %q already exists in %d", c.Name, year.Year)
	}

	existing, err := ctx.Store.GetCategories(year.ID)
	if err != nil {
		return err
	}

	category := models.Category{
		ID:        uuid.NewString(),
		YearID:    year.ID,
		Name:      c.Name,
		Position:  len(existing),
		CreatedAt: ctx.Clock.Now(),
	}
	if err := ctx.Store.AddCategory(category); err != nil {
		return err
	}

	fmt.Printf("Added category %q to %d\n", c.Name, year.Year)
	return nil
}

type CategoryListCmd struct {
	Year int `help:"Year to list (default: configured default year)."`
}

func (c *CategoryListCmd) Run(ctx *Context) error {
	year, err := ctx.CurrentYear(c.Year)
	if err != nil {
		return err
	}

	categories, err := ctx.Store.GetCategories(year.ID)
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		fmt.Printf("No categories in %d yet.\n", year.Year)
		return nil
	}

	for _, cat := range categories {
		actions, err := ctx.Store.GetActions(cat.ID)
		if err != nil {
			return err
		}
		fmt.Printf("%s (%d actions)\n", cat.Name, len(actions))
	}
	return nil
}

type CategoryDeleteCmd struct {
	Name string `arg:"" help:"Category name to delete."`
	Year int    `help:"Year the category belongs to (default: configured default year)."`
}

func (c *CategoryDeleteCmd) Run(ctx *Context) error {
	year, err := ctx.CurrentYear(c.Year)
	if err != nil {
		return err
	}

	category, err := ctx.Store.GetCategoryByName(year.ID, c.Name)
	if err != nil {
		return fmt.Errorf("category %q not found in %d", c.Name, year.Year)
	}

	ctx.PerformAutomaticBackup()

	if err := ctx.Store.DeleteCategory(category.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted category %q and its actions, marks, and sessions\n", c.Name)
	return nil
}
