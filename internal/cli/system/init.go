// Package system holds the maintenance commands: init, migrate, doctor,
// backups, connection config, and the TUI launcher.
package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/routinely/internal/cli"
	"github.com/julianstephens/routinely/internal/storage"
	"github.com/julianstephens/routinely/internal/storage/postgres"
	"github.com/julianstephens/routinely/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		// Don't delete if it's the source (user error protection)
		if c.Source != "" {
			absDbPath, err := filepath.Abs(dbPath)
			if err == nil {
				dbPath = absDbPath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			// Close first to prevent file locking issues
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized routinely storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Copying data from: %s\n", c.Source)
		if err := c.copyData(ctx, c.Source); err != nil {
			return fmt.Errorf("data copy failed: %w", err)
		}
		fmt.Println("Data copy completed successfully!")
	}

	return nil
}

// copyData moves every entity from a source store into the freshly
// initialized one, parent entities first so the foreign keys hold.
func (c *InitCmd) copyData(ctx *cli.Context, sourcePath string) error {
	var sourceStore storage.Provider
	if strings.HasPrefix(sourcePath, "postgres://") || strings.HasPrefix(sourcePath, "postgresql://") {
		if valid, err := postgres.ValidateConnString(sourcePath); !valid {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
			}
			return err
		}
		sourceStore = postgres.New(sourcePath)
	} else {
		sourceStore = sqlite.NewStore(sourcePath)
	}

	if err := sourceStore.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer sourceStore.Close()

	fmt.Println("  Copying settings...")
	settings, err := sourceStore.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	fmt.Println("  Copying years...")
	years, err := sourceStore.GetAllYears()
	if err != nil {
		return fmt.Errorf("failed to get years from source: %w", err)
	}
	for _, year := range years {
		if err := ctx.Store.AddYear(year); err != nil {
			return fmt.Errorf("failed to add year %d: %w", year.Year, err)
		}
	}
	fmt.Printf("    Copied %d years\n", len(years))

	fmt.Println("  Copying categories and actions...")
	categories, actions := 0, 0
	for _, year := range years {
		cats, err := sourceStore.GetCategories(year.ID)
		if err != nil {
			return fmt.Errorf("failed to get categories from source: %w", err)
		}
		for _, cat := range cats {
			if err := ctx.Store.AddCategory(cat); err != nil {
				return fmt.Errorf("failed to add category %s: %w", cat.Name, err)
			}
			categories++
			acts, err := sourceStore.GetActions(cat.ID)
			if err != nil {
				return fmt.Errorf("failed to get actions from source: %w", err)
			}
			for _, act := range acts {
				if err := ctx.Store.AddAction(act); err != nil {
					return fmt.Errorf("failed to add action %s: %w", act.Name, err)
				}
				actions++
			}
		}
	}
	fmt.Printf("    Copied %d categories, %d actions\n", categories, actions)

	fmt.Println("  Copying completion marks...")
	marks, err := sourceStore.GetAllMarks()
	if err != nil {
		return fmt.Errorf("failed to get marks from source: %w", err)
	}
	for _, mark := range marks {
		if err := ctx.Store.EnsureMark(mark.ActionID, mark.Day, mark.CreatedAt); err != nil {
			return fmt.Errorf("failed to add mark %s: %w", mark.ID, err)
		}
	}
	fmt.Printf("    Copied %d marks\n", len(marks))

	fmt.Println("  Copying time sessions...")
	sessions, err := sourceStore.GetAllSessions()
	if err != nil {
		return fmt.Errorf("failed to get sessions from source: %w", err)
	}
	for _, session := range sessions {
		if err := ctx.Store.AddSession(session); err != nil {
			return fmt.Errorf("failed to add session %s: %w", session.ID, err)
		}
	}
	fmt.Printf("    Copied %d sessions\n", len(sessions))

	return nil
}
