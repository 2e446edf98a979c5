// Package cli implements the routinely command tree.
package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/routinely/internal/backup"
	"github.com/julianstephens/routinely/internal/calendar"
	"github.com/julianstephens/routinely/internal/logger"
	"github.com/julianstephens/routinely/internal/models"
	"github.com/julianstephens/routinely/internal/progress"
	"github.com/julianstephens/routinely/internal/storage"
)

type Context struct {
	Store storage.Provider
	Clock calendar.Clock
	Debug bool
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// LoadSnapshot materializes the complete action, mark, and session collections
// the aggregators run over.
func (c *Context) LoadSnapshot() (*progress.Snapshot, error) {
	actions, err := c.Store.GetAllActions()
	if err != nil {
		return nil, fmt.Errorf("failed to load actions: %w", err)
	}
	marks, err := c.Store.GetAllMarks()
	if err != nil {
		return nil, fmt.Errorf("failed to load completion marks: %w", err)
	}
	sessions, err := c.Store.GetAllSessions()
	if err != nil {
		return nil, fmt.Errorf("failed to load time sessions: %w", err)
	}
	return progress.NewSnapshot(actions, marks, sessions), nil
}

// CurrentYear resolves the tracked year commands operate on: the explicit
// flag when given, the configured default otherwise, falling back to the
// clock's calendar year.
func (c *Context) CurrentYear(flag int) (models.Year, error) {
	year := flag
	if year == 0 {
		settings, err := c.Store.GetSettings()
		if err != nil {
			return models.Year{}, fmt.Errorf("failed to load settings: %w", err)
		}
		year = settings.DefaultYear
	}
	if year == 0 {
		year = c.Clock.Now().Year()
	}
	y, err := c.Store.GetYear(year)
	if err != nil {
		return models.Year{}, fmt.Errorf("year %d is not tracked, add it with 'routinely year add %d'", year, year)
	}
	return y, nil
}

// ResolveDay parses an optional --date flag, defaulting to today.
func (c *Context) ResolveDay(flag string) (time.Time, error) {
	now := c.Clock.Now()
	if flag == "" {
		return calendar.StartOfDay(now), nil
	}
	day, err := calendar.ParseDay(flag, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", flag)
	}
	return day, nil
}

// FindAction looks an action up by name across all categories.
func (c *Context) FindAction(name string) (models.RoutineAction, error) {
	action, err := c.Store.GetActionByName(name)
	if err != nil {
		return models.RoutineAction{}, fmt.Errorf("action %q not found", name)
	}
	return action, nil
}
