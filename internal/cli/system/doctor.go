package system

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/routinely/internal/backup"
	"github.com/julianstephens/routinely/internal/calendar"
	"github.com/julianstephens/routinely/internal/cli"
	"github.com/julianstephens/routinely/internal/constants"
	"github.com/julianstephens/routinely/internal/migration"
	"github.com/julianstephens/routinely/internal/storage/sqlite"
	"github.com/julianstephens/routinely/internal/validation"
	"github.com/julianstephens/routinely/migrations"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	if dbReachable {
		if err := checkSchemaVersion(ctx); err != nil {
			fmt.Printf("❌ Schema version: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Schema version: OK\n")
		}
	} else {
		fmt.Printf("⊘ Schema version: SKIPPED (database not reachable)\n")
	}

	if _, ok := ctx.Store.(*sqlite.Store); ok {
		if err := checkBackupsPresent(ctx); err != nil {
			fmt.Printf("⚠ Backups present: WARNING\n")
			fmt.Printf("   %v\n", err)
		} else {
			fmt.Printf("✓ Backups present: OK\n")
		}
	}

	if dbReachable {
		if err := checkActionConfigurations(ctx); err != nil {
			fmt.Printf("❌ Action configuration: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Action configuration: OK\n")
		}
	} else {
		fmt.Printf("⊘ Action configuration: SKIPPED (database not reachable)\n")
	}

	if dbReachable {
		if err := checkSessionIntegrity(ctx); err != nil {
			fmt.Printf("❌ Session integrity: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Session integrity: OK\n")
		}
	} else {
		fmt.Printf("⊘ Session integrity: SKIPPED (database not reachable)\n")
	}

	if err := checkClockTimezone(ctx); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	if err := checkSingleWriter(); err != nil {
		fmt.Printf("⚠ Single writer: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Single writer: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	return ctx.Store.Load()
}

func checkSchemaVersion(ctx *cli.Context) error {
	store, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		// Postgres stores validate the version on Load already.
		return nil
	}
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return err
	}
	return migration.NewRunner(store.GetDB(), subFS).ValidateVersion()
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %v", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found, run 'routinely backup create'")
	}
	newest := backups[0].Timestamp
	if time.Since(newest) > 7*24*time.Hour {
		return fmt.Errorf("newest backup is older than a week (%s)", newest.Format(constants.DateFormat))
	}
	return nil
}

// checkActionConfigurations re-validates every stored action. Storage content
// written by older versions or by hand can violate the edit-boundary rules.
func checkActionConfigurations(ctx *cli.Context) error {
	actions, err := ctx.Store.GetAllActions()
	if err != nil {
		return err
	}
	bad := 0
	for _, a := range actions {
		if res := validation.CheckAction(a); !res.OK() {
			fmt.Printf("   action %q: %v\n", a.Name, res.Err())
			bad++
		}
	}
	if bad > 0 {
		return fmt.Errorf("%d action(s) have invalid configurations", bad)
	}
	return nil
}

func checkSessionIntegrity(ctx *cli.Context) error {
	sessions, err := ctx.Store.GetAllSessions()
	if err != nil {
		return err
	}
	ongoing := make(map[string]int)
	for _, s := range sessions {
		if s.Ongoing() {
			ongoing[s.ActionID]++
		}
		if s.DurationMin < 0 {
			return fmt.Errorf("session %s has a negative duration (%d)", s.ID, s.DurationMin)
		}
		if _, err := calendar.ParseDay(s.Day, time.UTC); err != nil {
			return fmt.Errorf("session %s has an invalid day %q", s.ID, s.Day)
		}
	}
	for actionID, n := range ongoing {
		if n > 1 {
			return fmt.Errorf("action %s has %d ongoing sessions, expected at most one", actionID, n)
		}
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		// Settings being unreadable is covered by the reachability check.
		return nil
	}
	if !calendar.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("configured timezone %q is not a valid IANA name", settings.Timezone)
	}
	return nil
}

// checkSingleWriter scans the process table for another routinely process.
// SQLite has no server arbitrating writers, so two processes mutating the
// same file can interleave badly.
func checkSingleWriter() error {
	processes, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("could not read process table: %v", err)
	}
	self := os.Getpid()
	for _, p := range processes {
		if p.Pid() == self {
			continue
		}
		name := strings.TrimSuffix(filepath.Base(p.Executable()), ".exe")
		if name == constants.AppName {
			return fmt.Errorf("another routinely process is running (pid %d); concurrent writes can corrupt data", p.Pid())
		}
	}
	return nil
}
