package system

import (
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/julianstephens/routinely/internal/cli"
	"github.com/julianstephens/routinely/internal/migration"
	"github.com/julianstephens/routinely/internal/storage/postgres"
	"github.com/julianstephens/routinely/internal/storage/sqlite"
	"github.com/julianstephens/routinely/migrations"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	// Open without schema validation: a behind-schema database is exactly
	// what this command exists to fix.
	var db *sql.DB
	var dir string
	switch store := ctx.Store.(type) {
	case *sqlite.Store:
		if err := store.Open(); err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		db, dir = store.GetDB(), "sqlite"
	case *postgres.Store:
		if err := store.Open(); err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		db, dir = store.GetDB(), "postgres"
	default:
		return fmt.Errorf("unsupported storage backend for migrate")
	}
	defer ctx.Store.Close()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	subFS, err := fs.Sub(migrations.FS, dir)
	if err != nil {
		return fmt.Errorf("failed to access %s migrations: %w", dir, err)
	}

	runner := migration.NewRunner(db, subFS)
	count, err := runner.ApplyMigrations(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
