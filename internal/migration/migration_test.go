package migration

import (
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sqlFile(content string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(content)}
}

func TestReadMigrationFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"0002_add_column.sql": sqlFile("ALTER TABLE t ADD COLUMN b INTEGER;"),
		"0001_init.sql":       sqlFile("CREATE TABLE t (a INTEGER);"),
		"README.md":           sqlFile("not a migration"),
	}
	r := NewRunner(openTestDB(t), fsys)

	migrations, err := r.ReadMigrationFiles()
	if err != nil {
		t.Fatalf("ReadMigrationFiles error: %v", err)
	}
	if len(migrations) != 2 {
		t.Fatalf("got %d migrations, want 2", len(migrations))
	}
	if migrations[0].Version != 1 || migrations[0].Name != "init" {
		t.Errorf("first migration = %d/%s, want 1/init", migrations[0].Version, migrations[0].Name)
	}
	if migrations[1].Version != 2 {
		t.Errorf("second migration version = %d, want 2", migrations[1].Version)
	}
}

func TestReadMigrationFilesRejectsBadNames(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{"no underscore", fstest.MapFS{"0001.sql": sqlFile("SELECT 1;")}},
		{"non-numeric version", fstest.MapFS{"abc_init.sql": sqlFile("SELECT 1;")}},
		{"zero version", fstest.MapFS{"0000_init.sql": sqlFile("SELECT 1;")}},
		{"duplicate version", fstest.MapFS{
			"0001_a.sql": sqlFile("SELECT 1;"),
			"001_b.sql":  sqlFile("SELECT 1;"),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRunner(openTestDB(t), tt.fsys)
			if _, err := r.ReadMigrationFiles(); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestApplyMigrations(t *testing.T) {
	db := openTestDB(t)
	fsys := fstest.MapFS{
		"0001_init.sql":       sqlFile("CREATE TABLE t (a INTEGER);"),
		"0002_add_column.sql": sqlFile("ALTER TABLE t ADD COLUMN b INTEGER;"),
	}
	r := NewRunner(db, fsys)

	applied, err := r.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations error: %v", err)
	}
	if applied != 2 {
		t.Errorf("applied = %d, want 2", applied)
	}

	version, err := r.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion error: %v", err)
	}
	if version != 2 {
		t.Errorf("version = %d, want 2", version)
	}

	// Re-running is a no-op.
	applied, err = r.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("second ApplyMigrations error: %v", err)
	}
	if applied != 0 {
		t.Errorf("second run applied = %d, want 0", applied)
	}
}

func TestApplyMigrationsPicksUpWhereItLeftOff(t *testing.T) {
	db := openTestDB(t)
	first := fstest.MapFS{"0001_init.sql": sqlFile("CREATE TABLE t (a INTEGER);")}
	if _, err := NewRunner(db, first).ApplyMigrations(nil); err != nil {
		t.Fatalf("initial ApplyMigrations error: %v", err)
	}

	both := fstest.MapFS{
		"0001_init.sql":       sqlFile("CREATE TABLE t (a INTEGER);"),
		"0002_add_column.sql": sqlFile("ALTER TABLE t ADD COLUMN b INTEGER;"),
	}
	applied, err := NewRunner(db, both).ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations error: %v", err)
	}
	if applied != 1 {
		t.Errorf("applied = %d, want 1", applied)
	}
}

func TestFailedMigrationRollsBack(t *testing.T) {
	db := openTestDB(t)
	fsys := fstest.MapFS{
		"0001_init.sql": sqlFile("CREATE TABLE t (a INTEGER);"),
		"0002_bad.sql":  sqlFile("THIS IS NOT SQL;"),
	}
	r := NewRunner(db, fsys)

	applied, err := r.ApplyMigrations(nil)
	if err == nil {
		t.Fatal("expected the bad migration to fail")
	}
	if applied != 1 {
		t.Errorf("applied = %d, want 1 before the failure", applied)
	}

	version, err := r.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion error: %v", err)
	}
	if version != 1 {
		t.Errorf("version = %d, want 1 after rollback", version)
	}
}

func TestValidateVersion(t *testing.T) {
	db := openTestDB(t)
	fsys := fstest.MapFS{"0001_init.sql": sqlFile("CREATE TABLE t (a INTEGER);")}
	r := NewRunner(db, fsys)

	// Behind: nothing applied yet.
	if err := r.ValidateVersion(); err == nil {
		t.Error("ValidateVersion on a fresh database should report it is behind")
	}

	if _, err := r.ApplyMigrations(nil); err != nil {
		t.Fatalf("ApplyMigrations error: %v", err)
	}
	if err := r.ValidateVersion(); err != nil {
		t.Errorf("ValidateVersion on an up-to-date database: %v", err)
	}

	// Newer than supported: the schema outruns this binary's migrations.
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatal(err)
	}
	if err := r.ValidateVersion(); err == nil {
		t.Error("ValidateVersion should reject a newer schema")
	}
}
