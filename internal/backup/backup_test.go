package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/routinely/internal/constants"
	"github.com/julianstephens/routinely/internal/storage/sqlite"
)

func setupDatabase(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	store.Close()
	return dbPath
}

func TestCreateBackup(t *testing.T) {
	dbPath := setupDatabase(t)
	mgr := NewManager(dbPath)

	path, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("backup file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("backup file is empty")
	}
	if filepath.Dir(path) != mgr.BackupDir() {
		t.Errorf("backup written to %s, want %s", filepath.Dir(path), mgr.BackupDir())
	}
}

func TestCreateBackupMissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("CreateBackup without a database should fail")
	}
}

func TestListBackupsNewestFirst(t *testing.T) {
	dbPath := setupDatabase(t)
	mgr := NewManager(dbPath)

	if backups, err := mgr.ListBackups(); err != nil || len(backups) != 0 {
		t.Fatalf("ListBackups before any backup = %v, %v; want empty, nil", backups, err)
	}

	// Write files with known stamps rather than racing the wall clock.
	if err := os.MkdirAll(mgr.BackupDir(), 0700); err != nil {
		t.Fatal(err)
	}
	for _, stamp := range []string{"20260820-0900", "20260824-1730", "20260822-120501"} {
		name := constants.BackupFilePrefix + stamp + constants.BackupFileSuffix
		if err := os.WriteFile(filepath.Join(mgr.BackupDir(), name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}
	// Files that don't look like backups are ignored.
	if err := os.WriteFile(filepath.Join(mgr.BackupDir(), "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups error: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("got %d backups, want 3", len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backups out of order: %v before %v", backups[i-1].Timestamp, backups[i].Timestamp)
		}
	}
	want := time.Date(2026, time.August, 24, 17, 30, 0, 0, time.UTC)
	if !backups[0].Timestamp.Equal(want) {
		t.Errorf("newest backup = %v, want %v", backups[0].Timestamp, want)
	}
}

func TestRotationPrunesOldBackups(t *testing.T) {
	dbPath := setupDatabase(t)
	mgr := NewManager(dbPath)

	if err := os.MkdirAll(mgr.BackupDir(), 0700); err != nil {
		t.Fatal(err)
	}
	base := time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < constants.MaxBackups+3; i++ {
		stamp := base.AddDate(0, 0, i).Format("20060102-1504")
		name := constants.BackupFilePrefix + stamp + constants.BackupFileSuffix
		if err := os.WriteFile(filepath.Join(mgr.BackupDir(), name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	// A fresh backup triggers rotation down to the retention limit.
	if _, err := mgr.CreateBackup(); err != nil {
		t.Fatalf("CreateBackup error: %v", err)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups error: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Errorf("got %d backups after rotation, want %d", len(backups), constants.MaxBackups)
	}
	// The survivors are the newest ones; the oldest seeded stamps are gone.
	oldest := base.Format("20060102-1504")
	for _, b := range backups {
		if filepath.Base(b.Path) == constants.BackupFilePrefix+oldest+constants.BackupFileSuffix {
			t.Error("oldest backup survived rotation")
		}
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath := setupDatabase(t)
	mgr := NewManager(dbPath)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup error: %v", err)
	}

	// Lose the live database, then restore it from the backup.
	if err := os.Remove(dbPath); err != nil {
		t.Fatal(err)
	}
	if err := mgr.RestoreBackup(backupPath); err != nil {
		t.Fatalf("RestoreBackup error: %v", err)
	}

	store := sqlite.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatalf("restored database failed to load: %v", err)
	}
	store.Close()
}

func TestRestoreRejectsMissingOrInvalidBackup(t *testing.T) {
	dbPath := setupDatabase(t)
	mgr := NewManager(dbPath)

	if err := mgr.RestoreBackup(filepath.Join(t.TempDir(), "nope.db")); err == nil {
		t.Error("restoring a missing backup should fail")
	}

	bad := filepath.Join(t.TempDir(), "bad.db")
	if err := os.WriteFile(bad, []byte("not a database"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := mgr.RestoreBackup(bad); err == nil {
		t.Error("restoring a corrupt backup should fail")
	}
}

func TestParseBackupTimestamp(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
	}{
		{constants.BackupFilePrefix + "20260824-1730" + constants.BackupFileSuffix, true},
		{constants.BackupFilePrefix + "20260824-173045" + constants.BackupFileSuffix, true},
		{constants.BackupFilePrefix + "20260824-173045-2" + constants.BackupFileSuffix, true},
		{constants.BackupFilePrefix + "garbage" + constants.BackupFileSuffix, false},
	}
	for _, tt := range tests {
		if _, ok := parseBackupTimestamp(tt.name); ok != tt.ok {
			t.Errorf("parseBackupTimestamp(%q) ok = %v, want %v", tt.name, ok, tt.ok)
		}
	}
}
