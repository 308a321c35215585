package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/studyplan/internal/constants"
)

func newTestManager(t *testing.T, now time.Time) *Manager {
	t.Helper()
	mgr := NewManager(filepath.Join(t.TempDir(), constants.BackupDirName))
	mgr.now = func() time.Time { return now }
	return mgr
}

func TestExport(t *testing.T) {
	now := time.Date(2024, 5, 6, 9, 0, 0, 0, time.Local)
	mgr := newTestManager(t, now)
	events, exams := sampleData()

	path, err := mgr.Export(NewSnapshot(events, exams, now))
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if filepath.Base(path) != "medstudyplanner_backup_2024-05-06.json" {
		t.Errorf("Export wrote %s", filepath.Base(path))
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("backup file was not created: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("backup permissions = %o, want 600", info.Mode().Perm())
	}

	gotEvents, gotExams, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(gotEvents) != 1 || len(gotExams) != 1 {
		t.Errorf("ReadFile = %d events, %d exams", len(gotEvents), len(gotExams))
	}
}

func TestUniqueBackupFilenames(t *testing.T) {
	now := time.Date(2024, 5, 6, 9, 0, 0, 0, time.Local)
	mgr := newTestManager(t, now)

	paths := make(map[string]bool)
	for i := 0; i < 5; i++ {
		path, err := mgr.Export(NewSnapshot(nil, nil, now))
		if err != nil {
			t.Fatalf("Export #%d failed: %v", i, err)
		}
		name := filepath.Base(path)
		if paths[name] {
			t.Errorf("duplicate backup filename: %s", name)
		}
		paths[name] = true
	}
	if !paths["medstudyplanner_backup_2024-05-06-4.json"] {
		t.Errorf("expected counter suffix up to 4, got %v", paths)
	}
}

func TestListBackups(t *testing.T) {
	mgr := newTestManager(t, time.Now())

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected no backups in a missing directory, got %d", len(backups))
	}

	if err := os.MkdirAll(mgr.GetBackupDir(), 0700); err != nil {
		t.Fatal(err)
	}
	names := []string{
		"medstudyplanner_backup_2024-05-01.json",
		"medstudyplanner_backup_2024-05-03.json",
		"medstudyplanner_backup_2024-05-03-2.json",
		"medstudyplanner_backup_2024-05-03-1.json",
		"medstudyplanner_autobackup_2024-05-02.json",
		"medstudyplanner_backup_notadate.json",
		"medstudyplanner_backup_2024-05-03-x.json",
		"notes.txt",
	}
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), n), []byte("{}"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	backups, err = mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"medstudyplanner_backup_2024-05-03-2.json",
		"medstudyplanner_backup_2024-05-03-1.json",
		"medstudyplanner_backup_2024-05-03.json",
		"medstudyplanner_autobackup_2024-05-02.json",
		"medstudyplanner_backup_2024-05-01.json",
	}
	if len(backups) != len(want) {
		t.Fatalf("ListBackups returned %d entries, want %d", len(backups), len(want))
	}
	for i, b := range backups {
		if filepath.Base(b.Path) != want[i] {
			t.Errorf("backup %d = %s, want %s", i, filepath.Base(b.Path), want[i])
		}
	}
}

func TestBackupRotation(t *testing.T) {
	start := time.Date(2024, 1, 1, 8, 0, 0, 0, time.Local)
	mgr := newTestManager(t, start)

	numBackups := constants.MaxBackups + 5
	for i := 0; i < numBackups; i++ {
		day := start.AddDate(0, 0, i)
		mgr.now = func() time.Time { return day }
		if _, err := mgr.AutoExport(NewSnapshot(nil, nil, day)); err != nil {
			t.Fatalf("AutoExport #%d failed: %v", i, err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Errorf("expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}

	newest := start.AddDate(0, 0, numBackups-1).Format(constants.DateFormat)
	if backups[0].Date.Format(constants.DateFormat) != newest {
		t.Errorf("newest backup = %s, want %s", backups[0].Date.Format(constants.DateFormat), newest)
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Date.After(backups[i-1].Date) {
			t.Errorf("backups are not sorted correctly: backup %d is newer than backup %d", i, i-1)
		}
	}
}

func TestAutoExportSameDayKeepsNewest(t *testing.T) {
	now := time.Date(2024, 5, 6, 9, 0, 0, 0, time.Local)
	mgr := newTestManager(t, now)

	var last string
	for i := 0; i < constants.MaxBackups+5; i++ {
		path, err := mgr.AutoExport(NewSnapshot(nil, nil, now))
		if err != nil {
			t.Fatalf("AutoExport #%d failed: %v", i, err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("AutoExport #%d: snapshot %s removed right after writing: %v", i, filepath.Base(path), err)
		}
		last = path
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != constants.MaxBackups {
		t.Fatalf("expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}
	if backups[0].Path != last {
		t.Errorf("newest backup = %s, want %s", filepath.Base(backups[0].Path), filepath.Base(last))
	}
	want := fmt.Sprintf("medstudyplanner_autobackup_2024-05-06-%d.json", constants.MaxBackups+4)
	if filepath.Base(last) != want {
		t.Errorf("last automatic snapshot = %s, want %s", filepath.Base(last), want)
	}
}

func TestRotationKeepsManualExports(t *testing.T) {
	now := time.Date(2024, 5, 6, 9, 0, 0, 0, time.Local)
	mgr := newTestManager(t, now)

	manual, err := mgr.Export(NewSnapshot(nil, nil, now))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < constants.MaxBackups+2; i++ {
		if _, err := mgr.AutoExport(NewSnapshot(nil, nil, now)); err != nil {
			t.Fatalf("AutoExport #%d failed: %v", i, err)
		}
	}

	if _, err := os.Stat(manual); err != nil {
		t.Fatalf("manual export removed by rotation: %v", err)
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	auto := 0
	for _, b := range backups {
		if b.Auto {
			auto++
		}
	}
	if auto != constants.MaxBackups || len(backups) != constants.MaxBackups+1 {
		t.Errorf("got %d automatic of %d backups, want %d of %d", auto, len(backups), constants.MaxBackups, constants.MaxBackups+1)
	}
}

func TestExportToMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.json")
	if err := ExportTo(path, NewSnapshot(nil, nil, time.Now())); err == nil {
		t.Error("ExportTo should fail when the directory does not exist")
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, _, err := ReadFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("ReadFile should fail for a missing file")
	}
}

func TestResolve(t *testing.T) {
	now := time.Date(2024, 5, 6, 9, 0, 0, 0, time.Local)
	mgr := newTestManager(t, now)
	events, exams := sampleData()
	path, err := mgr.Export(NewSnapshot(events, exams, now))
	if err != nil {
		t.Fatal(err)
	}

	got, err := mgr.Resolve(filepath.Base(path))
	if err != nil {
		t.Fatalf("Resolve(name) error = %v", err)
	}
	if got != path {
		t.Errorf("Resolve(name) = %s, want %s", got, path)
	}

	if got, err := mgr.Resolve(path); err != nil || got != path {
		t.Errorf("Resolve(path) = %s, %v", got, err)
	}
	if _, err := mgr.Resolve("missing.json"); err == nil {
		t.Error("Resolve of a missing file should fail")
	}
	if _, err := mgr.Resolve(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Resolve of a missing absolute path should fail")
	}
}
