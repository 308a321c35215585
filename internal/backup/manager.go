package backup

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/studyplan/internal/constants"
	"github.com/julianstephens/studyplan/internal/logger"
	"github.com/julianstephens/studyplan/internal/models"
)

// BackupInfo describes a snapshot file in the backup directory.
type BackupInfo struct {
	Path    string
	Date    time.Time
	Counter int
	Size    int64
	// Auto marks snapshots written by AutoExport.
	Auto bool
}

// Manager writes, lists and rotates snapshot files in one directory.
type Manager struct {
	dir string
	now func() time.Time
}

func NewManager(dir string) *Manager {
	return &Manager{
		dir: dir,
		now: time.Now,
	}
}

// WithClock makes file names follow now instead of the wall clock.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// GetBackupDir returns the backup directory path
func (m *Manager) GetBackupDir() string {
	return m.dir
}

// Export writes snap under the default file name. Later exports on the same
// day get the next counter suffix.
func (m *Manager) Export(snap Snapshot) (string, error) {
	return m.writeNext(constants.SnapshotFilePrefix, snap)
}

// AutoExport writes snap as an automatic snapshot and prunes automatic
// snapshots beyond MaxBackups. Manual exports are never pruned.
func (m *Manager) AutoExport(snap Snapshot) (string, error) {
	path, err := m.writeNext(constants.AutoSnapshotPrefix, snap)
	if err != nil {
		return "", err
	}
	if err := m.rotateBackups(); err != nil {
		logger.Warn("Failed to rotate old backups", "error", err)
	}
	return path, nil
}

// writeNext writes snap to the first name after the highest counter used
// today for prefix. Freed slots are never reused, so the newest file always
// sorts first.
func (m *Manager) writeNext(prefix string, snap Snapshot) (string, error) {
	if err := os.MkdirAll(m.dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	backups, err := m.ListBackups()
	if err != nil {
		return "", err
	}
	day := m.now().Format(constants.DateFormat)
	auto := prefix == constants.AutoSnapshotPrefix
	next := 0
	for _, b := range backups {
		if b.Auto == auto && b.Date.Format(constants.DateFormat) == day && b.Counter >= next {
			next = b.Counter + 1
		}
	}

	name := prefix + day + constants.SnapshotFileSuffix
	if next > 0 {
		name = fmt.Sprintf("%s%s-%d%s", prefix, day, next, constants.SnapshotFileSuffix)
	}
	path := filepath.Join(m.dir, name)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("backup file already exists: %s", path)
	}

	if err := ExportTo(path, snap); err != nil {
		return "", err
	}
	return path, nil
}

// ExportTo writes snap to path through a temp file and rename.
func ExportTo(path string, snap Snapshot) error {
	var buf bytes.Buffer
	if err := Encode(&buf, snap); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".export-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write backup: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set backup permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	return nil
}

// ReadFile loads and decodes a backup document from path.
func ReadFile(path string) ([]models.Event, []models.Exam, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read backup file: %w", err)
	}
	return Decode(data)
}

// Resolve finds a snapshot file given as a path or as a file name inside the
// backup directory, in that order.
func (m *Manager) Resolve(file string) (string, error) {
	if _, err := os.Stat(file); err == nil {
		return filepath.Abs(file)
	}
	if !filepath.IsAbs(file) {
		candidate := filepath.Join(m.dir, file)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		return "", fmt.Errorf("snapshot file not found: tried current directory and %s", m.dir)
	}
	return "", fmt.Errorf("snapshot file not found: %s", file)
}

// ListBackups returns snapshot files sorted newest first. Files that do not
// follow the naming scheme are ignored.
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	if _, err := os.Stat(m.dir); os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}

	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []BackupInfo{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		date, counter, auto, ok := parseFileName(entry.Name())
		if !ok {
			continue
		}
		path := filepath.Join(m.dir, entry.Name())
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{
			Path:    path,
			Date:    date,
			Counter: counter,
			Size:    info.Size(),
			Auto:    auto,
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		if !backups[i].Date.Equal(backups[j].Date) {
			return backups[i].Date.After(backups[j].Date)
		}
		return backups[i].Counter > backups[j].Counter
	})
	return backups, nil
}

// parseFileName splits "<prefix>YYYY-MM-DD[-N]<suffix>" into its date and
// counter, and reports whether prefix is the automatic one.
func parseFileName(name string) (date time.Time, counter int, auto bool, ok bool) {
	var stem string
	switch {
	case strings.HasPrefix(name, constants.SnapshotFilePrefix):
		stem = strings.TrimPrefix(name, constants.SnapshotFilePrefix)
	case strings.HasPrefix(name, constants.AutoSnapshotPrefix):
		stem = strings.TrimPrefix(name, constants.AutoSnapshotPrefix)
		auto = true
	default:
		return time.Time{}, 0, false, false
	}
	if !strings.HasSuffix(stem, constants.SnapshotFileSuffix) {
		return time.Time{}, 0, false, false
	}
	stem = strings.TrimSuffix(stem, constants.SnapshotFileSuffix)
	if len(stem) < len(constants.DateFormat) {
		return time.Time{}, 0, false, false
	}

	date, err := time.Parse(constants.DateFormat, stem[:len(constants.DateFormat)])
	if err != nil {
		return time.Time{}, 0, false, false
	}
	rest := stem[len(constants.DateFormat):]
	if rest == "" {
		return date, 0, auto, true
	}
	if !strings.HasPrefix(rest, "-") {
		return time.Time{}, 0, false, false
	}
	counter, err = strconv.Atoi(rest[1:])
	if err != nil || counter < 1 {
		return time.Time{}, 0, false, false
	}
	return date, counter, auto, true
}

// rotateBackups removes automatic snapshots beyond the retention limit
func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}

	kept := 0
	for _, b := range backups {
		if !b.Auto {
			continue
		}
		kept++
		if kept <= constants.MaxBackups {
			continue
		}
		if err := os.Remove(b.Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", b.Path, err)
		}
	}
	return nil
}
