package lock

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/studyplan/internal/constants"
	"github.com/julianstephens/studyplan/internal/logger"
)

// ErrLocked is returned when another studyplan TUI holds the lock.
var ErrLocked = errors.New("studyplan data is in use by another session")

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

// Lock is a held lockfile. Release removes it.
type Lock struct {
	path string
	pid  int
}

func path(dir string) string {
	return filepath.Join(dir, constants.LockfileName)
}

// Acquire writes the current PID into the lockfile in dir. Creation is
// exclusive, so of two sessions starting together only one gets the lock.
// A lockfile left by a process that is no longer running is replaced.
func Acquire(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	p := path(dir)
	pid := getpidFunc()
	for attempt := 0; attempt < 3; attempt++ {
		err := create(p, pid)
		if err == nil {
			return &Lock{path: p, pid: pid}, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to write lockfile: %w", err)
		}

		seen, err := os.ReadFile(p)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read lockfile: %w", err)
		}
		if err := Check(dir); err != nil {
			return nil, err
		}
		if err := moveAside(p, seen, pid); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w (lockfile keeps changing)", ErrLocked)
}

// create atomically places a lockfile holding pid at p. It fails with an
// os.IsExist error when p is already present.
func create(p string, pid int) error {
	tmp, err := os.CreateTemp(filepath.Dir(p), ".lock-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(strconv.Itoa(pid)); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Link(tmp.Name(), p)
}

// moveAside removes the stale lockfile at p whose content was seen. The
// rename is atomic, so only one racing session moves a given file. If the
// moved file is not the one seen, another session locked in between and its
// lockfile is put back.
func moveAside(p string, seen []byte, pid int) error {
	aside := fmt.Sprintf("%s.stale-%d", p, pid)
	if err := os.Rename(p, aside); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to replace stale lockfile: %w", err)
	}
	defer os.Remove(aside)

	moved, err := os.ReadFile(aside)
	if err != nil {
		return fmt.Errorf("failed to read lockfile: %w", err)
	}
	if !bytes.Equal(moved, seen) {
		if err := os.Link(aside, p); err != nil && !os.IsExist(err) {
			logger.Warn("Failed to restore lockfile", "path", p, "error", err)
		}
		return fmt.Errorf("%w (lockfile changed while replacing it)", ErrLocked)
	}
	logger.Debug("Replaced stale lockfile", "path", p, "content", string(seen))
	return nil
}

// Release removes the lockfile if it still belongs to this lock.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	owner, err := readPID(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if owner != l.pid {
		logger.Warn("Lockfile owned by another process, leaving it", "path", l.path, "pid", owner)
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}

// Check returns ErrLocked if a live studyplan process other than this one
// holds the lockfile in dir.
func Check(dir string) error {
	pid, err := readPID(path(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		logger.Warn("Ignoring unreadable lockfile", "path", path(dir), "error", err)
		return nil
	}
	if pid == getpidFunc() {
		return nil
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return nil
	}
	if !strings.HasPrefix(process.Executable(), constants.AppName) {
		logger.Debug("Stale lockfile points at unrelated process", "pid", pid, "executable", process.Executable())
		return nil
	}
	return fmt.Errorf("%w (pid %d)", ErrLocked, pid)
}

func readPID(p string) (int, error) {
	content, err := os.ReadFile(p)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(content)))
	if err != nil {
		return 0, fmt.Errorf("invalid process ID in lockfile: %w", err)
	}
	return pid, nil
}
