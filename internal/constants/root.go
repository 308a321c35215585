package constants

import (
	tea "github.com/charmbracelet/bubbletea"
)

// SessionState represents the current state of the TUI application
type SessionState int

// ConfirmationMsg is a message to trigger a confirmation dialog
type ConfirmationMsg struct {
	Message string
	Action  func() tea.Cmd
}

const (
	AppName            = "studyplan"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/studyplan"
	DefaultDBPath      = "~/.config/studyplan/studyplan.db"
	DefaultConfigFile  = "~/.config/studyplan/config.yaml"
	Version            = "v0.1.0"

	// DateFormat is the canonical date key format (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the optional start/end time format (HH:MM)
	TimeFormat = "15:04"

	// MonthFormat is used by --month flags (YYYY-MM)
	MonthFormat = "2006-01"

	// Store keys
	EventsKey = "medStudyEvents"
	ExamsKey  = "medStudyExams"

	// Snapshot constants
	SnapshotVersion    = "1.0"
	SnapshotFilePrefix = "medstudyplanner_backup_"
	AutoSnapshotPrefix = "medstudyplanner_autobackup_"
	SnapshotFileSuffix = ".json"

	// Backup constants
	MaxBackups    = 14
	BackupDirName = "backups"

	// Derived view defaults
	DefaultUpcomingLimit = 5

	// Calendar grid
	GridDays = 42

	// Lock constants
	LockfileName = "studyplan-tui.lock"
)

// Session States
const (
	StateDashboard SessionState = iota
	StateCalendar
	StateEvents
	StateExams
	StateAddEvent
	StateAddExam
	StateImport
	StateConfirmation
)

// Tabs lists the top-level views in display order.
var Tabs = []SessionState{StateDashboard, StateCalendar, StateEvents, StateExams}
