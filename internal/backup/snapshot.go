package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/julianstephens/studyplan/internal/constants"
	"github.com/julianstephens/studyplan/internal/models"
)

// ErrInvalidDocument is returned when a backup lacks its events or exams list.
var ErrInvalidDocument = errors.New("invalid backup document")

// exportDateLayout matches JavaScript's Date.toISOString.
const exportDateLayout = "2006-01-02T15:04:05.000Z07:00"

// Snapshot is the portable export document.
type Snapshot struct {
	Events     []models.Event `json:"events"`
	Exams      []models.Exam  `json:"exams"`
	ExportDate string         `json:"exportDate"`
	Version    string         `json:"version"`
}

// NewSnapshot captures events and exams at now. Generated recurrence
// occurrences are left out.
func NewSnapshot(events []models.Event, exams []models.Exam, now time.Time) Snapshot {
	snap := Snapshot{
		Events:     make([]models.Event, 0, len(events)),
		Exams:      make([]models.Exam, 0, len(exams)),
		ExportDate: now.UTC().Format(exportDateLayout),
		Version:    constants.SnapshotVersion,
	}
	for _, e := range events {
		if !e.GeneratedFromRecurring {
			snap.Events = append(snap.Events, e)
		}
	}
	snap.Exams = append(snap.Exams, exams...)
	return snap
}

// FileName is the default export name for a snapshot taken on now's date.
func FileName(now time.Time) string {
	return constants.SnapshotFilePrefix + now.Format(constants.DateFormat) + constants.SnapshotFileSuffix
}

// Encode writes snap as indented JSON.
func Encode(w io.Writer, snap Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}
	return nil
}

// Decode parses a backup document. Both lists must be present; extra fields
// such as exportDate and version are not checked.
func Decode(data []byte) ([]models.Event, []models.Exam, error) {
	var doc struct {
		Events json.RawMessage `json:"events"`
		Exams  json.RawMessage `json:"exams"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if isNull(doc.Events) || isNull(doc.Exams) {
		return nil, nil, ErrInvalidDocument
	}

	var events []models.Event
	if err := json.Unmarshal(doc.Events, &events); err != nil {
		return nil, nil, fmt.Errorf("%w: events: %v", ErrInvalidDocument, err)
	}
	var exams []models.Exam
	if err := json.Unmarshal(doc.Exams, &exams); err != nil {
		return nil, nil, fmt.Errorf("%w: exams: %v", ErrInvalidDocument, err)
	}
	return events, exams, nil
}

func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}
