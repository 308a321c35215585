package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/studyplan/internal/models"
)

func sampleData() ([]models.Event, []models.Exam) {
	grade := 1.7
	percent := 87
	events := []models.Event{
		{ID: models.NewID(1), Title: "Anatomy lecture", Category: models.CategoryLecture, Date: "2024-05-06", StartTime: "08:15", EndTime: "09:45"},
		{ID: models.StringID("1_2024-05-13"), Title: "Anatomy lecture", Category: models.CategoryLecture, Date: "2024-05-13", GeneratedFromRecurring: true, ParentID: models.NewID(1)},
	}
	exams := []models.Exam{
		{ID: models.NewID(2), Subject: "Anatomy I", Date: "2024-09-15", Status: models.ExamPassed, Grade: &grade, Percent: &percent, Semester: 1, Attempt: 1},
	}
	return events, exams
}

func TestNewSnapshot(t *testing.T) {
	events, exams := sampleData()
	now := time.Date(2024, 5, 6, 12, 30, 0, 0, time.FixedZone("CEST", 2*3600))

	snap := NewSnapshot(events, exams, now)

	if snap.Version != "1.0" {
		t.Errorf("Version = %q, want 1.0", snap.Version)
	}
	if snap.ExportDate != "2024-05-06T10:30:00.000Z" {
		t.Errorf("ExportDate = %q", snap.ExportDate)
	}
	if len(snap.Events) != 1 || snap.Events[0].ID.String() != "1" {
		t.Errorf("Events = %+v, want generated occurrence dropped", snap.Events)
	}
	if len(snap.Exams) != 1 {
		t.Errorf("Exams = %+v", snap.Exams)
	}
}

func TestNewSnapshotEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, NewSnapshot(nil, nil, time.Now())); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `"events": []`) || !strings.Contains(out, `"exams": []`) {
		t.Errorf("empty snapshot should encode empty lists, got:\n%s", out)
	}
}

func TestEncodeDecode(t *testing.T) {
	events, exams := sampleData()
	var buf bytes.Buffer
	if err := Encode(&buf, NewSnapshot(events, exams, time.Now())); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !strings.Contains(buf.String(), "\n  \"events\"") {
		t.Errorf("Encode() output is not indented with two spaces")
	}

	var generic map[string]any
	if err := json.Unmarshal(buf.Bytes(), &generic); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"events", "exams", "exportDate", "version"} {
		if _, ok := generic[key]; !ok {
			t.Errorf("encoded snapshot missing %q", key)
		}
	}

	gotEvents, gotExams, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(gotEvents) != 1 || gotEvents[0].StartTime != "08:15" {
		t.Errorf("Decode() events = %+v", gotEvents)
	}
	if len(gotExams) != 1 || gotExams[0].Grade == nil || *gotExams[0].Grade != 1.7 {
		t.Errorf("Decode() exams = %+v", gotExams)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantEvents int
		wantExams  int
		wantErr    error
	}{
		{
			name:  "both lists empty",
			input: `{"events":[],"exams":[]}`,
		},
		{
			name:       "legacy document",
			input:      `{"events":[{"id":1,"title":"Histo","category":"praktikum","date":"2024-01-02"}],"exams":[{"id":2,"subject":"Physio","date":"2024-02-01","status":"nicht-bestanden","grade":5,"percent":null,"semester":2,"attempt":1}],"exportDate":"2024-01-01T00:00:00.000Z","version":"1.0"}`,
			wantEvents: 1,
			wantExams:  1,
		},
		{
			name:    "missing exams",
			input:   `{"events":[]}`,
			wantErr: ErrInvalidDocument,
		},
		{
			name:    "null events",
			input:   `{"events":null,"exams":[]}`,
			wantErr: ErrInvalidDocument,
		},
		{
			name:    "events not a list",
			input:   `{"events":{},"exams":[]}`,
			wantErr: ErrInvalidDocument,
		},
		{
			name:    "not json",
			input:   `hello`,
			wantErr: ErrInvalidDocument,
		},
		{
			name:    "top-level list",
			input:   `[]`,
			wantErr: ErrInvalidDocument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, exams, err := Decode([]byte(tt.input))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Decode() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if len(events) != tt.wantEvents || len(exams) != tt.wantExams {
				t.Errorf("Decode() = %d events, %d exams", len(events), len(exams))
			}
		})
	}
}

func TestDecodeNormalizesLegacyValues(t *testing.T) {
	events, exams, err := Decode([]byte(`{"events":[{"id":"a","title":"x","category":"sprechstunde","date":"2024-01-02"}],"exams":[{"id":3,"subject":"y","date":"2024-01-03","status":"bestanden","grade":null,"percent":null,"semester":1,"attempt":1}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if events[0].Category != models.CategoryOfficeHours {
		t.Errorf("category = %q", events[0].Category)
	}
	if exams[0].Status != models.ExamPassed || exams[0].ID.String() != "3" {
		t.Errorf("exam = %+v", exams[0])
	}
}

func TestRoundTripKeepsIDKinds(t *testing.T) {
	in := `{"events":[{"id":"42","title":"x","category":"lecture","date":"2024-01-02"}],"exams":[{"id":1.0,"subject":"y","date":"2024-01-03","status":"planned","semester":1,"attempt":1}]}`
	events, exams, err := Decode([]byte(in))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, NewSnapshot(events, exams, time.Now())); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `"id": "42"`) {
		t.Errorf("string id written as a number:\n%s", out)
	}
	if !strings.Contains(out, `"id": 1.0`) {
		t.Errorf("numeric id written as a string:\n%s", out)
	}
}

func TestFileName(t *testing.T) {
	got := FileName(time.Date(2024, 3, 9, 23, 59, 0, 0, time.Local))
	if got != "medstudyplanner_backup_2024-03-09.json" {
		t.Errorf("FileName() = %q", got)
	}
}
