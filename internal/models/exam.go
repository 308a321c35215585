package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

type ExamStatus string

const (
	ExamPlanned ExamStatus = "planned"
	ExamPassed  ExamStatus = "passed"
	ExamFailed  ExamStatus = "failed"
)

var ExamStatuses = []ExamStatus{ExamPlanned, ExamPassed, ExamFailed}

var legacyStatuses = map[string]ExamStatus{
	"geplant":         ExamPlanned,
	"bestanden":       ExamPassed,
	"nicht-bestanden": ExamFailed,
}

func ParseExamStatus(s string) (ExamStatus, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, st := range ExamStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	if st, ok := legacyStatuses[s]; ok {
		return st, nil
	}
	return "", fmt.Errorf("unknown exam status %q", s)
}

func (s ExamStatus) Valid() bool {
	switch s {
	case ExamPlanned, ExamPassed, ExamFailed:
		return true
	}
	return false
}

func (s *ExamStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if parsed, err := ParseExamStatus(raw); err == nil {
		*s = parsed
		return nil
	}
	*s = ExamStatus(raw)
	return nil
}

type Exam struct {
	ID       ID         `json:"id"`
	Subject  string     `json:"subject"`
	Date     string     `json:"date"` // YYYY-MM-DD
	Status   ExamStatus `json:"status"`
	Grade    *float64   `json:"grade"`   // nil when absent; ignored while planned
	Percent  *int       `json:"percent"` // 0-100, nil when absent
	Semester int        `json:"semester"`
	Attempt  int        `json:"attempt"`
	Notes    string     `json:"notes,omitempty"`
}

// GradeApplicable reports whether a grade is meaningful for the exam's status.
func (e Exam) GradeApplicable() bool {
	return e.Status != ExamPlanned
}

// HasGrade reports whether a meaningful grade is recorded.
func (e Exam) HasGrade() bool {
	return e.GradeApplicable() && e.Grade != nil
}

// GradeBand groups grades on the 1.0 (best) to 5.0 scale.
type GradeBand string

const (
	GradeExcellent    GradeBand = "excellent"
	GradeGood         GradeBand = "good"
	GradeSatisfactory GradeBand = "satisfactory"
	GradeSufficient   GradeBand = "sufficient"
)

func BandFor(grade float64) GradeBand {
	switch {
	case grade <= 1.5:
		return GradeExcellent
	case grade <= 2.5:
		return GradeGood
	case grade <= 3.5:
		return GradeSatisfactory
	default:
		return GradeSufficient
	}
}

// FormatGrade renders a grade with one decimal, or "-" when there is none.
func FormatGrade(g *float64) string {
	if g == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *g)
}
