package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/studyplan/internal/models"
	"github.com/julianstephens/studyplan/internal/utils"
)

// ErrInvalid is wrapped by every error returned from Result.Err
var ErrInvalid = errors.New("validation failed")

const (
	MinGrade = 1.0
	MaxGrade = 5.0
)

// Problem describes a single rejected field
type Problem struct {
	Field       string
	Description string
}

// Result contains all detected problems
type Result struct {
	Problems []Problem
}

// HasProblems returns true if there are any problems
func (r *Result) HasProblems() bool {
	return len(r.Problems) > 0
}

func (r *Result) add(field, format string, args ...interface{}) {
	r.Problems = append(r.Problems, Problem{Field: field, Description: fmt.Sprintf(format, args...)})
}

// FormatReport returns a human-readable report of all problems
func (r *Result) FormatReport() string {
	if !r.HasProblems() {
		return "No problems detected."
	}

	var b strings.Builder
	b.WriteString("Problems detected:\n")
	for _, p := range r.Problems {
		fmt.Fprintf(&b, "- %s: %s\n", p.Field, p.Description)
	}
	return b.String()
}

// Err converts the result into an error, nil when there are no problems.
func (r *Result) Err() error {
	if !r.HasProblems() {
		return nil
	}
	parts := make([]string, len(r.Problems))
	for i, p := range r.Problems {
		parts[i] = p.Field + ": " + p.Description
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(parts, "; "))
}

type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateEvent checks the user-supplied fields of an event.
// Start and end times are not ordered against each other.
func (v *Validator) ValidateEvent(e models.Event) Result {
	var r Result

	if strings.TrimSpace(e.Title) == "" {
		r.add("title", "must not be empty")
	}
	if !e.Category.Valid() {
		r.add("category", "unknown category %q", e.Category)
	}
	if _, err := utils.ParseDateKey(e.Date); err != nil {
		r.add("date", "must be a valid YYYY-MM-DD date")
	}
	if e.StartTime != "" && !utils.ValidateTimeFormat(e.StartTime) {
		r.add("startTime", "must be HH:MM")
	}
	if e.EndTime != "" && !utils.ValidateTimeFormat(e.EndTime) {
		r.add("endTime", "must be HH:MM")
	}

	if e.IsRecurring {
		if !e.RecurrenceType.Valid() {
			r.add("recurrenceType", "unknown recurrence %q", e.RecurrenceType)
		}
		if e.RecurrenceEnd != "" {
			if _, err := utils.ParseDateKey(e.RecurrenceEnd); err != nil {
				r.add("recurrenceEnd", "must be a valid YYYY-MM-DD date")
			} else if e.RecurrenceEnd < e.Date {
				r.add("recurrenceEnd", "must not be before the event date")
			}
		}
	}
	if e.IsMultiDay && e.EndDate != "" {
		if _, err := utils.ParseDateKey(e.EndDate); err != nil {
			r.add("endDate", "must be a valid YYYY-MM-DD date")
		}
	}

	return r
}

// ValidateExam checks the user-supplied fields of an exam.
// A grade on a planned exam is ignored rather than rejected.
func (v *Validator) ValidateExam(e models.Exam) Result {
	var r Result

	if strings.TrimSpace(e.Subject) == "" {
		r.add("subject", "must not be empty")
	}
	if _, err := utils.ParseDateKey(e.Date); err != nil {
		r.add("date", "must be a valid YYYY-MM-DD date")
	}
	if !e.Status.Valid() {
		r.add("status", "unknown status %q", e.Status)
	}
	if e.HasGrade() && (*e.Grade < MinGrade || *e.Grade > MaxGrade) {
		r.add("grade", "must be between %.1f and %.1f", MinGrade, MaxGrade)
	}
	if e.Percent != nil && (*e.Percent < 0 || *e.Percent > 100) {
		r.add("percent", "must be between 0 and 100")
	}
	if e.Semester < 1 {
		r.add("semester", "must be at least 1")
	}
	if e.Attempt < 1 {
		r.add("attempt", "must be at least 1")
	}

	return r
}
