package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/studyplan/internal/models"
	"github.com/julianstephens/studyplan/internal/recurrence"
)

// FormatEvent renders an event as one list line.
func FormatEvent(e models.Event) string {
	var b strings.Builder
	b.WriteString(e.Date)
	if tr := e.TimeRange(); tr != "" {
		fmt.Fprintf(&b, "  %-11s", tr)
	} else {
		fmt.Fprintf(&b, "  %-11s", "all day")
	}
	fmt.Fprintf(&b, "  %s [%s]", e.Title, e.Category.Label())
	if e.Location != "" {
		fmt.Fprintf(&b, " @ %s", e.Location)
	}
	if e.IsMultiDay && e.EndDate != "" {
		fmt.Fprintf(&b, " until %s", e.EndDate)
	}
	if e.IsRecurring {
		fmt.Fprintf(&b, " (%s)", recurrence.Describe(e))
	}
	fmt.Fprintf(&b, " (ID: %s)", e.ID)
	return b.String()
}

// FormatExam renders an exam as one list line.
func FormatExam(x models.Exam) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %-8s  %s", x.Date, x.Status, x.Subject)
	if x.HasGrade() {
		fmt.Fprintf(&b, "  grade %s (%s)", models.FormatGrade(x.Grade), models.BandFor(*x.Grade))
	}
	if x.Percent != nil {
		fmt.Fprintf(&b, "  %d%%", *x.Percent)
	}
	fmt.Fprintf(&b, "  sem %d, attempt %d (ID: %s)", x.Semester, x.Attempt, x.ID)
	return b.String()
}
