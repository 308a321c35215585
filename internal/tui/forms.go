package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/studyplan/internal/models"
	"github.com/julianstephens/studyplan/internal/planner"
	"github.com/julianstephens/studyplan/internal/utils"
)

func validateDate(s string) error {
	_, err := utils.ParseDateKey(strings.TrimSpace(s))
	return err
}

func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return validateDate(s)
}

func validateOptionalTime(s string) error {
	s = strings.TrimSpace(s)
	if s == "" || utils.ValidateTimeFormat(s) {
		return nil
	}
	return fmt.Errorf("use HH:MM")
}

func validateOptionalInt(lo, hi int) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		i, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		if i < lo || i > hi {
			return fmt.Errorf("must be between %d and %d", lo, hi)
		}
		return nil
	}
}

func validateOptionalGrade(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	g, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	if g < 1.0 || g > 5.0 {
		return fmt.Errorf("grade must be between 1.0 and 5.0")
	}
	return nil
}

// NewEventForm creates the form for adding an event
func NewEventForm(fm *EventFormModel) *huh.Form {
	categories := make([]huh.Option[models.Category], 0, len(models.Categories))
	for _, c := range models.Categories {
		categories = append(categories, huh.NewOption(c.Label(), c))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fm.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[models.Category]().
				Title("Category").
				Options(categories...).
				Value(&fm.Category),
			huh.NewInput().
				Title("Date (YYYY-MM-DD)").
				Value(&fm.Date).
				Validate(validateDate),
			huh.NewInput().
				Title("Start (HH:MM)").
				Value(&fm.StartTime).
				Validate(validateOptionalTime),
			huh.NewInput().
				Title("End (HH:MM)").
				Value(&fm.EndTime).
				Validate(validateOptionalTime),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Location").
				Value(&fm.Location),
			huh.NewText().
				Title("Notes").
				Value(&fm.Notes),
			huh.NewInput().
				Title("Last day (YYYY-MM-DD)").
				Description("For events spanning several days").
				Value(&fm.EndDate).
				Validate(validateOptionalDate),
			huh.NewSelect[models.RecurrenceType]().
				Title("Repeat").
				Options(
					huh.NewOption("Never", models.RecurrenceType("")),
					huh.NewOption("Daily", models.RecurrenceDaily),
					huh.NewOption("Weekly", models.RecurrenceWeekly),
					huh.NewOption("Every two weeks", models.RecurrenceBiweekly),
					huh.NewOption("Monthly", models.RecurrenceMonthly),
				).
				Value(&fm.Repeat),
			huh.NewInput().
				Title("Repeat until (YYYY-MM-DD)").
				Description("Leave empty to repeat indefinitely").
				Value(&fm.Until).
				Validate(validateOptionalDate),
		),
	).WithTheme(huh.ThemeDracula())
}

// eventInput converts the form into planner input. Field level checks already
// ran in the form; the planner applies the rest.
func eventInput(fm *EventFormModel) planner.EventInput {
	in := planner.EventInput{
		Title:     strings.TrimSpace(fm.Title),
		Category:  fm.Category,
		Date:      strings.TrimSpace(fm.Date),
		StartTime: strings.TrimSpace(fm.StartTime),
		EndTime:   strings.TrimSpace(fm.EndTime),
		Location:  strings.TrimSpace(fm.Location),
		Notes:     strings.TrimSpace(fm.Notes),
	}
	if fm.Repeat != "" {
		in.IsRecurring = true
		in.RecurrenceType = fm.Repeat
		in.RecurrenceEnd = strings.TrimSpace(fm.Until)
	}
	if end := strings.TrimSpace(fm.EndDate); end != "" && end != in.Date {
		in.IsMultiDay = true
		in.EndDate = end
	}
	return in
}

// NewExamForm creates the form for adding an exam
func NewExamForm(fm *ExamFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Subject").
				Value(&fm.Subject).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("subject cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Date (YYYY-MM-DD)").
				Value(&fm.Date).
				Validate(validateDate),
			huh.NewSelect[models.ExamStatus]().
				Title("Status").
				Options(
					huh.NewOption("Planned", models.ExamPlanned),
					huh.NewOption("Passed", models.ExamPassed),
					huh.NewOption("Failed", models.ExamFailed),
				).
				Value(&fm.Status),
			huh.NewInput().
				Title("Grade (1.0-5.0)").
				Description("Ignored while the exam is planned").
				Value(&fm.Grade).
				Validate(validateOptionalGrade),
			huh.NewInput().
				Title("Percent (0-100)").
				Value(&fm.Percent).
				Validate(validateOptionalInt(0, 100)),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Semester").
				Value(&fm.Semester).
				Validate(validateOptionalInt(1, 99)),
			huh.NewInput().
				Title("Attempt").
				Value(&fm.Attempt).
				Validate(validateOptionalInt(1, 9)),
			huh.NewText().
				Title("Notes").
				Value(&fm.Notes),
		),
	).WithTheme(huh.ThemeDracula())
}

// examInput converts the form into planner input. Empty semester and attempt
// default to 1.
func examInput(fm *ExamFormModel) (planner.ExamInput, error) {
	in := planner.ExamInput{
		Subject:  strings.TrimSpace(fm.Subject),
		Date:     strings.TrimSpace(fm.Date),
		Status:   fm.Status,
		Semester: 1,
		Attempt:  1,
		Notes:    strings.TrimSpace(fm.Notes),
	}
	if s := strings.TrimSpace(fm.Grade); s != "" {
		g, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return in, fmt.Errorf("invalid grade: %w", err)
		}
		in.Grade = &g
	}
	if s := strings.TrimSpace(fm.Percent); s != "" {
		p, err := strconv.Atoi(s)
		if err != nil {
			return in, fmt.Errorf("invalid percent: %w", err)
		}
		in.Percent = &p
	}
	if s := strings.TrimSpace(fm.Semester); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return in, fmt.Errorf("invalid semester: %w", err)
		}
		in.Semester = n
	}
	if s := strings.TrimSpace(fm.Attempt); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return in, fmt.Errorf("invalid attempt: %w", err)
		}
		in.Attempt = n
	}
	return in, nil
}

// NewImportForm asks for the snapshot to import
func NewImportForm(fm *ImportFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Snapshot file").
				Description("A path, or a file name in the backup directory").
				Value(&fm.Path).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("file cannot be empty")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewConfirmationForm creates a yes/no form for destructive actions
func NewConfirmationForm(fm *ConfirmationFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fm.Message).
				Affirmative("Yes").
				Negative("No").
				Value(&fm.Confirmed),
		),
	).WithTheme(huh.ThemeDracula())
}
