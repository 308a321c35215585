package exams

import (
	"fmt"

	"github.com/julianstephens/studyplan/internal/cli"
	"github.com/julianstephens/studyplan/internal/models"
	"github.com/julianstephens/studyplan/internal/planner"
)

type ExamAddCmd struct {
	Subject  string   `arg:"" help:"Exam subject."`
	Date     string   `short:"d" help:"Exam date (YYYY-MM-DD)." required:""`
	Status   string   `short:"s" help:"Status (planned|passed|failed)." default:"planned"`
	Grade    *float64 `short:"g" help:"Grade from 1.0 (best) to 5.0. Ignored while planned."`
	Percent  *int     `short:"p" help:"Score in percent (0-100)."`
	Semester int      `help:"Semester number." default:"1"`
	Attempt  int      `help:"Attempt number." default:"1"`
	Notes    string   `short:"n" help:"Notes."`

	status models.ExamStatus
}

func (c *ExamAddCmd) Validate() error {
	st, err := models.ParseExamStatus(c.Status)
	if err != nil {
		return err
	}
	c.status = st
	return nil
}

func (c *ExamAddCmd) Run(ctx *cli.Context) error {
	if err := ctx.CheckUnlocked(); err != nil {
		return err
	}
	if c.status == "" {
		if err := c.Validate(); err != nil {
			return err
		}
	}

	exam, err := ctx.Planner.CreateExam(planner.ExamInput{
		Subject:  c.Subject,
		Date:     c.Date,
		Status:   c.status,
		Grade:    c.Grade,
		Percent:  c.Percent,
		Semester: c.Semester,
		Attempt:  c.Attempt,
		Notes:    c.Notes,
	})
	if err != nil {
		if exam.ID.IsZero() {
			return err
		}
		return fmt.Errorf("exam %s created but not saved: %w", exam.ID, err)
	}

	if c.Grade != nil && !exam.GradeApplicable() {
		fmt.Println("Note: grade ignored for a planned exam")
	}
	fmt.Printf("Added exam: %s (ID: %s)\n", exam.Subject, exam.ID)
	return nil
}
