package exams

import (
	"fmt"

	"github.com/julianstephens/studyplan/internal/cli"
	"github.com/julianstephens/studyplan/internal/models"
)

type ExamDeleteCmd struct {
	ID  string `arg:"" help:"Exam ID to delete."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ExamDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.CheckUnlocked(); err != nil {
		return err
	}

	id := models.ParseID(c.ID)
	exam, ok := ctx.Planner.FindExam(id)
	if !ok {
		return fmt.Errorf("no exam with ID %s", c.ID)
	}

	if !c.Yes {
		confirmed, err := ctx.Confirm(fmt.Sprintf("Delete exam %q on %s?", exam.Subject, exam.Date))
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Delete cancelled.")
			return nil
		}
	}

	if _, err := ctx.Planner.DeleteExam(id); err != nil {
		return fmt.Errorf("failed to delete exam: %w", err)
	}
	fmt.Printf("Deleted exam: %s (ID: %s)\n", exam.Subject, c.ID)
	return nil
}
