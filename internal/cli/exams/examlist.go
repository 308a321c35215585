package exams

import (
	"fmt"

	"github.com/julianstephens/studyplan/internal/cli"
	"github.com/julianstephens/studyplan/internal/models"
)

type ExamListCmd struct {
	Status   string `short:"s" help:"Only show exams with this status."`
	Semester int    `help:"Only show exams of this semester."`
}

func (c *ExamListCmd) Run(ctx *cli.Context) error {
	var status models.ExamStatus
	if c.Status != "" {
		st, err := models.ParseExamStatus(c.Status)
		if err != nil {
			return err
		}
		status = st
	}

	var exams []models.Exam
	for _, x := range ctx.Planner.Exams() {
		if status != "" && x.Status != status {
			continue
		}
		if c.Semester > 0 && x.Semester != c.Semester {
			continue
		}
		exams = append(exams, x)
	}

	if len(exams) == 0 {
		fmt.Println("No exams found.")
		return nil
	}

	fmt.Println("Exams:")
	for _, x := range exams {
		fmt.Printf("  %s\n", cli.FormatExam(x))
	}

	counts := ctx.Planner.ExamCounts()
	decided := counts.Passed + counts.Failed
	fmt.Printf("\nPassed %d of %d decided (%d%%), average grade %s\n",
		counts.Passed, decided, ctx.Planner.PassPercentage(), ctx.Planner.FormatAverageGrade())
	return nil
}
