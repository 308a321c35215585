package views

import (
	"fmt"

	"github.com/julianstephens/studyplan/internal/cli"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	s := ctx.Planner.Stats()

	fmt.Printf("Today:          %d events\n", s.TodayCount)
	fmt.Printf("This week:      %d events\n", s.WeekCount)
	fmt.Printf("Exams:          %d passed, %d failed, %d planned\n", s.Exams.Passed, s.Exams.Failed, s.Exams.Planned)
	fmt.Printf("Pass rate:      %d%%\n", s.PassPercentage)
	fmt.Printf("Average grade:  %s\n", s.AverageGrade)

	fmt.Println("\nUpcoming:")
	if len(s.Upcoming) == 0 {
		fmt.Println("  Nothing scheduled.")
		return nil
	}
	for _, e := range s.Upcoming {
		fmt.Printf("  %s\n", cli.FormatEvent(e))
	}
	return nil
}
