package views

import (
	"fmt"
	"time"

	"github.com/julianstephens/studyplan/internal/cli"
	"github.com/julianstephens/studyplan/internal/tui/components/month"
	"github.com/julianstephens/studyplan/internal/utils"
)

type CalendarCmd struct {
	Month  string `short:"m" help:"Month to show (YYYY-MM). Defaults to the selected date's month."`
	Select string `short:"s" help:"Date to select (YYYY-MM-DD). Defaults to today."`
}

func (c *CalendarCmd) Validate() error {
	if c.Month != "" {
		if _, err := utils.ParseMonth(c.Month, time.UTC); err != nil {
			return err
		}
	}
	if c.Select != "" {
		if _, err := utils.ParseDateKey(c.Select); err != nil {
			return fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", c.Select, err)
		}
	}
	return nil
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	p := ctx.Planner

	if c.Select != "" {
		day, err := utils.ParseDateInLocation(c.Select, ctx.Location)
		if err != nil {
			return fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", c.Select, err)
		}
		p.SelectDate(day)
	}
	if c.Month != "" {
		target, err := utils.ParseMonth(c.Month, ctx.Location)
		if err != nil {
			return err
		}
		p.ShiftMonth(monthsBetween(p.Selection().VisibleMonth, target))
	}

	fmt.Println(month.Render(p.CalendarGrid()))
	fmt.Println()

	selected := p.Selection().SelectedDate
	events := p.EventsOn(utils.DateKey(selected))
	if len(events) == 0 {
		fmt.Printf("No events on %s.\n", utils.DateKey(selected))
		return nil
	}
	fmt.Printf("Events on %s:\n", utils.DateKey(selected))
	for _, e := range events {
		fmt.Printf("  %s\n", cli.FormatEvent(e))
	}
	return nil
}

// monthsBetween counts whole months from the month of a to the month of b.
func monthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}
