package events

import (
	"fmt"

	"github.com/julianstephens/studyplan/internal/cli"
	"github.com/julianstephens/studyplan/internal/models"
	"github.com/julianstephens/studyplan/internal/recurrence"
	"github.com/julianstephens/studyplan/internal/utils"
)

// EventOccurrencesCmd lists the dates a repeating event falls on. The
// occurrences are computed on the fly and never stored.
type EventOccurrencesCmd struct {
	ID   string `arg:"" help:"ID of a repeating event."`
	From string `help:"First date of the window (YYYY-MM-DD). Defaults to today."`
	To   string `help:"Last date of the window (YYYY-MM-DD). Defaults to 90 days after --from."`
}

func (c *EventOccurrencesCmd) Run(ctx *cli.Context) error {
	event, ok := ctx.Planner.FindEvent(models.ParseID(c.ID))
	if !ok {
		return fmt.Errorf("no event with ID %s", c.ID)
	}

	from := utils.StartOfDay(ctx.Planner.Now())
	if c.From != "" {
		t, err := utils.ParseDateKey(c.From)
		if err != nil {
			return err
		}
		from = t
	}
	to := from.AddDate(0, 0, 90)
	if c.To != "" {
		t, err := utils.ParseDateKey(c.To)
		if err != nil {
			return err
		}
		to = t
	}
	if to.Before(from) {
		return fmt.Errorf("--to must not be before --from")
	}

	occurrences, err := recurrence.Expand(event, from, to)
	if err != nil {
		return err
	}

	if len(occurrences) == 0 {
		fmt.Println("No occurrences in this window.")
		return nil
	}
	fmt.Printf("Occurrences of %s (%s):\n", event.Title, recurrence.Describe(event))
	for _, o := range occurrences {
		fmt.Printf("  %s\n", cli.FormatEvent(o))
	}
	return nil
}
