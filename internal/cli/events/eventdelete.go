package events

import (
	"fmt"

	"github.com/julianstephens/studyplan/internal/cli"
	"github.com/julianstephens/studyplan/internal/models"
)

type EventDeleteCmd struct {
	ID  string `arg:"" help:"Event ID to delete."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *EventDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.CheckUnlocked(); err != nil {
		return err
	}

	id := models.ParseID(c.ID)
	event, ok := ctx.Planner.FindEvent(id)
	if !ok {
		return fmt.Errorf("no event with ID %s", c.ID)
	}

	if !c.Yes {
		confirmed, err := ctx.Confirm(fmt.Sprintf("Delete event %q on %s?", event.Title, event.Date))
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Delete cancelled.")
			return nil
		}
	}

	if _, err := ctx.Planner.DeleteEvent(id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	fmt.Printf("Deleted event: %s (ID: %s)\n", event.Title, c.ID)
	return nil
}
