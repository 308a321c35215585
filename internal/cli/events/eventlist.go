package events

import (
	"fmt"

	"github.com/julianstephens/studyplan/internal/cli"
	"github.com/julianstephens/studyplan/internal/models"
	"github.com/julianstephens/studyplan/internal/planner"
	"github.com/julianstephens/studyplan/internal/utils"
)

type EventListCmd struct {
	Category string `short:"c" help:"Only show events of this category."`
	Date     string `short:"d" help:"Only show events on this date (YYYY-MM-DD)."`
	Today    bool   `help:"Only show today's events."`
	Week     bool   `short:"w" help:"Only show events in the current Monday-Sunday week."`
	Upcoming int    `short:"u" help:"Show the next N events from today on."`
}

func (c *EventListCmd) Validate() error {
	if c.Date != "" {
		if _, err := utils.ParseDateKey(c.Date); err != nil {
			return err
		}
	}
	if c.Category != "" {
		if _, err := models.ParseCategory(c.Category); err != nil {
			return err
		}
	}
	if c.Upcoming < 0 {
		return fmt.Errorf("--upcoming must not be negative")
	}
	return nil
}

func (c *EventListCmd) Run(ctx *cli.Context) error {
	if err := c.Validate(); err != nil {
		return err
	}
	p := ctx.Planner

	var (
		events []models.Event
		header string
	)
	switch {
	case c.Today:
		events = p.TodayEvents()
		header = "Today's events"
	case c.Week:
		start, end := utils.WeekRange(p.Now())
		events = p.WeekEvents()
		header = fmt.Sprintf("Events %s to %s", utils.DateKey(start), utils.DateKey(end))
	case c.Date != "":
		events = p.EventsOn(c.Date)
		header = "Events on " + c.Date
	case c.Upcoming > 0:
		events = p.UpcomingEvents(c.Upcoming)
		header = "Upcoming events"
	default:
		events = p.Events()
		header = "Events"
	}

	if c.Category != "" {
		cat, _ := models.ParseCategory(c.Category)
		events = planner.FilterByCategory(events, cat)
		header += " (" + cat.Label() + ")"
	}

	if len(events) == 0 {
		fmt.Println("No events found.")
		return nil
	}

	fmt.Printf("%s:\n", header)
	for _, e := range events {
		fmt.Printf("  %s\n", cli.FormatEvent(e))
	}
	return nil
}
