package events

import (
	"fmt"

	"github.com/julianstephens/studyplan/internal/cli"
	"github.com/julianstephens/studyplan/internal/models"
	"github.com/julianstephens/studyplan/internal/planner"
	"github.com/julianstephens/studyplan/internal/utils"
)

type EventAddCmd struct {
	Title    string `arg:"" help:"Event title."`
	Category string `short:"c" help:"Category (lecture|lab|seminar|exam-block|study-group|office-hours|other)." default:"lecture"`
	Date     string `short:"d" help:"Date (YYYY-MM-DD). Defaults to today."`
	Start    string `short:"s" help:"Start time (HH:MM)."`
	End      string `short:"e" help:"End time (HH:MM)."`
	Location string `short:"l" help:"Location."`
	Notes    string `short:"n" help:"Notes."`
	Repeat   string `short:"r" help:"Repeat the event (daily|weekly|biweekly|monthly)." enum:",daily,weekly,biweekly,monthly" default:""`
	Until    string `help:"Last date of a repeating event (YYYY-MM-DD)."`
	EndDate  string `help:"Last day of a multi-day event (YYYY-MM-DD)."`

	category models.Category
}

func (c *EventAddCmd) Validate() error {
	cat, err := models.ParseCategory(c.Category)
	if err != nil {
		return err
	}
	c.category = cat

	if c.Until != "" && c.Repeat == "" {
		return fmt.Errorf("--until requires --repeat")
	}
	return nil
}

func (c *EventAddCmd) Run(ctx *cli.Context) error {
	if err := ctx.CheckUnlocked(); err != nil {
		return err
	}
	if c.category == "" {
		if err := c.Validate(); err != nil {
			return err
		}
	}

	date := c.Date
	if date == "" {
		date = utils.DateKey(ctx.Planner.Now())
	}

	in := planner.EventInput{
		Title:     c.Title,
		Category:  c.category,
		Date:      date,
		StartTime: c.Start,
		EndTime:   c.End,
		Location:  c.Location,
		Notes:     c.Notes,
	}
	if c.Repeat != "" {
		in.IsRecurring = true
		in.RecurrenceType = models.RecurrenceType(c.Repeat)
		in.RecurrenceEnd = c.Until
	}
	if c.EndDate != "" && c.EndDate != date {
		in.IsMultiDay = true
		in.EndDate = c.EndDate
	}

	event, err := ctx.Planner.CreateEvent(in)
	if err != nil {
		if event.ID.IsZero() {
			return err
		}
		return fmt.Errorf("event %s created but not saved: %w", event.ID, err)
	}

	fmt.Printf("Added event: %s (ID: %s)\n", event.Title, event.ID)
	return nil
}
