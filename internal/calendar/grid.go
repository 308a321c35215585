// Package calendar lays out a month as a fixed 6x7 Monday-first grid.
package calendar

import (
	"time"

	"github.com/julianstephens/studyplan/internal/constants"
	"github.com/julianstephens/studyplan/internal/models"
	"github.com/julianstephens/studyplan/internal/utils"
)

// WeekdayLabels are the column headings, Monday first.
var WeekdayLabels = [7]string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}

type Cell struct {
	Date       time.Time
	Key        string
	OtherMonth bool
	IsToday    bool
	IsSelected bool
	HasEvents  bool
}

type Grid struct {
	// Month is the first of the visible month.
	Month time.Time
	Cells [constants.GridDays]Cell
}

// Build lays out the month containing month. The result always has 42 cells
// starting on a Monday.
func Build(month, selected time.Time, events []models.Event) Grid {
	return BuildAt(month, selected, events, time.Now())
}

// BuildAt is Build with an explicit notion of today.
func BuildAt(month, selected time.Time, events []models.Event, today time.Time) Grid {
	first := utils.FirstOfMonth(month)
	start := first.AddDate(0, 0, -utils.MondayOffset(first))

	// Keys with at least one event; a cell matches only on the exact date key.
	withEvents := make(map[string]struct{}, len(events))
	for _, e := range events {
		withEvents[e.Date] = struct{}{}
	}

	g := Grid{Month: first}
	for i := range g.Cells {
		d := start.AddDate(0, 0, i)
		key := utils.DateKey(d)
		_, has := withEvents[key]
		g.Cells[i] = Cell{
			Date:       d,
			Key:        key,
			OtherMonth: d.Month() != first.Month() || d.Year() != first.Year(),
			IsToday:    utils.IsSameDay(d, today),
			IsSelected: utils.IsSameDay(d, selected),
			HasEvents:  has,
		}
	}
	return g
}

// Weeks returns the cells as six Monday-first rows.
func (g Grid) Weeks() [6][7]Cell {
	var weeks [6][7]Cell
	for i, c := range g.Cells {
		weeks[i/7][i%7] = c
	}
	return weeks
}

// Title is the month heading, e.g. "May 2024".
func (g Grid) Title() string {
	return g.Month.Format("January 2006")
}
