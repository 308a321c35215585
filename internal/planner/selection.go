package planner

import (
	"time"

	"github.com/julianstephens/studyplan/internal/calendar"
	"github.com/julianstephens/studyplan/internal/constants"
	"github.com/julianstephens/studyplan/internal/models"
	"github.com/julianstephens/studyplan/internal/utils"
)

// Selection returns the current UI selection.
func (p *Planner) Selection() Selection {
	return p.sel
}

func (p *Planner) SetTab(tab constants.SessionState) {
	p.sel.Tab = tab
}

// ShiftMonth moves the visible month by delta months.
func (p *Planner) ShiftMonth(delta int) {
	p.sel.VisibleMonth = utils.AddMonths(p.sel.VisibleMonth, delta)
}

// SelectDate selects t's day and brings its month into view.
func (p *Planner) SelectDate(t time.Time) {
	p.sel.SelectedDate = utils.StartOfDay(t)
	p.sel.VisibleMonth = utils.FirstOfMonth(t)
}

// GoToToday selects today.
func (p *Planner) GoToToday() {
	p.SelectDate(p.now())
}

// SetCategoryFilter restricts FilteredEvents to c; the empty category clears it.
func (p *Planner) SetCategoryFilter(c models.Category) {
	p.sel.CategoryFilter = c
}

// CycleCategoryFilter steps through all categories and back to no filter.
func (p *Planner) CycleCategoryFilter() models.Category {
	next := models.Category("")
	if p.sel.CategoryFilter == "" {
		next = models.Categories[0]
	} else {
		for i, c := range models.Categories {
			if c == p.sel.CategoryFilter && i+1 < len(models.Categories) {
				next = models.Categories[i+1]
			}
		}
	}
	p.sel.CategoryFilter = next
	return next
}

// CalendarGrid builds the grid for the visible month.
func (p *Planner) CalendarGrid() calendar.Grid {
	return calendar.BuildAt(p.sel.VisibleMonth, p.sel.SelectedDate, p.events, p.now())
}
