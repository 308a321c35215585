package planner

import (
	"fmt"
	"sort"

	"github.com/julianstephens/studyplan/internal/models"
	"github.com/julianstephens/studyplan/internal/utils"
)

// ExamCounts tallies exams by outcome. Attempted counts everything not planned.
type ExamCounts struct {
	Passed    int
	Failed    int
	Planned   int
	Attempted int
}

// Stats bundles the dashboard figures.
type Stats struct {
	TodayCount     int
	WeekCount      int
	Exams          ExamCounts
	AverageGrade   string
	PassPercentage int
	Upcoming       []models.Event
}

func (p *Planner) todayKey() string {
	return utils.DateKey(p.now())
}

// TodayEvents are the events dated today.
func (p *Planner) TodayEvents() []models.Event {
	return p.EventsOn(p.todayKey())
}

// EventsOn returns the events whose date equals key.
func (p *Planner) EventsOn(key string) []models.Event {
	out := []models.Event{}
	for _, e := range p.events {
		if e.Date == key {
			out = append(out, e)
		}
	}
	return out
}

// WeekEvents are the events in the Monday to Sunday week containing today.
func (p *Planner) WeekEvents() []models.Event {
	start, end := utils.WeekRange(p.now())
	from, to := utils.DateKey(start), utils.DateKey(end)

	out := []models.Event{}
	for _, e := range p.events {
		if e.Date >= from && e.Date <= to {
			out = append(out, e)
		}
	}
	return out
}

func (p *Planner) ExamCounts() ExamCounts {
	var c ExamCounts
	for _, e := range p.exams {
		switch e.Status {
		case models.ExamPassed:
			c.Passed++
		case models.ExamFailed:
			c.Failed++
		case models.ExamPlanned:
			c.Planned++
		}
		if e.Status != models.ExamPlanned {
			c.Attempted++
		}
	}
	return c
}

// AverageGrade is the mean grade of passed exams that carry a grade.
// ok is false when there are none.
func (p *Planner) AverageGrade() (avg float64, ok bool) {
	var sum float64
	var n int
	for _, e := range p.exams {
		if e.Status == models.ExamPassed && e.Grade != nil {
			sum += *e.Grade
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// FormatAverageGrade renders the average with one decimal, "-" when undefined.
func (p *Planner) FormatAverageGrade() string {
	avg, ok := p.AverageGrade()
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%.1f", avg)
}

// PassPercentage is passed/(passed+failed) as a rounded percentage, 0 when
// no exam has been decided.
func (p *Planner) PassPercentage() int {
	c := p.ExamCounts()
	decided := c.Passed + c.Failed
	if decided == 0 {
		return 0
	}
	return round(float64(c.Passed) / float64(decided) * 100)
}

// UpcomingEvents returns events from today on, ordered by date then start
// time, capped at limit. A limit of zero or less uses the configured default.
func (p *Planner) UpcomingEvents(limit int) []models.Event {
	if limit <= 0 {
		limit = p.upcomingLimit
	}
	today := p.todayKey()

	out := []models.Event{}
	for _, e := range p.events {
		if e.Date >= today {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].StartTime < out[j].StartTime
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// FilteredEvents applies the active category filter.
func (p *Planner) FilteredEvents() []models.Event {
	return FilterByCategory(p.events, p.sel.CategoryFilter)
}

// FilterByCategory returns events unchanged for an empty category and the
// matching subset otherwise.
func FilterByCategory(events []models.Event, c models.Category) []models.Event {
	if c == "" {
		return append([]models.Event{}, events...)
	}
	out := []models.Event{}
	for _, e := range events {
		if e.Category == c {
			out = append(out, e)
		}
	}
	return out
}

func (p *Planner) Stats() Stats {
	return Stats{
		TodayCount:     len(p.TodayEvents()),
		WeekCount:      len(p.WeekEvents()),
		Exams:          p.ExamCounts(),
		AverageGrade:   p.FormatAverageGrade(),
		PassPercentage: p.PassPercentage(),
		Upcoming:       p.UpcomingEvents(0),
	}
}
