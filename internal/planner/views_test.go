package planner

import (
	"strconv"
	"testing"
	"time"

	"github.com/julianstephens/studyplan/internal/models"
)

func exam(id string, status models.ExamStatus, grade *float64) models.Exam {
	return models.Exam{ID: models.ParseID(id), Subject: "s" + id, Date: "2024-01-01", Status: status, Grade: grade, Semester: 1, Attempt: 1}
}

func TestAverageGrade(t *testing.T) {
	tests := []struct {
		name    string
		exams   []models.Exam
		want    float64
		wantOK  bool
		wantStr string
	}{
		{
			name: "failed exams excluded",
			exams: []models.Exam{
				exam("1", models.ExamPassed, ptr(1.0)),
				exam("2", models.ExamPassed, ptr(2.0)),
				exam("3", models.ExamFailed, ptr(4.0)),
			},
			want: 1.5, wantOK: true, wantStr: "1.5",
		},
		{
			name: "passed without grade ignored",
			exams: []models.Exam{
				exam("1", models.ExamPassed, ptr(1.3)),
				exam("2", models.ExamPassed, nil),
			},
			want: 1.3, wantOK: true, wantStr: "1.3",
		},
		{
			name:    "no graded passes",
			exams:   []models.Exam{exam("1", models.ExamPlanned, nil), exam("2", models.ExamFailed, ptr(5.0))},
			wantOK:  false,
			wantStr: "-",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPlanner(t, &fakeRepo{exams: tt.exams})
			got, ok := p.AverageGrade()
			if ok != tt.wantOK || (ok && got != tt.want) {
				t.Errorf("AverageGrade() = %v, %v, want %v, %v", got, ok, tt.want, tt.wantOK)
			}
			if s := p.FormatAverageGrade(); s != tt.wantStr {
				t.Errorf("FormatAverageGrade() = %q, want %q", s, tt.wantStr)
			}
		})
	}
}

func TestPassPercentage(t *testing.T) {
	tests := []struct {
		name   string
		passed int
		failed int
		plan   int
		want   int
	}{
		{name: "three of four", passed: 3, failed: 1, want: 75},
		{name: "nothing decided", plan: 2, want: 0},
		{name: "rounds half up", passed: 1, failed: 7, want: 13},
		{name: "rounds down", passed: 1, failed: 2, want: 33},
		{name: "two of three", passed: 2, failed: 1, want: 67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var exams []models.Exam
			id := 0
			add := func(n int, s models.ExamStatus) {
				for i := 0; i < n; i++ {
					id++
					exams = append(exams, exam(strconv.Itoa(id), s, nil))
				}
			}
			add(tt.passed, models.ExamPassed)
			add(tt.failed, models.ExamFailed)
			add(tt.plan, models.ExamPlanned)

			p := newTestPlanner(t, &fakeRepo{exams: exams})
			if got := p.PassPercentage(); got != tt.want {
				t.Errorf("PassPercentage() = %d, want %d", got, tt.want)
			}
			c := p.ExamCounts()
			if c.Passed != tt.passed || c.Failed != tt.failed || c.Attempted != tt.passed+tt.failed || c.Planned != tt.plan {
				t.Errorf("ExamCounts() = %+v", c)
			}
		})
	}
}

func ev(id string, date, start string, c models.Category) models.Event {
	return models.Event{ID: models.ParseID(id), Title: "e" + id, Category: c, Date: date, StartTime: start}
}

func TestTodayAndWeekEvents(t *testing.T) {
	// fixedNow is Wednesday 2024-05-15; its week is 2024-05-13..2024-05-19.
	repo := &fakeRepo{events: []models.Event{
		ev("1", "2024-05-12", "", models.CategoryLecture),
		ev("2", "2024-05-13", "", models.CategoryLecture),
		ev("3", "2024-05-15", "09:00", models.CategoryLab),
		ev("4", "2024-05-15", "", models.CategorySeminar),
		ev("5", "2024-05-19", "", models.CategoryLecture),
		ev("6", "2024-05-20", "", models.CategoryLecture),
	}}
	p := newTestPlanner(t, repo)

	today := p.TodayEvents()
	if len(today) != 2 {
		t.Errorf("TodayEvents() = %d events, want 2", len(today))
	}
	week := p.WeekEvents()
	if len(week) != 4 || week[0].ID.String() != "2" || week[3].ID.String() != "5" {
		t.Errorf("WeekEvents() = %+v", week)
	}
	if got := p.EventsOn("2024-05-20"); len(got) != 1 || got[0].ID.String() != "6" {
		t.Errorf("EventsOn() = %+v", got)
	}
}

func TestUpcomingEvents(t *testing.T) {
	repo := &fakeRepo{events: []models.Event{
		ev("past", "2024-05-14", "08:00", models.CategoryLecture),
		ev("a", "2024-05-15", "14:00", models.CategoryLecture),
		ev("b", "2024-05-15", "", models.CategoryLecture),
		ev("c", "2024-05-15", "08:00", models.CategoryLecture),
		ev("d", "2024-05-16", "", models.CategoryLecture),
		ev("e", "2024-05-17", "", models.CategoryLecture),
		ev("f", "2024-05-18", "", models.CategoryLecture),
		ev("g", "2024-05-19", "", models.CategoryLecture),
	}}
	p := newTestPlanner(t, repo)

	got := p.UpcomingEvents(0)
	want := []string{"b", "c", "a", "d", "e"}
	if len(got) != len(want) {
		t.Fatalf("UpcomingEvents() returned %d events, want %d", len(got), len(want))
	}
	for i, e := range got {
		if e.ID.String() != want[i] {
			t.Errorf("UpcomingEvents()[%d] = %s, want %s", i, e.ID, want[i])
		}
	}

	if n := len(p.UpcomingEvents(10)); n != 7 {
		t.Errorf("UpcomingEvents(10) = %d events, want 7", n)
	}

	p2 := newTestPlanner(t, repo, WithUpcomingLimit(2))
	if n := len(p2.UpcomingEvents(0)); n != 2 {
		t.Errorf("configured limit ignored: %d events", n)
	}
}

func TestCategoryFilter(t *testing.T) {
	repo := &fakeRepo{events: []models.Event{
		ev("1", "2024-05-01", "", models.CategoryLecture),
		ev("2", "2024-05-02", "", models.CategoryLab),
		ev("3", "2024-05-03", "", models.CategoryLecture),
	}}
	p := newTestPlanner(t, repo)

	if got := p.FilteredEvents(); len(got) != 3 {
		t.Errorf("unfiltered = %d events", len(got))
	}
	p.SetCategoryFilter(models.CategoryLecture)
	if got := p.FilteredEvents(); len(got) != 2 || got[1].ID.String() != "3" {
		t.Errorf("lecture filter = %+v", got)
	}
	p.SetCategoryFilter(models.CategoryOfficeHours)
	if got := p.FilteredEvents(); len(got) != 0 {
		t.Errorf("empty filter result = %+v", got)
	}
}

func TestCycleCategoryFilter(t *testing.T) {
	p := newTestPlanner(t, &fakeRepo{})

	var seen []models.Category
	for i := 0; i <= len(models.Categories); i++ {
		seen = append(seen, p.CycleCategoryFilter())
	}
	if seen[0] != models.Categories[0] {
		t.Errorf("first cycle = %q", seen[0])
	}
	if seen[len(seen)-1] != "" {
		t.Errorf("cycle did not wrap back to all categories: %v", seen)
	}
}

func TestMonthNavigation(t *testing.T) {
	p := newTestPlanner(t, &fakeRepo{})

	p.ShiftMonth(8)
	if m := p.Selection().VisibleMonth; m.Year() != 2025 || m.Month() != time.January {
		t.Errorf("ShiftMonth(8) = %v", m)
	}
	p.ShiftMonth(-9)
	if m := p.Selection().VisibleMonth; m.Year() != 2024 || m.Month() != time.April {
		t.Errorf("ShiftMonth(-9) = %v", m)
	}

	p.SelectDate(time.Date(2024, time.February, 29, 15, 0, 0, 0, time.Local))
	sel := p.Selection()
	if sel.VisibleMonth.Month() != time.February || sel.SelectedDate.Hour() != 0 {
		t.Errorf("SelectDate() selection = %+v", sel)
	}

	grid := p.CalendarGrid()
	var selected int
	for _, c := range grid.Cells {
		if c.IsSelected {
			selected++
		}
	}
	if selected != 1 || grid.Month.Month() != time.February {
		t.Errorf("CalendarGrid() selected cells = %d, month %v", selected, grid.Month.Month())
	}

	p.GoToToday()
	if p.Selection().SelectedDate.Day() != 15 {
		t.Errorf("GoToToday() = %v", p.Selection().SelectedDate)
	}
}

func TestStats(t *testing.T) {
	repo := &fakeRepo{
		events: []models.Event{ev("1", "2024-05-15", "", models.CategoryLecture)},
		exams:  []models.Exam{exam("2", models.ExamPassed, ptr(1.7))},
	}
	s := newTestPlanner(t, repo).Stats()
	if s.TodayCount != 1 || s.WeekCount != 1 || s.AverageGrade != "1.7" || s.PassPercentage != 100 || len(s.Upcoming) != 1 {
		t.Errorf("Stats() = %+v", s)
	}
}
