package calendar

import (
	"testing"
	"time"

	"github.com/julianstephens/studyplan/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestBuildShape(t *testing.T) {
	tests := []struct {
		name      string
		month     time.Time
		wantFirst string
		wantLast  string
	}{
		{name: "leap february", month: date(2024, time.February, 10), wantFirst: "2024-01-29", wantLast: "2024-03-10"},
		{name: "december rolls into january", month: date(2024, time.December, 31), wantFirst: "2024-11-25", wantLast: "2025-01-05"},
		{name: "month starting on monday", month: date(2024, time.January, 1), wantFirst: "2024-01-01", wantLast: "2024-02-11"},
		{name: "month starting on sunday", month: date(2024, time.September, 15), wantFirst: "2024-08-26", wantLast: "2024-10-06"},
		{name: "february fitting four weeks", month: date(2021, time.February, 1), wantFirst: "2021-02-01", wantLast: "2021-03-14"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := BuildAt(tt.month, tt.month, nil, date(2000, time.January, 1))

			if len(g.Cells) != 42 {
				t.Fatalf("grid has %d cells", len(g.Cells))
			}
			if g.Cells[0].Key != tt.wantFirst || g.Cells[41].Key != tt.wantLast {
				t.Errorf("grid spans %s..%s, want %s..%s", g.Cells[0].Key, g.Cells[41].Key, tt.wantFirst, tt.wantLast)
			}
			if g.Cells[0].Date.Weekday() != time.Monday {
				t.Errorf("grid starts on %s", g.Cells[0].Date.Weekday())
			}
			for i := 1; i < len(g.Cells); i++ {
				if g.Cells[i].Date.Sub(g.Cells[i-1].Date) < 23*time.Hour {
					t.Fatalf("cells %d and %d are not consecutive days", i-1, i)
				}
			}
			for _, c := range g.Cells {
				inMonth := c.Date.Month() == tt.month.Month() && c.Date.Year() == tt.month.Year()
				if c.OtherMonth == inMonth {
					t.Errorf("%s OtherMonth = %v", c.Key, c.OtherMonth)
				}
			}
		})
	}
}

func TestBuildFlags(t *testing.T) {
	today := date(2024, time.May, 15)
	selected := date(2024, time.May, 20)
	events := []models.Event{
		{ID: models.NewID(1), Date: "2024-05-03"},
		{ID: models.NewID(2), Date: "2024-05-03"},
		{ID: models.NewID(3), Date: "2024-06-01"},
		{ID: models.NewID(4), Date: "2024-5-7"},
	}

	g := BuildAt(date(2024, time.May, 1), selected, events, today)

	var todays, selecteds int
	for _, c := range g.Cells {
		if c.IsToday {
			todays++
			if c.Key != "2024-05-15" {
				t.Errorf("IsToday set on %s", c.Key)
			}
		}
		if c.IsSelected {
			selecteds++
			if c.Key != "2024-05-20" {
				t.Errorf("IsSelected set on %s", c.Key)
			}
		}

		want := c.Key == "2024-05-03" || c.Key == "2024-06-01"
		if c.HasEvents != want {
			t.Errorf("%s HasEvents = %v, want %v", c.Key, c.HasEvents, want)
		}
	}
	if todays != 1 || selecteds != 1 {
		t.Errorf("today flagged %d times, selected %d times", todays, selecteds)
	}
}

func TestBuildTimeOfDayIgnored(t *testing.T) {
	month := time.Date(2024, time.March, 31, 23, 59, 0, 0, time.Local)
	selected := time.Date(2024, time.March, 5, 18, 30, 0, 0, time.Local)

	g := BuildAt(month, selected, nil, time.Date(2024, time.March, 5, 7, 0, 0, 0, time.Local))
	if g.Month.Day() != 1 || g.Month.Month() != time.March {
		t.Errorf("Month = %v", g.Month)
	}
	if g.Title() != "March 2024" {
		t.Errorf("Title() = %q", g.Title())
	}
	for _, c := range g.Cells {
		if c.Key == "2024-03-05" && (!c.IsSelected || !c.IsToday) {
			t.Errorf("2024-03-05 = %+v", c)
		}
	}
}

func TestWeeks(t *testing.T) {
	g := BuildAt(date(2024, time.February, 1), date(2024, time.February, 1), nil, date(2024, time.February, 1))
	weeks := g.Weeks()

	for r, row := range weeks {
		if row[0].Date.Weekday() != time.Monday || row[6].Date.Weekday() != time.Sunday {
			t.Errorf("row %d spans %s..%s", r, row[0].Date.Weekday(), row[6].Date.Weekday())
		}
	}
	if weeks[5][6].Key != g.Cells[41].Key {
		t.Errorf("last cell mismatch: %s vs %s", weeks[5][6].Key, g.Cells[41].Key)
	}
	if WeekdayLabels[0] != "Mo" || WeekdayLabels[6] != "Su" {
		t.Errorf("WeekdayLabels = %v", WeekdayLabels)
	}
}
