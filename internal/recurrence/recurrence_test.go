package recurrence

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/studyplan/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func series(rt models.RecurrenceType, date, end string) models.Event {
	return models.Event{
		ID:             models.StringID("100"),
		Title:          "Anatomy lecture",
		Category:       models.CategoryLecture,
		Date:           date,
		StartTime:      "08:15",
		EndTime:        "09:45",
		IsRecurring:    true,
		RecurrenceType: rt,
		RecurrenceEnd:  end,
	}
}

func keys(events []models.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Date
	}
	return out
}

func TestExpand(t *testing.T) {
	tests := []struct {
		name  string
		event models.Event
		from  time.Time
		to    time.Time
		want  []string
	}{
		{
			name:  "weekly until end date",
			event: series(models.RecurrenceWeekly, "2024-05-06", "2024-05-27"),
			from:  day(2024, time.May, 1),
			to:    day(2024, time.June, 30),
			want:  []string{"2024-05-13", "2024-05-20", "2024-05-27"},
		},
		{
			name:  "biweekly",
			event: series(models.RecurrenceBiweekly, "2024-05-06", "2024-06-30"),
			from:  day(2024, time.May, 1),
			to:    day(2024, time.May, 31),
			want:  []string{"2024-05-20"},
		},
		{
			name:  "daily clipped by window",
			event: series(models.RecurrenceDaily, "2024-05-06", ""),
			from:  day(2024, time.May, 8),
			to:    day(2024, time.May, 10),
			want:  []string{"2024-05-08", "2024-05-09", "2024-05-10"},
		},
		{
			name:  "monthly skips short months",
			event: series(models.RecurrenceMonthly, "2024-01-31", ""),
			from:  day(2024, time.January, 1),
			to:    day(2024, time.June, 30),
			want:  []string{"2024-03-31", "2024-05-31"},
		},
		{
			name:  "all-day event",
			event: models.Event{ID: models.NewID(7), Title: "Study group", Category: models.CategoryStudyGroup, Date: "2024-05-06", IsRecurring: true, RecurrenceType: models.RecurrenceWeekly, RecurrenceEnd: "2024-05-13"},
			from:  day(2024, time.May, 1),
			to:    day(2024, time.May, 31),
			want:  []string{"2024-05-13"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Expand(tt.event, tt.from, tt.to)
			if err != nil {
				t.Fatalf("Expand() error = %v", err)
			}
			if strings.Join(keys(got), ",") != strings.Join(tt.want, ",") {
				t.Errorf("Expand() dates = %v, want %v", keys(got), tt.want)
			}
		})
	}
}

func TestExpandOccurrenceFields(t *testing.T) {
	parent := series(models.RecurrenceWeekly, "2024-05-06", "2024-05-13")
	got, err := Expand(parent, day(2024, time.May, 1), day(2024, time.May, 31))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("Expand() = %d occurrences", len(got))
	}

	o := got[0]
	if !o.GeneratedFromRecurring || o.IsRecurring || o.ParentID.String() != "100" || o.ID.String() != "100_2024-05-13" {
		t.Errorf("occurrence = %+v", o)
	}
	if o.Title != parent.Title || o.StartTime != "08:15" || o.EndTime != "09:45" {
		t.Errorf("occurrence lost parent fields: %+v", o)
	}
}

func TestNotRecurring(t *testing.T) {
	plain := models.Event{ID: models.NewID(1), Title: "x", Category: models.CategoryOther, Date: "2024-05-06"}
	if _, err := Rule(plain); !errors.Is(err, ErrNotRecurring) {
		t.Errorf("Rule() error = %v, want ErrNotRecurring", err)
	}

	unknown := series("yearly", "2024-05-06", "")
	if _, err := Expand(unknown, day(2024, 1, 1), day(2024, 12, 31)); !errors.Is(err, ErrNotRecurring) {
		t.Errorf("Expand() error = %v, want ErrNotRecurring", err)
	}

	if _, err := Rule(series(models.RecurrenceDaily, "not-a-date", "")); err == nil {
		t.Error("Rule() should reject an invalid date")
	}
}

func TestOptionsRRuleString(t *testing.T) {
	opt, err := Options(series(models.RecurrenceBiweekly, "2024-05-06", ""))
	if err != nil {
		t.Fatal(err)
	}
	if got := opt.RRuleString(); got != "FREQ=WEEKLY;INTERVAL=2" {
		t.Errorf("RRuleString() = %q", got)
	}

	opt, err = Options(series(models.RecurrenceMonthly, "2024-05-06", "2024-12-31"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(opt.RRuleString(), "FREQ=MONTHLY;INTERVAL=1;UNTIL=") {
		t.Errorf("RRuleString() = %q", opt.RRuleString())
	}
	if opt.Until.Day() != 31 || opt.Until.Hour() != 23 {
		t.Errorf("Until = %v, want end of 2024-12-31", opt.Until)
	}
}

func TestExpandAll(t *testing.T) {
	events := []models.Event{
		series(models.RecurrenceWeekly, "2024-05-06", "2024-05-20"),
		{ID: models.NewID(2), Title: "one-off", Category: models.CategoryOther, Date: "2024-05-07"},
		{ID: models.NewID(3), Title: "broken", Category: models.CategoryOther, Date: "bad", IsRecurring: true, RecurrenceType: models.RecurrenceDaily},
	}
	got := ExpandAll(events, day(2024, time.May, 1), day(2024, time.May, 31))
	if strings.Join(keys(got), ",") != "2024-05-13,2024-05-20" {
		t.Errorf("ExpandAll() = %v", keys(got))
	}
}

func TestDescribe(t *testing.T) {
	if got := Describe(series(models.RecurrenceWeekly, "2024-05-06", "2024-07-31")); got != "weekly until 2024-07-31" {
		t.Errorf("Describe() = %q", got)
	}
	if got := Describe(series(models.RecurrenceDaily, "2024-05-06", "")); got != "daily" {
		t.Errorf("Describe() = %q", got)
	}
	if got := Describe(models.Event{}); got != "" {
		t.Errorf("Describe() of a plain event = %q", got)
	}
}
