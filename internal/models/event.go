package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Category string

const (
	CategoryLecture     Category = "lecture"
	CategoryLab         Category = "lab"
	CategorySeminar     Category = "seminar"
	CategoryExamBlock   Category = "exam-block"
	CategoryStudyGroup  Category = "study-group"
	CategoryOfficeHours Category = "office-hours"
	CategoryOther       Category = "other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryLecture,
	CategoryLab,
	CategorySeminar,
	CategoryExamBlock,
	CategoryStudyGroup,
	CategoryOfficeHours,
	CategoryOther,
}

// legacyCategories maps the German values found in older backup files.
var legacyCategories = map[string]Category{
	"vorlesung":    CategoryLecture,
	"praktikum":    CategoryLab,
	"klausur":      CategoryExamBlock,
	"lerngruppe":   CategoryStudyGroup,
	"sprechstunde": CategoryOfficeHours,
	"sonstige":     CategoryOther,
}

var categoryLabels = map[Category]string{
	CategoryLecture:     "Lecture",
	CategoryLab:         "Lab",
	CategorySeminar:     "Seminar",
	CategoryExamBlock:   "Exam block",
	CategoryStudyGroup:  "Study group",
	CategoryOfficeHours: "Office hours",
	CategoryOther:       "Other",
}

// ParseCategory normalizes s into a known category.
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	if c, ok := legacyCategories[s]; ok {
		return c, nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label is the human readable name of the category.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// UnmarshalJSON maps legacy values onto the current set and keeps unknown values verbatim.
func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if parsed, err := ParseCategory(s); err == nil {
		*c = parsed
		return nil
	}
	*c = Category(s)
	return nil
}

type RecurrenceType string

const (
	RecurrenceDaily    RecurrenceType = "daily"
	RecurrenceWeekly   RecurrenceType = "weekly"
	RecurrenceBiweekly RecurrenceType = "biweekly"
	RecurrenceMonthly  RecurrenceType = "monthly"
)

func (r RecurrenceType) Valid() bool {
	switch r {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceBiweekly, RecurrenceMonthly:
		return true
	}
	return false
}

type Event struct {
	ID        ID       `json:"id"`
	Title     string   `json:"title"`
	Category  Category `json:"category"`
	Date      string   `json:"date"`                // YYYY-MM-DD
	StartTime string   `json:"startTime,omitempty"` // HH:MM
	EndTime   string   `json:"endTime,omitempty"`   // HH:MM
	Location  string   `json:"location,omitempty"`
	Notes     string   `json:"notes,omitempty"`

	// Recurrence and multi-day metadata. The planner carries these through
	// untouched; expansion lives in the recurrence package.
	IsRecurring            bool           `json:"isRecurring,omitempty"`
	RecurrenceType         RecurrenceType `json:"recurrenceType,omitempty"`
	RecurrenceEnd          string         `json:"recurrenceEnd,omitempty"`
	IsMultiDay             bool           `json:"isMultiDay,omitempty"`
	EndDate                string         `json:"endDate,omitempty"`
	GeneratedFromRecurring bool           `json:"generatedFromRecurring,omitempty"`
	ParentID               ID             `json:"parentId,omitzero"`
	ParentMultiDayID       ID             `json:"parentMultiDayId,omitzero"`
}

// TimeRange renders the optional start/end times, e.g. "08:15–09:45".
func (e Event) TimeRange() string {
	switch {
	case e.StartTime != "" && e.EndTime != "":
		return e.StartTime + "–" + e.EndTime
	case e.StartTime != "":
		return e.StartTime
	case e.EndTime != "":
		return "until " + e.EndTime
	}
	return ""
}
