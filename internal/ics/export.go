// Package ics renders events and exams as an iCalendar feed.
package ics

import (
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/julianstephens/studyplan/internal/constants"
	"github.com/julianstephens/studyplan/internal/logger"
	"github.com/julianstephens/studyplan/internal/models"
	"github.com/julianstephens/studyplan/internal/recurrence"
	"github.com/julianstephens/studyplan/internal/utils"
)

// defaultDuration applies to timed events without an end time.
const defaultDuration = time.Hour

// uidNamespace keeps UIDs stable across exports of the same record.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/julianstephens/studyplan"))

// UID returns the stable iCalendar UID for a record of kind ("event" or "exam").
func UID(kind string, id models.ID) string {
	return uuid.NewSHA1(uidNamespace, []byte(kind+":"+id.String())).String() + "@" + constants.AppName
}

// Build assembles the calendar. Generated recurrence occurrences are
// skipped; recurring events carry an RRULE instead.
func Build(events []models.Event, exams []models.Exam, now time.Time) *ical.Calendar {
	cal := ical.NewCalendarFor(constants.AppName)
	cal.SetMethod(ical.MethodPublish)
	cal.SetXWRCalName("Study plan")

	for _, e := range events {
		if e.GeneratedFromRecurring {
			continue
		}
		if err := addEvent(cal, e, now); err != nil {
			logger.Warn("Skipping event in calendar export", "id", e.ID, "error", err)
		}
	}
	for _, x := range exams {
		if err := addExam(cal, x, now); err != nil {
			logger.Warn("Skipping exam in calendar export", "id", x.ID, "error", err)
		}
	}
	return cal
}

// Write serializes the calendar for events and exams to w.
func Write(w io.Writer, events []models.Event, exams []models.Exam, now time.Time) error {
	if err := Build(events, exams, now).SerializeTo(w); err != nil {
		return fmt.Errorf("failed to write calendar: %w", err)
	}
	return nil
}

func addEvent(cal *ical.Calendar, e models.Event, now time.Time) error {
	date, err := utils.ParseDateKey(e.Date)
	if err != nil {
		return err
	}

	ev := cal.AddEvent(UID("event", e.ID))
	ev.SetDtStampTime(now)
	ev.SetSummary(e.Title)
	ev.AddCategory(e.Category.Label())
	if e.Location != "" {
		ev.SetLocation(e.Location)
	}
	if e.Notes != "" {
		ev.SetDescription(e.Notes)
	}

	allDay := e.StartTime == ""
	if allDay {
		ev.SetAllDayStartAt(date)
		last := date
		if e.IsMultiDay && e.EndDate != "" {
			if end, err := utils.ParseDateKey(e.EndDate); err == nil && !end.Before(date) {
				last = end
			}
		}
		ev.SetAllDayEndAt(last.AddDate(0, 0, 1))
	} else {
		start, err := utils.CombineDateAndTime(e.Date, e.StartTime, time.Local)
		if err != nil {
			return err
		}
		end := start.Add(defaultDuration)
		if e.EndTime != "" {
			if t, err := utils.CombineDateAndTime(e.Date, e.EndTime, time.Local); err == nil && t.After(start) {
				end = t
			}
		}
		ev.SetStartAt(start)
		ev.SetEndAt(end)
	}

	if e.IsRecurring {
		rule, err := rruleFor(e, allDay)
		if err != nil {
			logger.Warn("Exporting recurring event without rule", "id", e.ID, "error", err)
		} else {
			ev.AddRrule(rule)
		}
	}
	return nil
}

// rruleFor renders the RRULE value. All-day series use a DATE-valued UNTIL.
func rruleFor(e models.Event, allDay bool) (string, error) {
	opt, err := recurrence.Options(e)
	if err != nil {
		return "", err
	}
	if !allDay || opt.Until.IsZero() {
		return opt.RRuleString(), nil
	}
	until := opt.Until
	opt.Until = time.Time{}
	return opt.RRuleString() + ";UNTIL=" + until.Format("20060102"), nil
}

func addExam(cal *ical.Calendar, x models.Exam, now time.Time) error {
	date, err := utils.ParseDateKey(x.Date)
	if err != nil {
		return err
	}

	ev := cal.AddEvent(UID("exam", x.ID))
	ev.SetDtStampTime(now)
	ev.SetSummary("Exam: " + x.Subject)
	ev.AddCategory("Exam")
	ev.SetAllDayStartAt(date)
	ev.SetAllDayEndAt(date.AddDate(0, 0, 1))
	ev.SetDescription(examDescription(x))
	return nil
}

func examDescription(x models.Exam) string {
	parts := []string{"Status: " + string(x.Status)}
	if x.HasGrade() {
		parts = append(parts, "Grade: "+models.FormatGrade(x.Grade))
	}
	if x.Percent != nil {
		parts = append(parts, fmt.Sprintf("Score: %d%%", *x.Percent))
	}
	parts = append(parts, fmt.Sprintf("Semester %d, attempt %d", x.Semester, x.Attempt))
	if x.Notes != "" {
		parts = append(parts, x.Notes)
	}
	return strings.Join(parts, "\n")
}
