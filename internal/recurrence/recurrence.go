// Package recurrence expands recurring events into dated occurrences using
// RFC 5545 rules.
package recurrence

import (
	"errors"
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/julianstephens/studyplan/internal/models"
	"github.com/julianstephens/studyplan/internal/utils"
)

// ErrNotRecurring is returned for events without a usable recurrence.
var ErrNotRecurring = errors.New("event is not recurring")

// Options builds the rule options for e. DTSTART is the event's date and
// start time; UNTIL is the last second of the recurrence end date.
func Options(e models.Event) (rrule.ROption, error) {
	if !e.IsRecurring || e.RecurrenceType == "" {
		return rrule.ROption{}, ErrNotRecurring
	}

	start, err := utils.ParseDateKey(e.Date)
	if err != nil {
		return rrule.ROption{}, fmt.Errorf("invalid event date: %w", err)
	}
	if e.StartTime != "" {
		if start, err = utils.CombineDateAndTime(e.Date, e.StartTime, time.Local); err != nil {
			return rrule.ROption{}, fmt.Errorf("invalid start time: %w", err)
		}
	}

	opt := rrule.ROption{Dtstart: start, Interval: 1}
	switch e.RecurrenceType {
	case models.RecurrenceDaily:
		opt.Freq = rrule.DAILY
	case models.RecurrenceWeekly:
		opt.Freq = rrule.WEEKLY
	case models.RecurrenceBiweekly:
		opt.Freq = rrule.WEEKLY
		opt.Interval = 2
	case models.RecurrenceMonthly:
		opt.Freq = rrule.MONTHLY
	default:
		return rrule.ROption{}, fmt.Errorf("%w: unknown recurrence %q", ErrNotRecurring, e.RecurrenceType)
	}

	if e.RecurrenceEnd != "" {
		end, err := utils.ParseDateKey(e.RecurrenceEnd)
		if err != nil {
			return rrule.ROption{}, fmt.Errorf("invalid recurrence end: %w", err)
		}
		opt.Until = end.AddDate(0, 0, 1).Add(-time.Second)
	}
	return opt, nil
}

// Rule returns the recurrence rule for e.
func Rule(e models.Event) (*rrule.RRule, error) {
	opt, err := Options(e)
	if err != nil {
		return nil, err
	}
	return rrule.NewRRule(opt)
}

// Expand materialises the occurrences of e whose dates fall within
// [from, to], excluding the event's own date. Occurrences are flagged as
// generated and are never persisted.
func Expand(e models.Event, from, to time.Time) ([]models.Event, error) {
	r, err := Rule(e)
	if err != nil {
		return nil, err
	}

	out := []models.Event{}
	for _, t := range r.Between(utils.StartOfDay(from), utils.StartOfDay(to).AddDate(0, 0, 1).Add(-time.Second), true) {
		key := utils.DateKey(t)
		if key == e.Date {
			continue
		}
		out = append(out, occurrence(e, key))
	}
	return out, nil
}

// ExpandAll expands every recurring event in events over [from, to].
// Events whose rule cannot be built are skipped.
func ExpandAll(events []models.Event, from, to time.Time) []models.Event {
	out := []models.Event{}
	for _, e := range events {
		if !e.IsRecurring || e.GeneratedFromRecurring {
			continue
		}
		occ, err := Expand(e, from, to)
		if err != nil {
			continue
		}
		out = append(out, occ...)
	}
	return out
}

func occurrence(parent models.Event, key string) models.Event {
	o := parent
	o.ID = models.StringID(parent.ID.String() + "_" + key)
	o.Date = key
	o.IsRecurring = false
	o.RecurrenceType = ""
	o.RecurrenceEnd = ""
	o.GeneratedFromRecurring = true
	o.ParentID = parent.ID
	return o
}

// Describe renders the recurrence for list output, e.g. "weekly until 2024-07-31".
func Describe(e models.Event) string {
	if !e.IsRecurring || e.RecurrenceType == "" {
		return ""
	}
	if e.RecurrenceEnd == "" {
		return string(e.RecurrenceType)
	}
	return string(e.RecurrenceType) + " until " + e.RecurrenceEnd
}
