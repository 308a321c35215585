package planner

import (
	"slices"

	"github.com/julianstephens/studyplan/internal/logger"
	"github.com/julianstephens/studyplan/internal/models"
)

// EventInput is an event without its id.
type EventInput struct {
	Title     string
	Category  models.Category
	Date      string
	StartTime string
	EndTime   string
	Location  string
	Notes     string

	IsRecurring    bool
	RecurrenceType models.RecurrenceType
	RecurrenceEnd  string
	IsMultiDay     bool
	EndDate        string
}

func (in EventInput) event(id models.ID) models.Event {
	return models.Event{
		ID:             id,
		Title:          in.Title,
		Category:       in.Category,
		Date:           in.Date,
		StartTime:      in.StartTime,
		EndTime:        in.EndTime,
		Location:       in.Location,
		Notes:          in.Notes,
		IsRecurring:    in.IsRecurring,
		RecurrenceType: in.RecurrenceType,
		RecurrenceEnd:  in.RecurrenceEnd,
		IsMultiDay:     in.IsMultiDay,
		EndDate:        in.EndDate,
	}
}

// ExamInput is an exam without its id.
type ExamInput struct {
	Subject  string
	Date     string
	Status   models.ExamStatus
	Grade    *float64
	Percent  *int
	Semester int
	Attempt  int
	Notes    string
}

func (in ExamInput) exam(id models.ID) models.Exam {
	e := models.Exam{
		ID:       id,
		Subject:  in.Subject,
		Date:     in.Date,
		Status:   in.Status,
		Grade:    in.Grade,
		Percent:  in.Percent,
		Semester: in.Semester,
		Attempt:  in.Attempt,
		Notes:    in.Notes,
	}
	// A planned exam has no grade yet.
	if !e.GradeApplicable() {
		e.Grade = nil
	}
	return e
}

// CreateEvent validates in, assigns an id, inserts it in date order and
// persists the collection. A failed save leaves the event in memory and
// returns the error.
func (p *Planner) CreateEvent(in EventInput) (models.Event, error) {
	candidate := in.event(models.ID{})
	if r := p.validator.ValidateEvent(candidate); r.HasProblems() {
		return models.Event{}, r.Err()
	}

	e := in.event(p.nextID())
	p.events = append(p.events, e)
	sortEvents(p.events)
	logger.Debug("Created event", "id", e.ID, "date", e.Date)
	return e, p.repo.SaveEvents(p.events)
}

func (p *Planner) CreateExam(in ExamInput) (models.Exam, error) {
	candidate := in.exam(models.ID{})
	if r := p.validator.ValidateExam(candidate); r.HasProblems() {
		return models.Exam{}, r.Err()
	}

	e := in.exam(p.nextID())
	p.exams = append(p.exams, e)
	sortExams(p.exams)
	logger.Debug("Created exam", "id", e.ID, "date", e.Date)
	return e, p.repo.SaveExams(p.exams)
}

// DeleteEvent removes every event with id. Confirmation is the caller's job.
// An unknown id reports false and writes nothing.
func (p *Planner) DeleteEvent(id models.ID) (bool, error) {
	n := len(p.events)
	p.events = slices.DeleteFunc(p.events, func(e models.Event) bool { return e.ID.Equal(id) })
	if len(p.events) == n {
		return false, nil
	}
	logger.Debug("Deleted event", "id", id, "count", n-len(p.events))
	return true, p.repo.SaveEvents(p.events)
}

func (p *Planner) DeleteExam(id models.ID) (bool, error) {
	n := len(p.exams)
	p.exams = slices.DeleteFunc(p.exams, func(e models.Exam) bool { return e.ID.Equal(id) })
	if len(p.exams) == n {
		return false, nil
	}
	logger.Debug("Deleted exam", "id", id, "count", n-len(p.exams))
	return true, p.repo.SaveExams(p.exams)
}

// FindEvent looks up an event by id.
func (p *Planner) FindEvent(id models.ID) (models.Event, bool) {
	idx := slices.IndexFunc(p.events, func(e models.Event) bool { return e.ID.Equal(id) })
	if idx < 0 {
		return models.Event{}, false
	}
	return p.events[idx], true
}

func (p *Planner) FindExam(id models.ID) (models.Exam, bool) {
	idx := slices.IndexFunc(p.exams, func(e models.Exam) bool { return e.ID.Equal(id) })
	if idx < 0 {
		return models.Exam{}, false
	}
	return p.exams[idx], true
}

// Import replaces both collections wholesale and persists them. The
// document must already have been decoded and checked.
func (p *Planner) Import(events []models.Event, exams []models.Exam) error {
	p.events = slices.Clone(events)
	p.exams = slices.Clone(exams)
	if p.events == nil {
		p.events = []models.Event{}
	}
	if p.exams == nil {
		p.exams = []models.Exam{}
	}
	sortEvents(p.events)
	sortExams(p.exams)
	if n := maxNumericID(p.events, p.exams); n > p.lastID {
		p.lastID = n
	}
	logger.Info("Imported snapshot", "events", len(p.events), "exams", len(p.exams))

	if err := p.repo.SaveEvents(p.events); err != nil {
		return err
	}
	return p.repo.SaveExams(p.exams)
}
