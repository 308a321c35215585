// Package planner owns the event and exam collections, the UI selection and
// the statistics derived from them.
package planner

import (
	"errors"
	"math"
	"slices"
	"sort"
	"time"

	"github.com/julianstephens/studyplan/internal/constants"
	"github.com/julianstephens/studyplan/internal/logger"
	"github.com/julianstephens/studyplan/internal/models"
	"github.com/julianstephens/studyplan/internal/utils"
	"github.com/julianstephens/studyplan/internal/validation"
)

// Repository persists whole collections.
type Repository interface {
	LoadEvents() []models.Event
	SaveEvents(events []models.Event) error
	LoadExams() []models.Exam
	SaveExams(exams []models.Exam) error
}

// Selection is the ephemeral UI state. It is never persisted.
type Selection struct {
	Tab            constants.SessionState
	VisibleMonth   time.Time
	SelectedDate   time.Time
	CategoryFilter models.Category // empty means all categories
}

type Planner struct {
	repo          Repository
	validator     *validation.Validator
	now           func() time.Time
	seedSamples   bool
	upcomingLimit int

	events []models.Event
	exams  []models.Exam
	sel    Selection
	lastID int64
}

type Option func(*Planner)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(p *Planner) { p.now = now }
}

// WithSeedSamples controls whether empty collections receive a sample record.
func WithSeedSamples(seed bool) Option {
	return func(p *Planner) { p.seedSamples = seed }
}

// WithUpcomingLimit sets the default cap for UpcomingEvents.
func WithUpcomingLimit(n int) Option {
	return func(p *Planner) {
		if n > 0 {
			p.upcomingLimit = n
		}
	}
}

func New(repo Repository, opts ...Option) *Planner {
	p := &Planner{
		repo:          repo,
		validator:     validation.New(),
		now:           time.Now,
		seedSamples:   true,
		upcomingLimit: constants.DefaultUpcomingLimit,
		events:        []models.Event{},
		exams:         []models.Exam{},
	}
	for _, opt := range opts {
		opt(p)
	}

	today := utils.StartOfDay(p.now())
	p.sel = Selection{
		Tab:          constants.StateDashboard,
		VisibleMonth: utils.FirstOfMonth(today),
		SelectedDate: today,
	}
	return p
}

// Initialize loads both collections. An empty collection is seeded with a
// sample record when seeding is enabled, and the seed is persisted.
func (p *Planner) Initialize() error {
	p.events = p.repo.LoadEvents()
	p.exams = p.repo.LoadExams()
	sortEvents(p.events)
	sortExams(p.exams)
	p.lastID = maxNumericID(p.events, p.exams)

	if !p.seedSamples {
		return nil
	}

	var eventsErr, examsErr error
	if len(p.events) == 0 {
		p.events = append(p.events, sampleEvent(p.nextID(), p.now()))
		logger.Info("Seeded sample event")
		eventsErr = p.repo.SaveEvents(p.events)
	}
	if len(p.exams) == 0 {
		p.exams = append(p.exams, sampleExam(p.nextID()))
		logger.Info("Seeded sample exam")
		examsErr = p.repo.SaveExams(p.exams)
	}
	return errors.Join(eventsErr, examsErr)
}

// nextID returns an id based on the clock in milliseconds, bumped past the
// last issued id so rapid inserts stay unique.
func (p *Planner) nextID() models.ID {
	n := p.now().UnixMilli()
	if n <= p.lastID {
		n = p.lastID + 1
	}
	p.lastID = n
	return models.NewID(n)
}

func maxNumericID(events []models.Event, exams []models.Exam) int64 {
	var highest int64
	for _, e := range events {
		if n, ok := e.ID.Int(); ok && n > highest {
			highest = n
		}
	}
	for _, e := range exams {
		if n, ok := e.ID.Int(); ok && n > highest {
			highest = n
		}
	}
	return highest
}

// Events returns a copy of the event collection, sorted by date.
func (p *Planner) Events() []models.Event {
	return slices.Clone(p.events)
}

// Exams returns a copy of the exam collection, sorted by date.
func (p *Planner) Exams() []models.Exam {
	return slices.Clone(p.exams)
}

// Snapshot returns copies of both collections for export.
func (p *Planner) Snapshot() ([]models.Event, []models.Exam) {
	return p.Events(), p.Exams()
}

// Now is the planner's clock.
func (p *Planner) Now() time.Time {
	return p.now()
}

func sortEvents(events []models.Event) {
	sort.SliceStable(events, func(i, j int) bool { return events[i].Date < events[j].Date })
}

func sortExams(exams []models.Exam) {
	sort.SliceStable(exams, func(i, j int) bool { return exams[i].Date < exams[j].Date })
}

func round(f float64) int {
	return int(math.Floor(f + 0.5))
}
