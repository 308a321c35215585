package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/studyplan/internal/constants"
	"github.com/julianstephens/studyplan/internal/models"
	"github.com/julianstephens/studyplan/internal/planner"
	"github.com/julianstephens/studyplan/internal/tui/components/dashboard"
	"github.com/julianstephens/studyplan/internal/tui/components/eventlist"
	"github.com/julianstephens/studyplan/internal/tui/components/examlist"
	"github.com/julianstephens/studyplan/internal/tui/components/month"
	"github.com/julianstephens/studyplan/internal/utils"
)

type EventFormModel struct {
	Title     string
	Category  models.Category
	Date      string
	StartTime string
	EndTime   string
	Location  string
	Notes     string
	EndDate   string
	Repeat    models.RecurrenceType
	Until     string
}

type ExamFormModel struct {
	Subject  string
	Date     string
	Status   models.ExamStatus
	Grade    string
	Percent  string
	Semester string
	Attempt  string
	Notes    string
}

type ImportFormModel struct {
	Path string
}

type ConfirmationFormModel struct {
	Message   string
	Confirmed bool
}

// dataChangedMsg is sent after a mutation so every view reloads from the planner.
type dataChangedMsg struct {
	status string
	err    error
}

type Model struct {
	planner       *planner.Planner
	backupDir     string
	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model
	dashboard     dashboard.Model
	month         month.Model
	eventList     eventlist.Model
	examList      examlist.Model
	form          *huh.Form
	eventForm     *EventFormModel
	examForm      *ExamFormModel
	importForm    *ImportFormModel
	confirmForm   *ConfirmationFormModel
	pendingAction func() tea.Cmd
	formError     string
	status        string
	statusIsError bool
	quitting      bool
	width         int
	height        int
}

func NewModel(p *planner.Planner, backupDir string) Model {
	m := Model{
		planner:   p,
		backupDir: backupDir,
		state:     p.Selection().Tab,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		dashboard: dashboard.New(0, 0),
		month:     month.New(0, 0),
		eventList: eventlist.New(nil, 0, 0),
		examList:  examlist.New(nil, 0, 0),
	}
	m.refresh()
	return m
}

// refresh reloads every view from the planner.
func (m *Model) refresh() {
	sel := m.planner.Selection()
	m.dashboard.SetStats(m.planner.Stats())
	m.month.SetGrid(m.planner.CalendarGrid(), sel.SelectedDate, m.planner.EventsOn(utils.DateKey(sel.SelectedDate)))
	m.eventList.SetEvents(m.planner.FilteredEvents(), sel.CategoryFilter)
	m.examList.SetExams(m.planner.Exams(), m.planner.ExamCounts(), m.planner.PassPercentage(), m.planner.FormatAverageGrade())
}

func (m *Model) setStatus(status string, isError bool) {
	m.status = status
	m.statusIsError = isError
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateCalendar:
		keys = append(keys, m.month.Keys.Add, m.month.Keys.Today)
	case constants.StateEvents:
		keys = append(keys, m.eventList.Bindings()...)
	case constants.StateExams:
		keys = append(keys, m.examList.Bindings()...)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	data := []key.Binding{m.keys.Export, m.keys.Import}

	var actions []key.Binding
	switch m.state {
	case constants.StateCalendar:
		actions = m.month.Keys.Bindings()
	case constants.StateEvents:
		actions = m.eventList.Bindings()
	case constants.StateExams:
		actions = m.examList.Bindings()
	}

	return [][]key.Binding{global, data, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}
