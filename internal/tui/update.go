package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/studyplan/internal/backup"
	"github.com/julianstephens/studyplan/internal/constants"
	"github.com/julianstephens/studyplan/internal/models"
	"github.com/julianstephens/studyplan/internal/tui/components/eventlist"
	"github.com/julianstephens/studyplan/internal/tui/components/examlist"
	"github.com/julianstephens/studyplan/internal/tui/components/month"
	"github.com/julianstephens/studyplan/internal/utils"
)

func isTab(s constants.SessionState) bool {
	for _, t := range constants.Tabs {
		if t == s {
			return true
		}
	}
	return false
}

func confirm(message string, action func() tea.Cmd) tea.Cmd {
	return func() tea.Msg {
		return constants.ConfirmationMsg{Message: message, Action: action}
	}
}

func changed(status string, err error) tea.Cmd {
	return func() tea.Msg { return dataChangedMsg{status: status, err: err} }
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// Tabs, status line and help
		contentHeight := msg.Height - 5

		h, v := docStyle.GetFrameSize()
		m.dashboard.SetSize(msg.Width-h, contentHeight-v)
		m.month.SetSize(msg.Width-h, contentHeight-v)
		m.eventList.SetSize(msg.Width-h, contentHeight-v)
		m.examList.SetSize(msg.Width-h, contentHeight-v)
		if isTab(m.state) {
			return m, nil
		}

	case dataChangedMsg:
		m.refresh()
		if msg.err != nil {
			m.setStatus(msg.err.Error(), true)
		} else {
			m.setStatus(msg.status, false)
		}
		return m, nil

	case constants.ConfirmationMsg:
		m.confirmForm = &ConfirmationFormModel{Message: msg.Message}
		m.pendingAction = msg.Action
		if isTab(m.state) {
			m.previousState = m.state
		}
		m.form = NewConfirmationForm(m.confirmForm)
		m.state = constants.StateConfirmation
		return m, m.form.Init()
	}

	switch m.state {
	case constants.StateAddEvent:
		return m.updateEventForm(msg)
	case constants.StateAddExam:
		return m.updateExamForm(msg)
	case constants.StateImport:
		return m.updateImportForm(msg)
	case constants.StateConfirmation:
		return m.updateConfirmation(msg)
	}

	return m.updateTab(msg)
}

func (m Model) updateTab(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

		filtering := (m.state == constants.StateEvents && m.eventList.Filtering()) ||
			(m.state == constants.StateExams && m.examList.Filtering())
		if !filtering {
			switch {
			case key.Matches(msg, m.keys.Quit):
				m.quitting = true
				return m, tea.Quit
			case key.Matches(msg, m.keys.Tab):
				m.switchTab(1)
				return m, nil
			case key.Matches(msg, m.keys.ShiftTab):
				m.switchTab(-1)
				return m, nil
			case key.Matches(msg, m.keys.Help):
				m.help.ShowAll = !m.help.ShowAll
				return m, nil
			case key.Matches(msg, m.keys.Export):
				m.export()
				return m, nil
			case key.Matches(msg, m.keys.Import):
				return m, m.openImportForm()
			}
		}
	}

	switch msg := msg.(type) {
	case month.MoveMsg:
		m.planner.SelectDate(m.planner.Selection().SelectedDate.AddDate(0, 0, msg.Days))
		m.refresh()
		return m, nil

	case month.ShiftMonthMsg:
		m.planner.ShiftMonth(msg.Delta)
		m.refresh()
		return m, nil

	case month.TodayMsg:
		m.planner.GoToToday()
		m.refresh()
		return m, nil

	case month.AddEventMsg:
		return m, m.openEventForm(msg.Date)

	case eventlist.AddEventMsg:
		return m, m.openEventForm(m.planner.Selection().SelectedDate)

	case eventlist.CycleFilterMsg:
		c := m.planner.CycleCategoryFilter()
		m.refresh()
		if c == "" {
			m.setStatus("Showing all categories", false)
		} else {
			m.setStatus("Showing "+c.Label(), false)
		}
		return m, nil

	case eventlist.DeleteEventMsg:
		p, id := m.planner, msg.ID
		return m, confirm(fmt.Sprintf("Delete event %q?", msg.Title), func() tea.Cmd {
			ok, err := p.DeleteEvent(id)
			switch {
			case err != nil:
				return changed("", fmt.Errorf("event deleted but not saved: %w", err))
			case !ok:
				return changed("", fmt.Errorf("event %s not found", id))
			}
			return changed("Deleted event "+id.String(), nil)
		})

	case examlist.AddExamMsg:
		return m, m.openExamForm()

	case examlist.DeleteExamMsg:
		p, id := m.planner, msg.ID
		return m, confirm(fmt.Sprintf("Delete exam %q?", msg.Subject), func() tea.Cmd {
			ok, err := p.DeleteExam(id)
			switch {
			case err != nil:
				return changed("", fmt.Errorf("exam deleted but not saved: %w", err))
			case !ok:
				return changed("", fmt.Errorf("exam %s not found", id))
			}
			return changed("Deleted exam "+id.String(), nil)
		})
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case constants.StateCalendar:
		m.month, cmd = m.month.Update(msg)
	case constants.StateEvents:
		m.eventList, cmd = m.eventList.Update(msg)
	case constants.StateExams:
		m.examList, cmd = m.examList.Update(msg)
	}
	return m, cmd
}

func (m *Model) switchTab(delta int) {
	n := len(constants.Tabs)
	idx := 0
	for i, t := range constants.Tabs {
		if t == m.state {
			idx = i
		}
	}
	m.state = constants.Tabs[((idx+delta)%n+n)%n]
	m.planner.SetTab(m.state)
	m.setStatus("", false)
}

func (m *Model) export() {
	events, exams := m.planner.Snapshot()
	snap := backup.NewSnapshot(events, exams, m.planner.Now())
	path, err := backup.NewManager(m.backupDir).WithClock(m.planner.Now).Export(snap)
	if err != nil {
		m.setStatus(fmt.Sprintf("Export failed: %v", err), true)
		return
	}
	m.setStatus("Exported to "+path, false)
}

func (m *Model) openForm(state constants.SessionState, form *huh.Form) tea.Cmd {
	m.form = form
	m.formError = ""
	if isTab(m.state) {
		m.previousState = m.state
	}
	m.state = state
	return m.form.Init()
}

func (m *Model) openEventForm(date time.Time) tea.Cmd {
	if date.IsZero() {
		date = m.planner.Now()
	}
	m.eventForm = &EventFormModel{
		Category: models.CategoryLecture,
		Date:     utils.DateKey(date),
	}
	return m.openForm(constants.StateAddEvent, NewEventForm(m.eventForm))
}

func (m *Model) openExamForm() tea.Cmd {
	m.examForm = &ExamFormModel{
		Date:     utils.DateKey(m.planner.Now()),
		Status:   models.ExamPlanned,
		Semester: "1",
		Attempt:  "1",
	}
	return m.openForm(constants.StateAddExam, NewExamForm(m.examForm))
}

func (m *Model) openImportForm() tea.Cmd {
	m.importForm = &ImportFormModel{}
	return m.openForm(constants.StateImport, NewImportForm(m.importForm))
}

// updateForm feeds msg to the active form. Esc returns to the tab the form
// was opened from.
func (m *Model) updateForm(msg tea.Msg) (tea.Cmd, bool) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.formError = ""
		m.state = m.previousState
		return nil, true
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateAborted {
		m.formError = ""
		m.state = m.previousState
		return cmd, true
	}
	return cmd, false
}

func (m Model) updateEventForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd, done := m.updateForm(msg)
	if done || m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if err := m.saveEventForm(); err != nil {
		m.formError = err.Error()
		m.form.State = huh.StateNormal
	}
	return m, cmd
}

// saveEventForm creates the event. A validation error keeps the form open;
// a storage error closes it and is reported in the status line.
func (m *Model) saveEventForm() error {
	e, err := m.planner.CreateEvent(eventInput(m.eventForm))
	if err != nil && e.ID.IsZero() {
		return err
	}

	m.formError = ""
	m.state = m.previousState
	m.refresh()
	if err != nil {
		m.setStatus(fmt.Sprintf("Event added but not saved: %v", err), true)
	} else {
		m.setStatus("Added event: "+e.Title, false)
	}
	return nil
}

func (m Model) updateExamForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd, done := m.updateForm(msg)
	if done || m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if err := m.saveExamForm(); err != nil {
		m.formError = err.Error()
		m.form.State = huh.StateNormal
	}
	return m, cmd
}

func (m *Model) saveExamForm() error {
	in, err := examInput(m.examForm)
	if err != nil {
		return err
	}
	x, err := m.planner.CreateExam(in)
	if err != nil && x.ID.IsZero() {
		return err
	}

	m.formError = ""
	m.state = m.previousState
	m.refresh()
	if err != nil {
		m.setStatus(fmt.Sprintf("Exam added but not saved: %v", err), true)
	} else {
		m.setStatus("Added exam: "+x.Subject, false)
	}
	return nil
}

func (m Model) updateImportForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd, done := m.updateForm(msg)
	if done || m.form.State != huh.StateCompleted {
		return m, cmd
	}

	next, err := m.prepareImport()
	if err != nil {
		m.formError = err.Error()
		m.form.State = huh.StateNormal
		return m, cmd
	}
	m.formError = ""
	return m, tea.Batch(cmd, next)
}

// prepareImport decodes the chosen file and asks for confirmation. Nothing
// changes until the confirmation is accepted.
func (m *Model) prepareImport() (tea.Cmd, error) {
	path, err := backup.NewManager(m.backupDir).Resolve(m.importForm.Path)
	if err != nil {
		return nil, err
	}
	events, exams, err := backup.ReadFile(path)
	if err != nil {
		return nil, err
	}

	p := m.planner
	msg := fmt.Sprintf("Replace all data with %d events and %d exams from %s?", len(events), len(exams), path)
	return confirm(msg, func() tea.Cmd {
		if err := p.Import(events, exams); err != nil {
			return changed("", fmt.Errorf("import failed: %w", err))
		}
		return changed(fmt.Sprintf("Imported %d events and %d exams", len(events), len(exams)), nil)
	}), nil
}

func (m Model) updateConfirmation(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.pendingAction = nil
		m.state = m.previousState
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		if m.confirmForm.Confirmed && m.pendingAction != nil {
			cmds = append(cmds, m.pendingAction())
		}
		m.pendingAction = nil
		m.state = m.previousState
	case huh.StateAborted:
		m.pendingAction = nil
		m.state = m.previousState
	}
	return m, tea.Batch(cmds...)
}
