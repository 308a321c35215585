package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/studyplan/internal/constants"
)

var tabTitles = map[constants.SessionState]string{
	constants.StateDashboard: "Dashboard",
	constants.StateCalendar:  "Calendar",
	constants.StateEvents:    "Events",
	constants.StateExams:     "Exams",
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case constants.StateDashboard:
		content = docStyle.Render(m.dashboard.View())
	case constants.StateCalendar:
		content = docStyle.Render(m.month.View())
	case constants.StateEvents:
		content = docStyle.Render(m.eventList.View())
	case constants.StateExams:
		content = docStyle.Render(m.examList.View())
	case constants.StateAddEvent, constants.StateAddExam, constants.StateImport:
		content = m.viewForm()
	case constants.StateConfirmation:
		content = m.viewConfirmation()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		m.viewStatus(),
		content,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	active := m.state
	if !isTab(active) {
		active = m.previousState
	}

	var tabs []string
	for _, s := range constants.Tabs {
		if s == active {
			tabs = append(tabs, activeTabStyle.Render(tabTitles[s]))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(tabTitles[s]))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusIsError {
		return warningStyle.Padding(0, 1).Render("⚠ " + m.status)
	}
	return statusStyle.Render(m.status)
}

func (m Model) viewForm() string {
	if m.formError == "" {
		return docStyle.Render(m.form.View())
	}
	return docStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		dangerStyle.Render("Error: "+m.formError),
		"",
		m.form.View(),
	))
}

func (m Model) viewConfirmation() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Are you sure?"),
			"",
			m.form.View(),
		),
	)
}
