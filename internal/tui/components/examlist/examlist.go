package examlist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/studyplan/internal/models"
	"github.com/julianstephens/studyplan/internal/planner"
)

var (
	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginBottom(1)

	failedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

type AddExamMsg struct{}

type DeleteExamMsg struct {
	ID      models.ID
	Subject string
}

type Item struct {
	Exam models.Exam
}

func (i Item) Title() string {
	x := i.Exam
	switch x.Status {
	case models.ExamPassed:
		return "✓ " + x.Subject
	case models.ExamFailed:
		return failedStyle.Render("✗ " + x.Subject)
	}
	return "○ " + x.Subject
}
func (i Item) Description() string {
	x := i.Exam
	parts := []string{x.Date, string(x.Status)}
	if x.HasGrade() {
		parts = append(parts, fmt.Sprintf("grade %s (%s)", models.FormatGrade(x.Grade), models.BandFor(*x.Grade)))
	}
	if x.Percent != nil {
		parts = append(parts, fmt.Sprintf("%d%%", *x.Percent))
	}
	parts = append(parts, fmt.Sprintf("semester %d", x.Semester), fmt.Sprintf("attempt %d", x.Attempt))
	return strings.Join(parts, " | ")
}
func (i Item) FilterValue() string { return i.Exam.Subject }

type KeyMap struct {
	Add    key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list    list.Model
	keys    KeyMap
	summary string
}

func New(exams []models.Exam, width, height int) Model {
	l := list.New(toItems(exams), list.NewDefaultDelegate(), width, height)
	l.Title = "Exams"
	l.SetShowHelp(false)
	return Model{list: l, keys: DefaultKeyMap()}
}

// SetExams replaces the list and the progress line above it.
func (m *Model) SetExams(exams []models.Exam, counts planner.ExamCounts, passPct int, avg string) {
	m.list.SetItems(toItems(exams))
	m.summary = fmt.Sprintf("%d passed, %d failed, %d planned | pass rate %d%% | average grade %s",
		counts.Passed, counts.Failed, counts.Planned, passPct, avg)
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddExamMsg{} }
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteExamMsg{ID: i.Exam.ID, Subject: i.Exam.Subject} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	summary := summaryStyle.Render(m.summary)
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return summary + "\n  No exams yet.\n  Press 'a' to add one."
	}
	return lipgloss.JoinVertical(lipgloss.Left, summary, m.list.View())
}

// SetSize reserves two lines for the summary.
func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, max(height-2, 0))
}

func (m Model) Bindings() []key.Binding {
	return []key.Binding{m.keys.Add, m.keys.Delete}
}

func toItems(exams []models.Exam) []list.Item {
	items := make([]list.Item, len(exams))
	for i, x := range exams {
		items[i] = Item{Exam: x}
	}
	return items
}
