package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/studyplan/internal/models"
	"github.com/julianstephens/studyplan/internal/planner"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2).
			MarginRight(1).
			Width(20)

	cardValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	cardLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			MarginTop(1)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(24)

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

type Model struct {
	viewport viewport.Model
	stats    planner.Stats
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height), width: width, height: height}
}

func (m *Model) SetStats(s planner.Stats) {
	m.stats = s
	m.viewport.SetContent(m.render())
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.viewport.SetContent(m.render())
}

func (m Model) render() string {
	s := m.stats
	decided := s.Exams.Passed + s.Exams.Failed

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card(fmt.Sprintf("%d", s.TodayCount), "events today"),
		card(fmt.Sprintf("%d", s.WeekCount), "events this week"),
		card(fmt.Sprintf("%d/%d", s.Exams.Passed, decided), fmt.Sprintf("exams passed (%d%%)", s.PassPercentage)),
		card(s.AverageGrade, "average grade"),
	)

	var b strings.Builder
	b.WriteString(cards)
	b.WriteString("\n")
	b.WriteString(headingStyle.Render("Upcoming"))
	b.WriteString("\n")
	if len(s.Upcoming) == 0 {
		b.WriteString(emptyStyle.Render("Nothing scheduled."))
		return b.String()
	}
	for _, e := range s.Upcoming {
		b.WriteString(upcomingLine(e))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func card(value, label string) string {
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		cardValueStyle.Render(value),
		cardLabelStyle.Render(label),
	))
}

func upcomingLine(e models.Event) string {
	when := e.Date
	if tr := e.TimeRange(); tr != "" {
		when += " " + tr
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		dateStyle.Render(when),
		fmt.Sprintf("%s [%s]", e.Title, e.Category.Label()),
	)
}
