package month

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/studyplan/internal/calendar"
	"github.com/julianstephens/studyplan/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(5).
			Align(lipgloss.Center)

	dayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Width(5).
			Align(lipgloss.Center)

	otherMonthStyle = dayStyle.
			Foreground(lipgloss.Color("240"))

	todayStyle = dayStyle.
			Foreground(lipgloss.Color("205")).
			Bold(true)

	selectedStyle = dayStyle.
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Bold(true)

	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(14)

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// MoveMsg asks for the selection to move by Days.
type MoveMsg struct {
	Days int
}

// ShiftMonthMsg asks for the visible month to change by Delta.
type ShiftMonthMsg struct {
	Delta int
}

type TodayMsg struct{}

// AddEventMsg opens the event form prefilled with Date.
type AddEventMsg struct {
	Date time.Time
}

type KeyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	Today     key.Binding
	Add       key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev day"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "prev week"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next week"),
		),
		PrevMonth: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev month"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next month"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add event"),
		),
	}
}

// Bindings lists the keys for the global help view.
func (k KeyMap) Bindings() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Up, k.Down, k.PrevMonth, k.NextMonth, k.Today, k.Add}
}

type Model struct {
	viewport viewport.Model
	Keys     KeyMap
	grid     calendar.Grid
	selected time.Time
	dayItems []models.Event
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{
		viewport: viewport.New(width, height),
		Keys:     DefaultKeyMap(),
		width:    width,
		height:   height,
	}
}

// SetGrid replaces the grid and the events shown below it for the selected day.
func (m *Model) SetGrid(g calendar.Grid, selected time.Time, dayEvents []models.Event) {
	m.grid = g
	m.selected = selected
	m.dayItems = dayEvents
	m.viewport.SetContent(m.render())
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.Keys.Left):
			return m, send(MoveMsg{Days: -1})
		case key.Matches(msg, m.Keys.Right):
			return m, send(MoveMsg{Days: 1})
		case key.Matches(msg, m.Keys.Up):
			return m, send(MoveMsg{Days: -7})
		case key.Matches(msg, m.Keys.Down):
			return m, send(MoveMsg{Days: 7})
		case key.Matches(msg, m.Keys.PrevMonth):
			return m, send(ShiftMonthMsg{Delta: -1})
		case key.Matches(msg, m.Keys.NextMonth):
			return m, send(ShiftMonthMsg{Delta: 1})
		case key.Matches(msg, m.Keys.Today):
			return m, send(TodayMsg{})
		case key.Matches(msg, m.Keys.Add):
			return m, send(AddEventMsg{Date: m.selected})
		}
	}

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
	if m.grid.Month.IsZero() {
		return ""
	}

	var b strings.Builder
	b.WriteString(Render(m.grid))
	b.WriteString("\n\n")
	b.WriteString(headingStyle.Render(m.selected.Format("Monday, 2 January 2006")))
	b.WriteString("\n")
	if len(m.dayItems) == 0 {
		b.WriteString(emptyStyle.Render("No events. Press 'a' to add one."))
		return b.String()
	}
	for _, e := range m.dayItems {
		when := e.TimeRange()
		if when == "" {
			when = "all day"
		}
		line := fmt.Sprintf("%s [%s]", e.Title, e.Category.Label())
		if e.Location != "" {
			line += " @ " + e.Location
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, timeStyle.Render(when), line))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// Render draws the month title, the weekday header and six week rows.
// Days with events carry a dot.
func Render(g calendar.Grid) string {
	rows := []string{titleStyle.Render(g.Title())}

	labels := make([]string, 0, len(calendar.WeekdayLabels))
	for _, l := range calendar.WeekdayLabels {
		labels = append(labels, labelStyle.Render(l))
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, labels...))

	for _, week := range g.Weeks() {
		cells := make([]string, 0, len(week))
		for _, c := range week {
			cells = append(cells, renderCell(c))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderCell(c calendar.Cell) string {
	text := fmt.Sprintf("%d", c.Date.Day())
	if c.HasEvents {
		text += "•"
	}

	switch {
	case c.IsSelected:
		return selectedStyle.Render(text)
	case c.IsToday:
		return todayStyle.Render(text)
	case c.OtherMonth:
		return otherMonthStyle.Render(text)
	default:
		return dayStyle.Render(text)
	}
}

func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
