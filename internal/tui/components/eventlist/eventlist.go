package eventlist

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/studyplan/internal/models"
	"github.com/julianstephens/studyplan/internal/recurrence"
)

type AddEventMsg struct{}

type DeleteEventMsg struct {
	ID    models.ID
	Title string
}

type CycleFilterMsg struct{}

type Item struct {
	Event models.Event
}

func (i Item) Title() string { return i.Event.Title }
func (i Item) Description() string {
	e := i.Event
	parts := []string{e.Date}
	if tr := e.TimeRange(); tr != "" {
		parts = append(parts, tr)
	}
	parts = append(parts, e.Category.Label())
	if e.Location != "" {
		parts = append(parts, e.Location)
	}
	if e.IsMultiDay && e.EndDate != "" {
		parts = append(parts, "until "+e.EndDate)
	}
	if e.IsRecurring {
		parts = append(parts, recurrence.Describe(e))
	}
	return strings.Join(parts, " | ")
}
func (i Item) FilterValue() string { return i.Event.Title }

type KeyMap struct {
	Add    key.Binding
	Delete key.Binding
	Filter key.Binding
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
		Filter: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "cycle category"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(events []models.Event, width, height int) Model {
	l := list.New(toItems(events), list.NewDefaultDelegate(), width, height)
	l.Title = "Events"
	l.SetShowHelp(false) // We handle help globally in the main model

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Delete, keys.Filter}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Delete, keys.Filter}
	}

	return Model{list: l, keys: keys}
}

// SetEvents replaces the list contents. filter is the active category, empty for all.
func (m *Model) SetEvents(events []models.Event, filter models.Category) {
	m.list.SetItems(toItems(events))
	if filter == "" {
		m.list.Title = "Events"
	} else {
		m.list.Title = "Events: " + filter.Label()
	}
}

// Filtering reports whether the list is capturing keys for its text filter.
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
			return m, func() tea.Msg { return AddEventMsg{} }
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteEventMsg{ID: i.Event.ID, Title: i.Event.Title} }
			}
		case key.Matches(msg, m.keys.Filter):
			return m, func() tea.Msg { return CycleFilterMsg{} }
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  No events yet.\n  Press 'a' to add one or 'c' to change the category filter."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Bindings lists the keys for the global help view.
func (m Model) Bindings() []key.Binding {
	return []key.Binding{m.keys.Add, m.keys.Delete, m.keys.Filter}
}

func toItems(events []models.Event) []list.Item {
	items := make([]list.Item, len(events))
	for i, e := range events {
		items[i] = Item{Event: e}
	}
	return items
}
