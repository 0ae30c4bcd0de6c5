package recordlist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hansollee/matzip/internal/models"
)

type AddRecordMsg struct{}

type EditRecordMsg struct {
	Record models.FoodRecord
}

type DeleteRecordMsg struct {
	ID int64
}

type ToggleSortMsg struct{}

type Item struct {
	Record models.FoodRecord
}

func (i Item) Title() string {
	if i.Record.RestaurantName != "" {
		return fmt.Sprintf("%s @ %s", i.Record.FoodName, i.Record.RestaurantName)
	}
	return i.Record.FoodName
}

func (i Item) Description() string {
	parts := []string{i.Record.Date, stars(i.Record.Rating)}
	if i.Record.Category != "" {
		parts = append(parts, i.Record.Category)
	}
	return strings.Join(parts, " | ")
}

// FilterValue matches the search semantics of the list view: a record is
// found by its food name or its restaurant name.
func (i Item) FilterValue() string {
	return i.Record.FoodName + " " + i.Record.RestaurantName
}

func stars(rating float64) string {
	full := int(rating)
	var b strings.Builder
	for j := 0; j < 5; j++ {
		if j < full {
			b.WriteString("★")
		} else {
			b.WriteString("☆")
		}
	}
	return b.String()
}

type KeyMap struct {
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Sort   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(records []models.FoodRecord, width, height int) Model {
	l := list.New(toItems(records), list.NewDefaultDelegate(), width, height)
	l.Title = "Records"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete, keys.Sort}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete, keys.Sort}
	}

	return Model{list: l, keys: keys}
}

func toItems(records []models.FoodRecord) []list.Item {
	items := make([]list.Item, len(records))
	for i, rec := range records {
		items[i] = Item{Record: rec}
	}
	return items
}

// SetRecords replaces the list contents, keeping the cursor near its
// current position.
func (m *Model) SetRecords(records []models.FoodRecord) {
	m.list.SetItems(toItems(records))
}

func (m Model) Selected() (models.FoodRecord, bool) {
	if i, ok := m.list.SelectedItem().(Item); ok {
		return i.Record, true
	}
	return models.FoodRecord{}, false
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddRecordMsg{} }
		case key.Matches(msg, m.keys.Edit):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return EditRecordMsg{Record: i.Record} }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteRecordMsg{ID: i.Record.ID} }
			}
		case key.Matches(msg, m.keys.Sort):
			return m, func() tea.Msg { return ToggleSortMsg{} }
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No records yet.\n  Press 'a' to log your first meal."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
