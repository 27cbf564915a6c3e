package itemlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/spinday/internal/models"
)

type AddItemMsg struct{}

// RemoveItemMsg removes a user item or hides a default one
type RemoveItemMsg struct {
	Item models.Item
}

type RestoreItemMsg struct {
	Item models.Item
}

type ToggleContextMsg struct{}

type Item struct {
	Item models.Item
}

func (i Item) Title() string {
	switch {
	case i.Item.Hidden:
		return "👻 " + i.Item.Label + " (hidden)"
	case i.Item.Provenance == models.ProvenanceUserAdded:
		return "+ " + i.Item.Label
	default:
		return i.Item.Label
	}
}

func (i Item) Description() string {
	if i.Item.Hidden {
		return "default | can restore with 'r'"
	}
	return fmt.Sprintf("%s | %s", i.Item.Provenance, i.Item.Context)
}

func (i Item) FilterValue() string { return i.Item.Label }

type KeyMap struct {
	Add     key.Binding
	Remove  key.Binding
	Restore key.Binding
	Context key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Remove: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "remove/hide"),
		),
		Restore: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restore"),
		),
		Context: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "weekday/weekend"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(items []models.Item, width, height int) Model {
	l := list.New(toListItems(items), list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Remove, keys.Restore, keys.Context}
	}
	return Model{list: l, keys: keys}
}

func toListItems(items []models.Item) []list.Item {
	out := make([]list.Item, len(items))
	for i, it := range items {
		out[i] = Item{Item: it}
	}
	return out
}

func (m *Model) SetItems(items []models.Item) {
	m.list.SetItems(toListItems(items))
}

// Keys exposes the component's bindings for the global help
func (m Model) Keys() KeyMap { return m.keys }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddItemMsg{} }
		case key.Matches(msg, m.keys.Context):
			return m, func() tea.Msg { return ToggleContextMsg{} }
		case key.Matches(msg, m.keys.Remove):
			if i, ok := m.list.SelectedItem().(Item); ok && !i.Item.Hidden {
				return m, func() tea.Msg { return RemoveItemMsg{Item: i.Item} }
			}
		case key.Matches(msg, m.keys.Restore):
			if i, ok := m.list.SelectedItem().(Item); ok && i.Item.Hidden {
				return m, func() tea.Msg { return RestoreItemMsg{Item: i.Item} }
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No items in this pool.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
