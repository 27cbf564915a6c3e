package diarylist

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/spinday/internal/models"
)

type WriteEntryMsg struct{}

type DeleteEntryMsg struct {
	PhotoURI string
}

type Item struct {
	Entry models.DiaryEntry
}

func (i Item) Title() string {
	text, _, _ := strings.Cut(i.Entry.Text, "\n")
	return text
}

func (i Item) Description() string {
	date := i.Entry.SavedOn
	if date == "" {
		date = "undated"
	}
	return date + " | " + filepath.Base(i.Entry.PhotoURI)
}

func (i Item) FilterValue() string { return i.Entry.Text }

type KeyMap struct {
	Write  key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Write: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "write entry"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(entries []models.DiaryEntry, width, height int) Model {
	l := list.New(toListItems(entries), list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	return Model{list: l, keys: DefaultKeyMap()}
}

func toListItems(entries []models.DiaryEntry) []list.Item {
	out := make([]list.Item, len(entries))
	for i, e := range entries {
		out[i] = Item{Entry: e}
	}
	return out
}

func (m *Model) SetEntries(entries []models.DiaryEntry) {
	m.list.SetItems(toListItems(entries))
}

func (m Model) Keys() KeyMap { return m.keys }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.Write):
			return m, func() tea.Msg { return WriteEntryMsg{} }
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteEntryMsg{PhotoURI: i.Entry.PhotoURI} }
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No diary entries yet.\n  Spin the wheel, do the activity, then press 'w'."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
