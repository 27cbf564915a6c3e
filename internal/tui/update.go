package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/spinday/internal/models"
	"github.com/julianstephens/spinday/internal/tui/components/diarylist"
	"github.com/julianstephens/spinday/internal/tui/components/itemlist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == StateAddItem || m.state == StateWriteDiary {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.itemList.SetSize(msg.Width-4, msg.Height-6)
		m.diaryList.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case tickMsg:
		return m, m.handleTick(msg)
	case revealMsg:
		return m, m.handleReveal(msg)
	case recordedMsg:
		return m, m.handleRecorded(msg)

	case itemlist.AddItemMsg:
		m.itemForm = &ItemFormModel{Context: m.itemCtx}
		m.form = NewItemForm(m.itemForm)
		m.previousState, m.state = m.state, StateAddItem
		return m, m.form.Init()
	case itemlist.RemoveItemMsg:
		return m, m.removeItem(msg.Item)
	case itemlist.RestoreItemMsg:
		if err := m.svc.Pool.RestoreDefaultItem(msg.Item.Label); err != nil {
			return m, m.fail(err)
		}
		m.setStatus("Restored %q", msg.Item.Label)
		if err := m.syncPool(); err != nil {
			return m, m.fail(err)
		}
		return m, nil
	case itemlist.ToggleContextMsg:
		m.itemCtx = otherContext(m.itemCtx)
		if err := m.refreshItems(); err != nil {
			return m, m.fail(err)
		}
		return m, nil

	case diarylist.WriteEntryMsg:
		return m, m.openDiaryForm()
	case diarylist.DeleteEntryMsg:
		if err := m.svc.Diary.Delete(msg.PhotoURI); err != nil {
			return m, m.fail(err)
		}
		m.setStatus("Diary entry deleted")
		if err := m.refreshDiary(); err != nil {
			return m, m.fail(err)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			if m.spinning() {
				m.cancelSpin()
			}
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % SessionState(len(tabTitles))
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + SessionState(len(tabTitles))) % SessionState(len(tabTitles))
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateWheel:
		if msg, ok := msg.(tea.KeyMsg); ok {
			cmd = m.handleWheelKey(msg)
		}
	case StateItems:
		m.itemList, cmd = m.itemList.Update(msg)
	case StateDiary:
		m.diaryList, cmd = m.diaryList.Update(msg)
	case StateCalendar:
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(msg, m.keys.PrevMon):
				m.month = m.month.AddDate(0, -1, 0)
			case key.Matches(msg, m.keys.NextMon):
				m.month = m.month.AddDate(0, 1, 0)
			}
		}
	}
	return m, cmd
}

func (m *Model) handleWheelKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		if m.spinning() {
			m.cancelSpin()
			m.setStatus("Spin cancelled.")
		}
	case key.Matches(msg, m.keys.Spin):
		return m.startSpin()
	case key.Matches(msg, m.keys.NewWheel):
		if m.spinning() || m.recording {
			return nil
		}
		if err := m.newWheel(); err != nil {
			return m.fail(err)
		}
		m.status = ""
	case key.Matches(msg, m.keys.Write):
		if !m.pending.IsZero() && !m.spinning() {
			return m.openDiaryForm()
		}
	}
	return nil
}

func (m *Model) startSpin() tea.Cmd {
	if m.wheel == nil {
		m.setStatus("Nothing to spin: the %s pool is empty. Add items in the Items tab.", m.pc)
		return nil
	}
	if m.revealing || m.recording {
		return nil
	}
	if err := m.wheel.Start(); err != nil {
		return nil
	}
	m.gen++
	m.recorded = nil
	m.status = ""
	m.wheelView.SetState(m.wheel.State())
	gen := m.gen
	return func() tea.Msg { return tickMsg{gen: gen} }
}

func (m *Model) cancelSpin() {
	if m.recording {
		return
	}
	m.wheel.Cancel()
	m.gen++
	m.revealing = false
	m.wheelView.SetState(m.wheel.State())
}

func (m *Model) handleTick(msg tickMsg) tea.Cmd {
	if msg.gen != m.gen || m.wheel == nil {
		return nil
	}
	st, err := m.wheel.Tick()
	if err != nil {
		return nil
	}
	m.wheelView.SetState(st)

	gen := m.gen
	if st.Settled() {
		m.revealing = true
		return tea.Tick(m.svc.Roulette.RevealDelay(), func(time.Time) tea.Msg { return revealMsg{gen: gen} })
	}
	return tea.Tick(m.tickInterval, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

func (m *Model) handleReveal(msg revealMsg) tea.Cmd {
	if msg.gen != m.gen || !m.revealing {
		return nil
	}
	m.revealing = false
	m.recording = true
	svc, w := m.svc.Roulette, m.wheel
	return func() tea.Msg {
		event, err := svc.Record(context.Background(), w)
		return recordedMsg{event: event, err: err}
	}
}

func (m *Model) handleRecorded(msg recordedMsg) tea.Cmd {
	m.recording = false
	if msg.err != nil {
		return m.fail(msg.err)
	}
	m.recorded = &msg.event
	m.setStatus("🎯 Today's %s activity: %s. Press w when you're done.", msg.event.Context, msg.event.Item)
	if err := m.refreshDiary(); err != nil {
		return m.fail(err)
	}
	return nil
}

func (m *Model) removeItem(item models.Item) tea.Cmd {
	var err error
	if item.Provenance == models.ProvenanceDefault {
		err = m.svc.Pool.HideDefaultItem(item.Label)
		m.setStatus("Hid %q", item.Label)
	} else {
		err = m.svc.Pool.RemoveUserItem(item.Context, item.Label)
		m.setStatus("Removed %q", item.Label)
	}
	if err == nil {
		err = m.syncPool()
	}
	if err != nil {
		return m.fail(err)
	}
	return nil
}

// syncPool refreshes the item list. The current wheel keeps its working
// set; only an empty wheel is redrawn.
func (m *Model) syncPool() error {
	if err := m.refreshItems(); err != nil {
		return err
	}
	if m.wheel == nil {
		return m.newWheel()
	}
	return nil
}

func (m *Model) openDiaryForm() tea.Cmd {
	m.diaryForm = &DiaryFormModel{}
	m.form = NewDiaryForm(m.diaryForm, m.pending)
	m.previousState, m.state = m.state, StateWriteDiary
	return m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	current := m.state
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.state = m.previousState
		var err error
		if current == StateAddItem {
			err = m.saveItem()
		} else {
			err = m.saveDiary()
		}
		m.itemForm, m.diaryForm = nil, nil
		if err != nil {
			return m, m.fail(err)
		}
	case huh.StateAborted:
		m.state = m.previousState
		m.itemForm, m.diaryForm = nil, nil
	}
	return m, cmd
}

func (m *Model) saveItem() error {
	label := m.itemForm.Label
	if err := m.svc.Pool.AddUserItem(m.itemForm.Context, label); err != nil {
		return err
	}
	m.setStatus("Added %q to the %s wheel", label, m.itemForm.Context)
	m.itemCtx = m.itemForm.Context
	return m.syncPool()
}

func (m *Model) saveDiary() error {
	entry, pending, err := m.svc.Diary.Complete(photoLocator(m.diaryForm.Photo), m.diaryForm.Text)
	if err != nil {
		return err
	}
	m.setStatus("Saved diary entry for %s", entry.SavedOn)
	if m.diaryForm.Discard && !pending.IsZero() {
		if err := m.svc.Diary.Discard(pending); err != nil {
			return err
		}
		m.setStatus("Saved diary entry and took %q off the wheel", pending.Item)
		if err := m.refreshItems(); err != nil {
			return err
		}
	}
	return m.refreshDiary()
}

func otherContext(pc models.PoolContext) models.PoolContext {
	if pc == models.ContextWeekday {
		return models.ContextWeekend
	}
	return models.ContextWeekday
}
