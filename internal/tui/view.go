package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/spinday/internal/calendar"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateWheel:
		content = m.viewWheel()
	case StateItems:
		content = pageStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			headingStyle.Render(fmt.Sprintf("%s items", m.itemCtx)),
			m.itemList.View(),
		))
	case StateDiary:
		content = pageStyle.Render(m.diaryList.View())
	case StateCalendar:
		content = m.viewCalendar()
	case StateAddItem, StateWriteDiary:
		content = pageStyle.Render(m.form.View())
	}

	parts := []string{m.viewTabs(), content}
	if m.status != "" {
		parts = append(parts, noticeStyle.Render("  "+m.status))
	}
	parts = append(parts, m.help.View(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	active := m.state
	if active == StateAddItem || active == StateWriteDiary {
		active = m.previousState
	}
	var tabs []string
	for i, title := range tabTitles {
		if active == SessionState(i) {
			tabs = append(tabs, tabOnStyle.Render(title))
		} else {
			tabs = append(tabs, tabOffStyle.Render(title))
		}
	}
	return tabBarStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

func (m Model) viewWheel() string {
	header := headingStyle.Render(fmt.Sprintf("🎡 %s wheel", m.pc))
	if m.wheel == nil {
		return pageStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			alertStyle.Render(fmt.Sprintf("The %s pool is empty.", m.pc)),
			"Add an item or restore a hidden default in the Items tab.",
		))
	}

	lines := []string{header, "", m.wheelView.View()}
	if !m.pending.IsZero() && !m.spinning() {
		lines = append(lines, "", fmt.Sprintf("Pending: %s (press w to write it up)", m.pending.Item))
	}
	return pageStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) viewCalendar() string {
	dates, err := m.svc.Pool.SpinDates()
	if err != nil {
		return pageStyle.Render(alertStyle.Render("Failed to load spin history: " + err.Error()))
	}
	today, err := m.svc.Roulette.Today()
	if err != nil {
		return pageStyle.Render(alertStyle.Render(err.Error()))
	}
	spun := calendar.NewDaySet(dates)
	month := calendar.Summarize(m.month, spun)
	return pageStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		calendar.RenderMonth(month, today),
		"",
		fmt.Sprintf("%d spins this month (1st half %d, 2nd half %d)", month.Total, month.FirstHalf, month.SecondHalf),
		fmt.Sprintf("current streak: %d days", calendar.CurrentStreak(spun, today)),
	))
}
