// Package wheel draws a working set as a vertical wheel with a pointer on the
// slice currently under it.
package wheel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/spinday/internal/constants"
	"github.com/julianstephens/spinday/internal/spin"
)

var (
	sliceStyle    = lipgloss.NewStyle().Padding(0, 1)
	pointerStyle  = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("205"))
	selectedStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).
			Foreground(lipgloss.Color("0")).Background(lipgloss.Color("#FFA500"))
	frameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type Model struct {
	items []string
	state spin.State
}

func New(items []string) Model {
	return Model{items: append([]string(nil), items...)}
}

// SetState shows st on the wheel
func (m *Model) SetState(st spin.State) {
	m.state = st
}

// Pointer is the slice under the pointer, -1 while idle
func (m Model) Pointer() int {
	switch m.state.Phase {
	case spin.PhaseSettled:
		return m.state.Index
	case spin.PhaseSpinning:
		if m.state.Tick == 0 {
			return -1
		}
		return spin.SelectIndex(m.state.Rotation, len(m.items))
	default:
		return -1
	}
}

func (m Model) View() string {
	if len(m.items) == 0 {
		return ""
	}
	pointer := m.Pointer()
	lines := make([]string, len(m.items))
	for i, item := range m.items {
		switch {
		case i == pointer && m.state.Settled():
			lines[i] = selectedStyle.Render("🎯 " + item)
		case i == pointer:
			lines[i] = pointerStyle.Render("▶ " + item)
		default:
			lines[i] = sliceStyle.Render("  " + item)
		}
	}

	var footer string
	switch m.state.Phase {
	case spin.PhaseSpinning:
		footer = fmt.Sprintf("%s %d/%d", bar(m.state.Tick, constants.SpinTicks), m.state.Tick, constants.SpinTicks)
	case spin.PhaseSettled:
		footer = fmt.Sprintf("settled at %.0f°", spin.NormalizeRotation(m.state.Rotation))
	default:
		footer = "press space to spin"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		frameStyle.Render(strings.Join(lines, "\n")),
		dimStyle.Render(footer),
	)
}

func bar(done, total int) string {
	const width = 20
	filled := done * width / max(total, 1)
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}
