package tui

import "github.com/charmbracelet/lipgloss"

// Wheel palette, shared with the calendar heat map's amber
const (
	colorAmber  = lipgloss.Color("#FFA500")
	colorInk    = lipgloss.Color("#1C1C1C")
	colorMuted  = lipgloss.Color("#8A8A8A")
	colorFelt   = lipgloss.Color("#2E7D32")
	colorWarn   = lipgloss.Color("#E53935")
	colorNotice = lipgloss.Color("#FFD54F")
)

var (
	tabOnStyle = lipgloss.NewStyle().
			Foreground(colorInk).
			Background(colorAmber).
			Padding(0, 2).
			Bold(true)

	tabOffStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 2)

	tabBarStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(colorFelt)

	alertStyle = lipgloss.NewStyle().Foreground(colorWarn).Bold(true)

	noticeStyle = lipgloss.NewStyle().Foreground(colorNotice)

	headingStyle = lipgloss.NewStyle().Foreground(colorAmber).Bold(true).MarginBottom(1)

	pageStyle = lipgloss.NewStyle().Padding(1, 3)
)
