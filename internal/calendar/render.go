package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	spunStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color(heatHigh))
	todayStyle  = lipgloss.NewStyle().Underline(true)
)

const (
	heatLow  = "#FFFFFF"
	heatHigh = "#FFA500"
)

// HeatColor interpolates between white and orange by ratio in [0, 1]
func HeatColor(ratio float64) lipgloss.Color {
	ratio = min(max(ratio, 0), 1)
	lerp := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*ratio + 0.5)
	}
	// white (255,255,255) to orange (255,165,0)
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", lerp(255, 255), lerp(255, 165), lerp(255, 0)))
}

// RenderMonth draws a Monday-first month grid with spun days highlighted
func RenderMonth(m Month, today time.Time) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(m.Start.Format("January 2006")))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Mo Tu We Th Fr Sa Su"))
	b.WriteString("\n")

	// Monday = 0
	offset := (int(m.Start.Weekday()) + 6) % 7
	b.WriteString(strings.Repeat("   ", offset))

	for i, day := range m.Days {
		cell := fmt.Sprintf("%2d", day.Date.Day())
		if day.Spun {
			cell = spunStyle.Render(cell)
		}
		if sameDay(day.Date, today) {
			cell = todayStyle.Render(cell)
		}
		b.WriteString(cell)

		if (offset+i+1)%7 == 0 {
			b.WriteString("\n")
		} else if i < len(m.Days)-1 {
			b.WriteString(" ")
		}
	}
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "1-15: %d   16-%d: %d   total: %d   longest run: %d\n",
		m.FirstHalf, len(m.Days), m.SecondHalf, m.Total, m.Longest)
	return b.String()
}

// RenderYear draws the half-month heat map: one row for each half, one
// column per month.
func RenderYear(year int, cells []HalfMonth) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%d", year)))
	b.WriteString("\n     ")
	for mo := time.January; mo <= time.December; mo++ {
		b.WriteString(dimStyle.Render(mo.String()[:3]))
		b.WriteString(" ")
	}
	b.WriteString("\n")

	for half := 1; half <= 2; half++ {
		label := "1-15 "
		if half == 2 {
			label = "16-  "
		}
		b.WriteString(dimStyle.Render(label))
		for _, c := range cells {
			if c.Half != half {
				continue
			}
			block := lipgloss.NewStyle().Background(HeatColor(c.Ratio())).Foreground(lipgloss.Color("0")).Render(fmt.Sprintf("%3d", c.Spun))
			b.WriteString(block)
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
