// Package calendar summarizes spin dates as month grids and a yearly heat map
// of half-month periods (days 1-15 and 16-end).
package calendar

import (
	"sort"
	"time"

	"github.com/julianstephens/spinday/internal/constants"
	"github.com/julianstephens/spinday/internal/utils"
)

// DaySet is a set of calendar days keyed by YYYY-MM-DD
type DaySet map[string]bool

// NewDaySet indexes spun dates by their calendar day
func NewDaySet(dates []time.Time) DaySet {
	set := make(DaySet, len(dates))
	for _, d := range dates {
		set[utils.FormatDate(d)] = true
	}
	return set
}

func (s DaySet) Has(t time.Time) bool { return s[utils.FormatDate(t)] }

// Day is one cell of a month grid
type Day struct {
	Date time.Time
	Spun bool
}

// Month is the spin summary of one calendar month
type Month struct {
	Start      time.Time // first day, midnight UTC
	Days       []Day
	FirstHalf  int // spun days among 1-15
	SecondHalf int // spun days among 16-end
	Total      int
	Longest    int // longest run of consecutive spun days inside the month
}

// HalfMonth is one heat-map cell
type HalfMonth struct {
	Month time.Month
	Half  int // 1 or 2
	Days  int
	Spun  int
}

// Ratio is the share of days in the period that were spun
func (h HalfMonth) Ratio() float64 {
	if h.Days == 0 {
		return 0
	}
	return float64(h.Spun) / float64(h.Days)
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func daysIn(start time.Time) int {
	return start.AddDate(0, 1, -1).Day()
}

// Summarize builds the grid for the month containing month
func Summarize(month time.Time, spun DaySet) Month {
	start := monthStart(month)
	n := daysIn(start)

	m := Month{Start: start, Days: make([]Day, n)}
	run := 0
	for i := 0; i < n; i++ {
		date := start.AddDate(0, 0, i)
		day := Day{Date: date, Spun: spun.Has(date)}
		m.Days[i] = day

		if !day.Spun {
			run = 0
			continue
		}
		m.Total++
		if i+1 <= constants.CalendarHalfMonthSplit {
			m.FirstHalf++
		} else {
			m.SecondHalf++
		}
		run++
		m.Longest = max(m.Longest, run)
	}
	return m
}

// Year returns 24 heat-map cells for year: every month's first half then
// second half, January first.
func Year(year int, spun DaySet) []HalfMonth {
	cells := make([]HalfMonth, 0, 24)
	for mo := time.January; mo <= time.December; mo++ {
		m := Summarize(time.Date(year, mo, 1, 0, 0, 0, 0, time.UTC), spun)
		cells = append(cells,
			HalfMonth{Month: mo, Half: 1, Days: constants.CalendarHalfMonthSplit, Spun: m.FirstHalf},
			HalfMonth{Month: mo, Half: 2, Days: len(m.Days) - constants.CalendarHalfMonthSplit, Spun: m.SecondHalf},
		)
	}
	return cells
}

// CurrentStreak counts consecutive spun days ending today, or ending
// yesterday when today has not been spun yet.
func CurrentStreak(spun DaySet, today time.Time) int {
	day := utils.TruncateDay(today)
	if !spun.Has(day) {
		day = day.AddDate(0, 0, -1)
	}
	streak := 0
	for spun.Has(day) {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// Sorted returns the set's days in ascending order
func (s DaySet) Sorted() []string {
	days := make([]string, 0, len(s))
	for d := range s {
		days = append(days, d)
	}
	sort.Strings(days)
	return days
}
