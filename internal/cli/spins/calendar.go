package spins

import (
	"fmt"
	"time"

	"github.com/julianstephens/spinday/internal/calendar"
	"github.com/julianstephens/spinday/internal/cli"
	"github.com/julianstephens/spinday/internal/constants"
)

type CalendarCmd struct {
	Month string `short:"m" help:"Month to show (YYYY-MM). Defaults to the current month."`
	Year  int    `short:"y" help:"Show the half-month heat map for a whole year."`
}

func (c *CalendarCmd) Validate() error {
	if c.Month != "" && c.Year != 0 {
		return fmt.Errorf("use either --month or --year")
	}
	if c.Month != "" {
		if _, err := time.Parse(constants.MonthFormat, c.Month); err != nil {
			return fmt.Errorf("invalid month %q (expected YYYY-MM)", c.Month)
		}
	}
	return nil
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	today, err := ctx.Roulette().Today()
	if err != nil {
		return err
	}
	dates, err := ctx.Pool().SpinDates()
	if err != nil {
		return fmt.Errorf("failed to get spin dates: %w", err)
	}
	spun := calendar.NewDaySet(dates)

	if c.Year != 0 {
		ctx.Print(calendar.RenderYear(c.Year, calendar.Year(c.Year, spun)))
		return nil
	}

	month := today
	if c.Month != "" {
		month, _ = time.Parse(constants.MonthFormat, c.Month)
	}
	ctx.Print(calendar.RenderMonth(calendar.Summarize(month, spun), today))
	ctx.Printf("current streak: %d days\n", calendar.CurrentStreak(spun, today))
	return nil
}
