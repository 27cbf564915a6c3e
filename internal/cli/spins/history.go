package spins

import (
	"fmt"
	"text/tabwriter"

	"github.com/julianstephens/spinday/internal/cli"
	"github.com/julianstephens/spinday/internal/constants"
)

type HistoryCmd struct {
	Days int `short:"d" help:"Number of days to show, today included (default 30)."`
}

func (c *HistoryCmd) Validate() error {
	if c.Days < 0 {
		return fmt.Errorf("--days must be positive")
	}
	return nil
}

func (c *HistoryCmd) Run(ctx *cli.Context) error {
	if c.Days == 0 {
		c.Days = constants.DefaultHistoryDays
	}
	events, err := ctx.Roulette().History(c.Days)
	if err != nil {
		return fmt.Errorf("failed to get spin history: %w", err)
	}
	if len(events) == 0 {
		ctx.Printf("No spins in the last %d days.\n", c.Days)
		return nil
	}

	ctx.Printf("Spins in the last %d days:\n\n", c.Days)
	w := tabwriter.NewWriter(ctx.Writer(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  DATE\tCONTEXT\tACTIVITY")
	for _, ev := range events {
		fmt.Fprintf(w, "  %s\t%s\t%s\n", ev.Day, ev.Context, ev.Item)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	days := map[string]bool{}
	for _, ev := range events {
		days[ev.Day] = true
	}
	ctx.Printf("\n%d spins on %d days\n", len(events), len(days))
	return nil
}
