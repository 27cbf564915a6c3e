package spins

import (
	"fmt"

	"github.com/julianstephens/spinday/internal/cli"
)

type PendingCmd struct {
	Clear bool `help:"Forget the pending activity without writing a diary entry."`
}

func (c *PendingCmd) Run(ctx *cli.Context) error {
	svc := ctx.Diary()
	pending, err := svc.Pending()
	if err != nil {
		return fmt.Errorf("failed to get pending activity: %w", err)
	}
	if pending.IsZero() {
		ctx.Println("No pending activity. Spin the wheel with: spinday spin")
		return nil
	}

	if c.Clear {
		if err := svc.ClearPending(); err != nil {
			return fmt.Errorf("failed to clear pending activity: %w", err)
		}
		ctx.Printf("✓ Cleared pending activity %q\n", pending.Item)
		return nil
	}

	ctx.Printf("Pending %s activity: %s\n", pending.Context, pending.Item)
	ctx.Println("  Log it with: spinday diary add <photo>")
	return nil
}
