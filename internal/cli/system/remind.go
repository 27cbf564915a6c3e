package system

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/spinday/internal/cli"
	"github.com/julianstephens/spinday/internal/notifier"
	"github.com/julianstephens/spinday/internal/scheduler"
	"github.com/julianstephens/spinday/internal/utils"
)

// RemindCmd nudges the user through the tray app on the configured schedule
type RemindCmd struct {
	Once   bool `help:"Check once and exit instead of running the schedule."`
	DryRun bool `help:"Print reminders to stdout instead of sending them."`
}

func (c *RemindCmd) Run(ctx *cli.Context) error {
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.remind(runCtx, ctx)
}

func (c *RemindCmd) remind(runCtx context.Context, ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	if !settings.NotificationsEnabled && !c.DryRun {
		ctx.Println("Notifications are disabled. Enable them with 'spinday settings --notifications'.")
		return nil
	}

	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone setting: %w", err)
	}

	var n scheduler.Notifier = ctx.Notifier()
	if c.DryRun {
		n = printNotifier{ctx: ctx}
	}
	reminder, err := scheduler.New(settings.ReminderSchedule, loc, ctx.Store, n)
	if err != nil {
		return err
	}

	if c.Once {
		outcome, err := reminder.Fire(runCtx)
		if err != nil {
			return fmt.Errorf("reminder failed: %w", err)
		}
		if outcome == scheduler.Skipped {
			ctx.Println("Already spun today, nothing to remind.")
		}
		return nil
	}

	ctx.Printf("Reminding on %q (%s). Next: %s\n", settings.ReminderSchedule, loc,
		reminder.Next(ctx.Clock()).Format("Mon Jan 2 15:04"))
	return reminder.Run(runCtx)
}

type printNotifier struct {
	ctx *cli.Context
}

func (p printNotifier) Reminder(_ context.Context, pending string) error {
	p.ctx.Println("[DryRun] " + notifier.ReminderText(pending))
	return nil
}
