package settings

import (
	"fmt"

	"golang.org/x/text/language/display"

	"github.com/julianstephens/spinday/internal/cli"
	"github.com/julianstephens/spinday/internal/models"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone      *string `help:"IANA timezone used to decide the day and its context, or 'Local'."`
	Language      *string `help:"BCP 47 language tag, e.g. en or ja."`
	Shuffle       *bool   `help:"Shuffle wheels that have ten items or fewer."`
	RevealDelay   *int    `help:"Seconds to wait after the wheel settles before recording."`
	Notifications *bool   `help:"Announce spin results to the tray app."`
	Reminder      *string `help:"Cron schedule for 'spinday remind', e.g. '0 9 * * *'."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}

	if c.List {
		printSettings(ctx, settings)
		return nil
	}

	updated := c.apply(&settings)
	if !updated {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Println("Settings updated successfully.")
	return nil
}

func (c *SettingsCmd) apply(s *models.Settings) bool {
	updated := false
	if c.Timezone != nil {
		s.Timezone = *c.Timezone
		updated = true
	}
	if c.Language != nil {
		s.Language = *c.Language
		updated = true
	}
	if c.Shuffle != nil {
		s.ShuffleWorkingSet = *c.Shuffle
		updated = true
	}
	if c.RevealDelay != nil {
		s.RevealDelaySec = *c.RevealDelay
		updated = true
	}
	if c.Notifications != nil {
		s.NotificationsEnabled = *c.Notifications
		updated = true
	}
	if c.Reminder != nil {
		s.ReminderSchedule = *c.Reminder
		updated = true
	}
	return updated
}

func printSettings(ctx *cli.Context, s models.Settings) {
	ctx.Println("Current Settings:")
	ctx.Printf("  Timezone:              %s\n", s.Timezone)
	ctx.Printf("  Language:              %s (%s)\n", s.Language, display.English.Tags().Name(s.LanguageTag()))
	ctx.Printf("  Shuffle Working Set:   %v\n", s.ShuffleWorkingSet)
	ctx.Printf("  Reveal Delay:          %d s\n", s.RevealDelaySec)
	ctx.Println("\nNotification Settings:")
	ctx.Printf("  Notifications Enabled: %v\n", s.NotificationsEnabled)
	ctx.Printf("  Reminder Schedule:     %s\n", s.ReminderSchedule)
}
