package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/spinday/internal/cli"
	"github.com/julianstephens/spinday/internal/cli/backups"
	"github.com/julianstephens/spinday/internal/cli/items"
	"github.com/julianstephens/spinday/internal/cli/journal"
	"github.com/julianstephens/spinday/internal/cli/settings"
	"github.com/julianstephens/spinday/internal/cli/spins"
	"github.com/julianstephens/spinday/internal/cli/system"
	"github.com/julianstephens/spinday/internal/config"
	"github.com/julianstephens/spinday/internal/constants"
	apperrors "github.com/julianstephens/spinday/internal/errors"
	"github.com/julianstephens/spinday/internal/keyring"
	"github.com/julianstephens/spinday/internal/logger"
)

var CLI struct {
	Version      kong.VersionFlag
	Config       string `help:"Database path or PostgreSQL connection string (default ${default_config}). Passwords must NOT be embedded; use SPINDAY_DB_CONNECTION or the OS keyring instead." type:"string"`
	Debug        bool   `help:"Enable debug logging."`
	DefaultsFile string `help:"YAML file overriding the default weekday/weekend items." type:"path"`

	Init system.InitCmd `cmd:"" help:"Initialize spinday storage."`
	Tui  system.TuiCmd  `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Spin spins.SpinCmd  `cmd:"" help:"Spin today's activity wheel."`
	Item struct {
		List    items.ItemListCmd    `cmd:"" help:"List the item pools." default:"1"`
		Add     items.ItemAddCmd     `cmd:"" help:"Add an item to a pool."`
		Remove  items.ItemRemoveCmd  `cmd:"" help:"Remove an item you added."`
		Hide    items.ItemHideCmd    `cmd:"" help:"Hide a default item."`
		Restore items.ItemRestoreCmd `cmd:"" help:"Restore a hidden default item."`
	} `cmd:"" help:"Manage weekday and weekend items."`
	Diary struct {
		Add    journal.DiaryAddCmd    `cmd:"" help:"Save a diary entry for a photo."`
		List   journal.DiaryListCmd   `cmd:"" help:"List diary entries." default:"1"`
		Show   journal.DiaryShowCmd   `cmd:"" help:"Show a diary entry."`
		Edit   journal.DiaryEditCmd   `cmd:"" help:"Rewrite a diary entry."`
		Delete journal.DiaryDeleteCmd `cmd:"" help:"Delete a diary entry."`
	} `cmd:"" help:"Manage photo diary entries."`
	Pending  spins.PendingCmd  `cmd:"" help:"Show the activity waiting for a diary entry."`
	Calendar spins.CalendarCmd `cmd:"" help:"Show the spin calendar."`
	History  spins.HistoryCmd  `cmd:"" help:"Show recent spins."`
	Backup   struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Keyring  struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the PostgreSQL connection string."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check whether the OS keyring is usable." default:"1"`
	} `cmd:"" help:"Manage the OS keyring entry."`
	Remind  system.RemindCmd  `cmd:"" help:"Send scheduled spin reminders."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("spinday"),
		kong.Description("Activity roulette with a photo diary"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"default_config": constants.DefaultConfigPath,
		},
	)

	env, err := config.LoadEnv()
	if err != nil {
		apperrors.Fatal(err)
	}

	target := cli.ResolveTarget(
		orDefault(CLI.Config, constants.DefaultConfigPath),
		CLI.Config != "",
		env,
		keyring.New(env.KeyringUser),
	)

	logDir := config.ConfigDir(target.Value)
	if !target.Trusted && !config.IsPostgresTarget(target.Value) {
		if expanded, err := config.ExpandPath(target.Value); err == nil {
			logDir = config.ConfigDir(expanded)
		}
	}
	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug || env.Debug,
		ConfigDir: logDir,
		Quiet:     ctx.Command() == "tui",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file logging disabled: %v\n", err)
		logger.InitWriter(os.Stderr, CLI.Debug || env.Debug)
	}
	logger.Debug("Resolved storage target", "source", target.Source)

	catalog, err := config.LoadCatalog(orDefault(CLI.DefaultsFile, env.DefaultsFile))
	if err != nil {
		apperrors.Fatal(err)
	}

	store, err := target.Open()
	if err != nil {
		apperrors.Fatal(err)
	}

	appCtx := &cli.Context{
		Store:   store,
		Catalog: catalog,
		Env:     env,
	}

	// init and keyring manage storage themselves
	command := ctx.Command()
	if command != "init" && !strings.HasPrefix(command, "keyring") {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}

	err = ctx.Run(appCtx)
	if closeErr := store.Close(); closeErr != nil {
		logger.Warn("Failed to close storage", "error", closeErr)
	}
	apperrors.Fatal(err)
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
