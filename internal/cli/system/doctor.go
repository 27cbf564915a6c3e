package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/spinday/internal/backup"
	"github.com/julianstephens/spinday/internal/cli"
	"github.com/julianstephens/spinday/internal/models"
	"github.com/julianstephens/spinday/internal/storage"
	"github.com/julianstephens/spinday/internal/storage/sqlite"
	"github.com/julianstephens/spinday/internal/utils"
)

type DoctorCmd struct{}

// check is one diagnostic. Warnings are reported but do not fail doctor.
type check struct {
	name     string
	needsDB  bool
	warnOnly bool
	run      func(ctx *cli.Context) error
}

var checks = []check{
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Settings", needsDB: true, run: checkSettings},
	{name: "Item pools", needsDB: true, run: checkPools},
	{name: "Spin history", needsDB: true, run: checkSpinDates},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "OS keyring", warnOnly: true, run: checkKeyring},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := true
	if err := ctx.Store.Load(); err != nil {
		ctx.Println("❌ Database reachable: FAIL")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
		dbReachable = false
	} else {
		ctx.Println("✓ Database reachable: OK")
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	versioner, ok := ctx.Store.(storage.SchemaVersioner)
	if !ok {
		return nil
	}
	current, latest, err := versioner.SchemaVersion()
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d - run 'spinday migrate'", current, latest)
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	return settings.Validate()
}

func checkPools(ctx *cli.Context) error {
	mgr := ctx.Pool()
	for _, pc := range models.Contexts {
		items, err := mgr.EffectivePool(pc)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return fmt.Errorf("the %s pool is empty; add an item or restore hidden defaults", pc)
		}
	}
	return nil
}

func checkSpinDates(ctx *cli.Context) error {
	days, err := ctx.Store.GetSpinDates()
	if err != nil {
		return err
	}
	for _, day := range days {
		if _, err := utils.ParseDate(day); err != nil {
			return fmt.Errorf("malformed spin date %q", day)
		}
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return nil
	}
	backups, err := backup.NewManager(ctx.Store.GetConfigPath()).ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return errors.New("no backups found - consider creating one with 'spinday backup create'")
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if !ctx.Keyring().Status().Available {
		return errors.New("OS keyring unavailable; PostgreSQL credentials must come from SPINDAY_DB_CONNECTION")
	}
	return nil
}
