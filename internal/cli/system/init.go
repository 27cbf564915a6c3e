package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/spinday/internal/cli"
	"github.com/julianstephens/spinday/internal/models"
	"github.com/julianstephens/spinday/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting the existing database before initialization."`
	Source string `help:"Source database (path, .json file or connection string) to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized spinday storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Migrating data from: %s\n", c.Source)
		source, err := storage.Open(c.Source)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		if err := source.Load(); err != nil {
			return fmt.Errorf("migration failed: failed to load source database: %w", err)
		}
		defer source.Close()

		if err := migrateData(ctx, source, ctx.Store); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Println("Migration completed successfully!")
	}
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	dbPath := ctx.Store.GetConfigPath()
	if abs, err := filepath.Abs(dbPath); err == nil {
		dbPath = abs
	}
	if c.Source != "" {
		if absSource, err := filepath.Abs(c.Source); err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		ctx.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

// migrateData copies everything a user owns from src into dst. dst must be
// freshly initialized: user items are appended, not merged.
func migrateData(ctx *cli.Context, src, dst storage.Provider) error {
	ctx.Println("  Migrating settings...")
	settings, err := src.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := dst.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	ctx.Println("  Migrating items...")
	added := 0
	for _, pc := range models.Contexts {
		items, err := src.GetUserItems(pc)
		if err != nil {
			return fmt.Errorf("failed to get %s items from source: %w", pc, err)
		}
		for _, label := range items {
			if err := dst.AppendUserItem(pc, label); err != nil {
				return fmt.Errorf("failed to add item %q: %w", label, err)
			}
		}
		added += len(items)
	}
	hidden, err := src.GetDeletedDefaults()
	if err != nil {
		return fmt.Errorf("failed to get hidden defaults from source: %w", err)
	}
	for _, label := range hidden {
		if err := dst.AddDeletedDefault(label); err != nil {
			return fmt.Errorf("failed to hide default %q: %w", label, err)
		}
	}
	ctx.Printf("    Migrated %d user items and %d hidden defaults\n", added, len(hidden))

	ctx.Println("  Migrating spins...")
	days, err := src.GetSpinDates()
	if err != nil {
		return fmt.Errorf("failed to get spin dates from source: %w", err)
	}
	for _, day := range days {
		if err := dst.AddSpinDate(day); err != nil {
			return fmt.Errorf("failed to add spin date %s: %w", day, err)
		}
	}
	events, err := src.GetSpinEvents("0000-01-01", "9999-12-31")
	if err != nil {
		return fmt.Errorf("failed to get spin events from source: %w", err)
	}
	for _, event := range events {
		if err := dst.AddSpinEvent(event); err != nil {
			return fmt.Errorf("failed to add spin event %s: %w", event.ID, err)
		}
	}
	ctx.Printf("    Migrated %d spin days and %d spin events\n", len(days), len(events))

	ctx.Println("  Migrating diary...")
	entries, err := src.GetAllDiaryEntries()
	if err != nil {
		return fmt.Errorf("failed to get diary entries from source: %w", err)
	}
	for _, entry := range entries {
		if err := dst.SaveDiaryEntry(entry); err != nil {
			return fmt.Errorf("failed to save diary entry %s: %w", entry.PhotoURI, err)
		}
	}
	pending, err := src.GetPendingActivity()
	if err != nil {
		return fmt.Errorf("failed to get pending activity from source: %w", err)
	}
	if !pending.IsZero() {
		if err := dst.SavePendingActivity(pending); err != nil {
			return fmt.Errorf("failed to save pending activity: %w", err)
		}
	}
	ctx.Printf("    Migrated %d diary entries\n", len(entries))

	return nil
}
