package journal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/spinday/internal/cli"
	"github.com/julianstephens/spinday/internal/constants"
	"github.com/julianstephens/spinday/internal/diary"
	apperrors "github.com/julianstephens/spinday/internal/errors"
	"github.com/julianstephens/spinday/internal/models"
)

// resolvePhoto makes local paths absolute so entries stay addressable from
// any working directory. URIs are kept as given.
func resolvePhoto(photo string) (string, error) {
	photo = strings.TrimSpace(photo)
	if photo == "" {
		return "", diary.ErrMissingPhoto
	}
	if strings.Contains(photo, "://") {
		return photo, nil
	}
	abs, err := filepath.Abs(photo)
	if err != nil {
		return "", fmt.Errorf("failed to resolve photo path: %w", err)
	}
	return abs, nil
}

// lookupPhoto finds an existing entry by the photo as typed or as resolved
func lookupPhoto(svc *diary.Service, photo string) (models.DiaryEntry, error) {
	entry, err := svc.Get(photo)
	if err == nil || !errors.Is(err, apperrors.ErrNotFound) {
		return entry, err
	}
	resolved, rerr := resolvePhoto(photo)
	if rerr != nil || resolved == photo {
		return models.DiaryEntry{}, err
	}
	return svc.Get(resolved)
}

type DiaryAddCmd struct {
	Photo   string `arg:"" help:"Photo of the finished activity (path or URI)."`
	Text    string `short:"t" help:"Diary text. Defaults to 'Completed: <activity>'."`
	Discard bool   `help:"Take the finished activity off the wheel."`
}

func (c *DiaryAddCmd) Run(ctx *cli.Context) error {
	photo, err := resolvePhoto(c.Photo)
	if err != nil {
		return err
	}
	if !strings.Contains(photo, "://") {
		if _, err := os.Stat(photo); err != nil {
			return fmt.Errorf("photo not found: %s", photo)
		}
	}

	svc := ctx.Diary()
	entry, pending, err := svc.Complete(photo, c.Text)
	if errors.Is(err, diary.ErrNoText) {
		return errors.New("no activity is pending: pass --text to describe what you did")
	}
	if err != nil {
		return fmt.Errorf("failed to save diary entry: %w", err)
	}
	ctx.Printf("✓ Saved diary entry for %s (%s)\n", filepath.Base(entry.PhotoURI), entry.SavedOn)

	if c.Discard {
		if pending.IsZero() {
			ctx.Println("Nothing to discard: no activity was pending.")
			return nil
		}
		if err := svc.Discard(pending); err != nil {
			return fmt.Errorf("failed to discard activity: %w", err)
		}
		ctx.Printf("✓ Took %q off the %s wheel\n", pending.Item, pending.Context)
	}
	return nil
}

type DiaryListCmd struct {
	Month string `short:"m" help:"Only show entries saved in this month (YYYY-MM)."`
}

func (c *DiaryListCmd) Validate() error {
	if c.Month == "" {
		return nil
	}
	if _, err := time.Parse(constants.MonthFormat, c.Month); err != nil {
		return fmt.Errorf("invalid month %q (expected YYYY-MM)", c.Month)
	}
	return nil
}

func (c *DiaryListCmd) Run(ctx *cli.Context) error {
	svc := ctx.Diary()
	var entries []models.DiaryEntry
	var err error
	if c.Month != "" {
		month, _ := time.Parse(constants.MonthFormat, c.Month)
		entries, err = svc.ListMonth(month)
	} else {
		entries, err = svc.List()
	}
	if err != nil {
		return fmt.Errorf("failed to list diary entries: %w", err)
	}

	if len(entries) == 0 {
		ctx.Println("No diary entries yet.")
		return nil
	}
	for _, e := range entries {
		date := e.SavedOn
		if date == "" {
			date = "undated   "
		}
		ctx.Printf("%s  %s\n", date, firstLine(e.Text))
		ctx.Printf("            %s\n", e.PhotoURI)
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}

type DiaryShowCmd struct {
	Photo string `arg:"" help:"Photo the entry belongs to."`
}

func (c *DiaryShowCmd) Run(ctx *cli.Context) error {
	entry, err := lookupPhoto(ctx.Diary(), c.Photo)
	if errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("no diary entry for %s", c.Photo)
	}
	if err != nil {
		return err
	}

	ctx.Printf("Photo: %s\n", entry.PhotoURI)
	if entry.SavedOn != "" {
		ctx.Printf("Saved: %s\n", entry.SavedOn)
	}
	ctx.Println()
	ctx.Println(entry.Text)
	return nil
}

type DiaryEditCmd struct {
	Photo string `arg:"" help:"Photo the entry belongs to."`
	Text  string `short:"t" help:"New diary text." required:""`
}

func (c *DiaryEditCmd) Run(ctx *cli.Context) error {
	svc := ctx.Diary()
	entry, err := lookupPhoto(svc, c.Photo)
	if errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("no diary entry for %s", c.Photo)
	}
	if err != nil {
		return err
	}

	updated, err := svc.Edit(entry.PhotoURI, c.Text)
	if err != nil {
		return fmt.Errorf("failed to edit diary entry: %w", err)
	}
	ctx.Printf("✓ Updated diary entry (%s)\n", updated.SavedOn)
	return nil
}

type DiaryDeleteCmd struct {
	Photo string `arg:"" help:"Photo the entry belongs to."`
	Yes   bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *DiaryDeleteCmd) Run(ctx *cli.Context) error {
	svc := ctx.Diary()
	entry, err := lookupPhoto(svc, c.Photo)
	if errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("no diary entry for %s", c.Photo)
	}
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Delete the diary entry for %s?", filepath.Base(entry.PhotoURI)))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Delete cancelled.")
			return nil
		}
	}

	if err := svc.Delete(entry.PhotoURI); err != nil {
		return fmt.Errorf("failed to delete diary entry: %w", err)
	}
	ctx.Println("✓ Diary entry deleted")
	return nil
}
