package tui

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/spinday/internal/models"
)

func NewItemForm(fm *ItemFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Activity").
				Value(&fm.Label).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("activity cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[models.PoolContext]().
				Title("Wheel").
				Options(
					huh.NewOption("Weekday", models.ContextWeekday),
					huh.NewOption("Weekend", models.ContextWeekend),
				).
				Value(&fm.Context),
		),
	).WithShowHelp(true)
}

// NewDiaryForm asks for the photo and text. The discard question only
// appears when an activity is pending.
func NewDiaryForm(fm *DiaryFormModel, pending models.PendingActivity) *huh.Form {
	textTitle := "What did you do?"
	if !pending.IsZero() {
		textTitle = "What did you do? (blank: Completed: " + pending.Item + ")"
	}
	fields := []huh.Field{
		huh.NewInput().
			Title("Photo").
			Description("Path or URI of the photo you took").
			Value(&fm.Photo).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("a photo is required")
				}
				return nil
			}),
		huh.NewText().
			Title(textTitle).
			Value(&fm.Text),
	}
	if !pending.IsZero() {
		fields = append(fields, huh.NewConfirm().
			Title("Take \""+pending.Item+"\" off the wheel?").
			Value(&fm.Discard))
	}
	return huh.NewForm(huh.NewGroup(fields...)).WithShowHelp(true)
}

// photoLocator makes local paths absolute and keeps URIs as typed
func photoLocator(photo string) string {
	photo = strings.TrimSpace(photo)
	if strings.Contains(photo, "://") {
		return photo
	}
	if abs, err := filepath.Abs(photo); err == nil {
		return abs
	}
	return photo
}
